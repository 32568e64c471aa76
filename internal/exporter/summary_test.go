package exporter

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstetich/CBEP-OA-1/internal/stats"
)

func TestSummaryExporter_ExportSummaryStats(t *testing.T) {
	summaries := []stats.FieldSummary{
		{
			Field: "temp",
			Summary: stats.Summary{
				Count: 3, Mean: 12, Median: 12, StdDev: 2,
				Min: 10, Max: 14, Range: 4, IQR: 2, Spread80: 3.2,
			},
		},
		{
			Field:   "sal",
			Summary: stats.Summarize(nil), // all-NA column
		},
	}

	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, NewSummaryExporter().ExportSummaryStats(path, summaries))

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"variable", "min", "median", "mean", "max", "stddev", "count"}, rows[0])
	assert.Equal(t, []string{"temp", "10", "12", "12", "14", "2", "3"}, rows[1])
	// NA aggregates render as empty cells, count stays numeric
	assert.Equal(t, []string{"sal", "", "", "", "", "", "0"}, rows[2])
}

func TestSummaryExporter_ExportMonthlySummary(t *testing.T) {
	ms := stats.MonthlySummary{Field: "temp"}
	ms.Months[time.July-1] = stats.Summary{
		Count: 2, Mean: 18, Median: 18, StdDev: 2.8284271247461903,
		Min: 16, Max: 20, Range: 4, IQR: 2, Spread80: 3.2,
	}
	for m := 0; m < 12; m++ {
		if m != int(time.July)-1 {
			ms.Months[m] = stats.Summarize(nil)
		}
	}

	path := filepath.Join(t.TempDir(), "monthly.csv")
	require.NoError(t, NewSummaryExporter().ExportMonthlySummary(path, []stats.MonthlySummary{ms}))

	rows := readCSV(t, path)
	// header + 7 statistics for one variable
	require.Len(t, rows, 8)
	assert.Equal(t, 14, len(rows[0]))
	assert.Equal(t, "Jul", rows[0][8])

	// median row: July populated, everything else empty
	medianRow := rows[1]
	assert.Equal(t, "temp", medianRow[0])
	assert.Equal(t, "median", medianRow[1])
	assert.Equal(t, "18", medianRow[8])
	assert.Equal(t, "", medianRow[2]) // January

	// count row keeps zeros rather than blanks
	countRow := rows[7]
	assert.Equal(t, "count", countRow[1])
	assert.Equal(t, "2", countRow[8])
	assert.Equal(t, "0", countRow[2])
}

func TestSummaryExporter_ExportDailySummary(t *testing.T) {
	daily := []stats.DailySummary{
		{
			Date:    time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC),
			Field:   "temp",
			Summary: stats.Summarize([]float64{10, 14}),
		},
	}

	path := filepath.Join(t.TempDir(), "daily.csv")
	require.NoError(t, NewSummaryExporter().ExportDailySummary(path, daily))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, "2016-07-01", rows[1][0])
	assert.Equal(t, "temp", rows[1][1])
	assert.Equal(t, "2", rows[1][2])
	assert.Equal(t, "12", rows[1][3])
}

func TestSummaryExporter_ExportOmegaThresholds(t *testing.T) {
	report := ThresholdReport{
		Raw: []stats.ThresholdStats{
			{Threshold: 1.0, Below: 1, Observed: 3, Fraction: 1.0 / 3.0},
			{Threshold: 1.5, Below: 2, Observed: 3, Fraction: 2.0 / 3.0},
		},
		Daily: []stats.ThresholdStats{
			{Threshold: 1.0, Below: 0, Observed: 2, Fraction: 0},
		},
	}

	path := filepath.Join(t.TempDir(), "omega.csv")
	require.NoError(t, NewSummaryExporter().ExportOmegaThresholds(path, report))

	rows := readCSV(t, path)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"basis", "threshold", "below", "observations", "fraction"}, rows[0])
	assert.Equal(t, "raw", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, "1", rows[1][2])
	assert.Equal(t, "3", rows[1][3])
	assert.Equal(t, "daily_median", rows[3][0])
}

func TestSummaryExporter_NAFraction(t *testing.T) {
	report := ThresholdReport{
		Raw: []stats.ThresholdStats{{Threshold: 1.0, Fraction: math.NaN()}},
	}

	path := filepath.Join(t.TempDir(), "omega.csv")
	require.NoError(t, NewSummaryExporter().ExportOmegaThresholds(path, report))

	rows := readCSV(t, path)
	assert.Equal(t, "", rows[1][4])
}
