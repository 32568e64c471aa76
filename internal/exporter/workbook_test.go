package exporter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jstetich/CBEP-OA-1/internal/stats"
)

func TestWorkbookExporter_Export(t *testing.T) {
	overall := []stats.FieldSummary{
		{
			Field: "omega_a",
			Summary: stats.Summary{
				Count: 3, Mean: 1.2333, Median: 1.2,
				Min: 0.9, Max: 1.6, Range: 0.7,
			},
		},
	}

	monthly := []stats.MonthlySummary{{Field: "omega_a"}}
	for m := 0; m < 12; m++ {
		monthly[0].Months[m] = stats.Summarize(nil)
	}
	monthly[0].Months[time.July-1] = stats.Summarize([]float64{1.2, 1.4})

	report := ThresholdReport{
		Raw: []stats.ThresholdStats{
			{Threshold: 1.0, Below: 1, Observed: 3, Fraction: 1.0 / 3.0},
		},
	}

	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, NewWorkbookExporter().Export(path, overall, monthly, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Monthly", "Omega"}, f.GetSheetList())

	v, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "omega_a", v)

	v, err = f.GetCellValue("Summary", "C2")
	require.NoError(t, err)
	assert.Equal(t, "1.2", v)

	// NA aggregate renders as an empty cell
	v, err = f.GetCellValue("Monthly", "C1")
	require.NoError(t, err)
	assert.Equal(t, "Jan", v)

	rows, err := f.GetRows("Omega")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "raw", rows[1][0])
}
