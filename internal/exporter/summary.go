package exporter

import (
	"github.com/jstetich/CBEP-OA-1/internal/stats"
)

// monthlyStatistics are the per-month rollup statistics reported in the
// monthly summary table, in row order.
var monthlyStatistics = []string{
	"median", "range", "iqr", "spread_80", "mean", "stddev", "count",
}

// monthAbbrevs are the column labels of the monthly summary table.
var monthAbbrevs = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// SummaryExporter writes the descriptive-statistics report tables.
type SummaryExporter struct {
	csvWriter *CSVWriter
}

// NewSummaryExporter creates a new summary exporter
func NewSummaryExporter() *SummaryExporter {
	return &SummaryExporter{csvWriter: NewCSVWriter()}
}

// ExportSummaryStats writes the whole-series summary table: one row per
// variable, columns min/median/mean/max/stddev/count.
func (e *SummaryExporter) ExportSummaryStats(path string, summaries []stats.FieldSummary) error {
	headers := []string{"variable", "min", "median", "mean", "max", "stddev", "count"}

	records := make([][]string, 0, len(summaries))
	for _, fs := range summaries {
		s := fs.Summary
		records = append(records, []string{
			fs.Field,
			formatValue(s.Min),
			formatValue(s.Median),
			formatValue(s.Mean),
			formatValue(s.Max),
			formatValue(s.StdDev),
			formatInt(s.Count),
		})
	}

	return e.csvWriter.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

// ExportMonthlySummary writes the monthly summary table: one row per
// variable and statistic, one column per calendar month pooled across
// deployment years.
func (e *SummaryExporter) ExportMonthlySummary(path string, summaries []stats.MonthlySummary) error {
	headers := append([]string{"variable", "statistic"}, monthAbbrevs...)

	var records [][]string
	for _, ms := range summaries {
		for _, stat := range monthlyStatistics {
			row := []string{ms.Field, stat}
			for m := 0; m < 12; m++ {
				row = append(row, monthlyCell(ms.Months[m], stat))
			}
			records = append(records, row)
		}
	}

	return e.csvWriter.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

func monthlyCell(s stats.Summary, stat string) string {
	switch stat {
	case "median":
		return formatValue(s.Median)
	case "range":
		return formatValue(s.Range)
	case "iqr":
		return formatValue(s.IQR)
	case "spread_80":
		return formatValue(s.Spread80)
	case "mean":
		return formatValue(s.Mean)
	case "stddev":
		return formatValue(s.StdDev)
	case "count":
		return formatInt(s.Count)
	}
	return ""
}

// ExportDailySummary writes the daily rollup table: one row per date and
// variable with the full NA-safe aggregate set.
func (e *SummaryExporter) ExportDailySummary(path string, summaries []stats.DailySummary) error {
	headers := []string{
		"date", "variable", "count", "median", "mean", "stddev",
		"min", "max", "range", "iqr", "spread_80",
	}

	records := make([][]string, 0, len(summaries))
	for _, ds := range summaries {
		s := ds.Summary
		records = append(records, []string{
			ds.Date.Format("2006-01-02"),
			ds.Field,
			formatInt(s.Count),
			formatValue(s.Median),
			formatValue(s.Mean),
			formatValue(s.StdDev),
			formatValue(s.Min),
			formatValue(s.Max),
			formatValue(s.Range),
			formatValue(s.IQR),
			formatValue(s.Spread80),
		})
	}

	return e.csvWriter.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

// ThresholdReport pairs the two named bases the omega "levels of
// concern" counts are computed on: every raw observation, and one median
// per day. The two answer different questions and are reported as
// distinct outputs rather than conflated.
type ThresholdReport struct {
	Raw   []stats.ThresholdStats
	Daily []stats.ThresholdStats
}

// ExportOmegaThresholds writes the threshold-crossing table for the
// aragonite saturation state.
func (e *SummaryExporter) ExportOmegaThresholds(path string, report ThresholdReport) error {
	headers := []string{"basis", "threshold", "below", "observations", "fraction"}

	var records [][]string
	for _, st := range report.Raw {
		records = append(records, thresholdRow("raw", st))
	}
	for _, st := range report.Daily {
		records = append(records, thresholdRow("daily_median", st))
	}

	return e.csvWriter.WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

func thresholdRow(basis string, st stats.ThresholdStats) []string {
	return []string{
		basis,
		formatValue(st.Threshold),
		formatInt(st.Below),
		formatInt(st.Observed),
		formatValue(st.Fraction),
	}
}
