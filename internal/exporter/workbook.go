package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/jstetich/CBEP-OA-1/internal/stats"
)

// WorkbookExporter writes the summary statistics as a single Excel
// workbook, the format the monitoring program distributes to partners.
type WorkbookExporter struct{}

// NewWorkbookExporter creates a new workbook exporter
func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{}
}

// Export writes a workbook with Summary, Monthly and Omega sheets.
func (e *WorkbookExporter) Export(path string,
	overall []stats.FieldSummary,
	monthly []stats.MonthlySummary,
	thresholds ThresholdReport) error {

	slog.Info("Writing summary workbook", slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeSummarySheet(f, overall); err != nil {
		return err
	}
	if err := e.writeMonthlySheet(f, monthly); err != nil {
		return err
	}
	if err := e.writeOmegaSheet(f, thresholds); err != nil {
		return err
	}

	// Drop the default sheet excelize creates
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (e *WorkbookExporter) writeSummarySheet(f *excelize.File, overall []stats.FieldSummary) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	headers := []string{"variable", "min", "median", "mean", "max", "stddev", "count"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}

	for i, fs := range overall {
		s := fs.Summary
		cells := []interface{}{
			fs.Field,
			cellValue(s.Min), cellValue(s.Median), cellValue(s.Mean),
			cellValue(s.Max), cellValue(s.StdDev), s.Count,
		}
		if err := writeCells(f, sheet, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func (e *WorkbookExporter) writeMonthlySheet(f *excelize.File, monthly []stats.MonthlySummary) error {
	const sheet = "Monthly"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	headers := append([]string{"variable", "statistic"}, monthAbbrevs...)
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, ms := range monthly {
		for _, stat := range monthlyStatistics {
			cells := []interface{}{ms.Field, stat}
			for m := 0; m < 12; m++ {
				cells = append(cells, monthlyWorkbookCell(ms.Months[m], stat))
			}
			if err := writeCells(f, sheet, row, cells); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func (e *WorkbookExporter) writeOmegaSheet(f *excelize.File, thresholds ThresholdReport) error {
	const sheet = "Omega"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	headers := []string{"basis", "threshold", "below", "observations", "fraction"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}

	row := 2
	write := func(basis string, sts []stats.ThresholdStats) error {
		for _, st := range sts {
			cells := []interface{}{
				basis, st.Threshold, st.Below, st.Observed, cellValue(st.Fraction),
			}
			if err := writeCells(f, sheet, row, cells); err != nil {
				return err
			}
			row++
		}
		return nil
	}

	if err := write("raw", thresholds.Raw); err != nil {
		return err
	}
	return write("daily_median", thresholds.Daily)
}

// writeRow writes a header row of strings.
func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return writeCells(f, sheet, row, cells)
}

// writeCells writes one row of cells starting at column A.
func writeCells(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		if v == nil {
			continue // NA stays an empty cell
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to name cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

// cellValue maps NA to nil so missing aggregates render as empty cells.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func monthlyWorkbookCell(s stats.Summary, stat string) interface{} {
	switch stat {
	case "median":
		return cellValue(s.Median)
	case "range":
		return cellValue(s.Range)
	case "iqr":
		return cellValue(s.IQR)
	case "spread_80":
		return cellValue(s.Spread80)
	case "mean":
		return cellValue(s.Mean)
	case "stddev":
		return cellValue(s.StdDev)
	case "count":
		return s.Count
	}
	return nil
}
