// Package exporter writes the pipeline's output files: the combined
// cleaned observation CSV, the summary-statistics tables, the
// threshold-crossing report, and a distributable Excel workbook.
//
// All delimited output renders NA as an empty cell; readers of these
// files get missingness back exactly as the pipeline saw it.
package exporter
