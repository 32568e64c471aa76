package exporter

import (
	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// observationHeaders is the fixed column order of the combined cleaned
// observation file.
var observationHeaders = []string{
	"doy", "yyyy", "mm", "dd", "hh",
	"temp", "sal", "co2", "co2_corr", "do", "do_mgpl",
	"ph", "omega_a", "omega_c", "alkalinity", "co2_thermal",
}

// ObservationExporter writes the cleaned and corrected observation
// series as delimited text, one row per timestamp.
type ObservationExporter struct {
	csvWriter *CSVWriter
}

// NewObservationExporter creates a new observation exporter
func NewObservationExporter() *ObservationExporter {
	return &ObservationExporter{csvWriter: NewCSVWriter()}
}

// ExportCombined writes all observations to a single combined CSV file
// in timestamp order (the series is already ordered by the loader).
func (e *ObservationExporter) ExportCombined(path string, obs []domain.Observation) error {
	records := make([][]string, 0, len(obs))
	for i := range obs {
		records = append(records, observationRow(&obs[i]))
	}

	return e.csvWriter.WriteCSV(path, WriteOptions{
		Headers: observationHeaders,
		Records: records,
	})
}

func observationRow(o *domain.Observation) []string {
	ts := o.Timestamp
	return []string{
		formatInt(o.DayOfYear()),
		formatInt(ts.Year()),
		formatInt(int(ts.Month())),
		formatInt(ts.Day()),
		formatInt(ts.Hour()),
		formatValue(o.Temp),
		formatValue(o.Sal),
		formatValue(o.CO2),
		formatValue(o.CO2Corr),
		formatValue(o.DO),
		formatValue(o.DOMgPerL),
		formatValue(o.PH),
		formatValue(o.OmegaA),
		formatValue(o.OmegaC),
		formatValue(o.Alkalinity),
		formatValue(o.CO2Thermal),
	}
}
