package domain

import (
	"math"
	"time"
)

// Field names for the sensor and derived columns of an Observation.
// These are the canonical column names used in configuration files,
// CSV output and summary reports.
const (
	FieldTemp       = "temp"
	FieldSal        = "sal"
	FieldCO2        = "co2"
	FieldPH         = "ph"
	FieldPHExt      = "ph_ext"
	FieldDO         = "do"
	FieldOmegaA     = "omega_a"
	FieldOmegaC     = "omega_c"
	FieldAlkalinity = "alkalinity"
	FieldDOMgPerL   = "do_mgpl"
	FieldCO2Corr    = "co2_corr"
	FieldCO2Thermal = "co2_thermal"
)

// SensorFields lists the raw sensor-derived columns in canonical order.
// A row whose sensor fields are all NA carries no information and is
// dropped during cleaning.
var SensorFields = []string{
	FieldTemp,
	FieldSal,
	FieldCO2,
	FieldPH,
	FieldPHExt,
	FieldDO,
	FieldOmegaA,
	FieldOmegaC,
	FieldAlkalinity,
}

// DerivedFields lists the columns computed by the pipeline from sensor
// fields, in canonical order.
var DerivedFields = []string{
	FieldDOMgPerL,
	FieldCO2Corr,
	FieldCO2Thermal,
}

// Observation represents a single timestamped row of the Casco Bay
// monitoring record. Sensor values are hourly medians; NA is represented
// as NaN so that arithmetic propagates missingness without branching.
type Observation struct {
	Timestamp time.Time `json:"timestamp" csv:"timestamp"`

	// Raw sensor medians
	Temp       float64 `json:"temp" csv:"temp"`             // water temperature, degrees C
	Sal        float64 `json:"sal" csv:"sal"`               // salinity, PSU
	CO2        float64 `json:"co2" csv:"co2"`               // pCO2, uAtm
	PH         float64 `json:"ph" csv:"ph"`                 // pH, total scale
	PHExt      float64 `json:"ph_ext" csv:"ph_ext"`         // external pH electrode
	DO         float64 `json:"do" csv:"do"`                 // dissolved oxygen, umol/kg
	OmegaA     float64 `json:"omega_a" csv:"omega_a"`       // aragonite saturation state
	OmegaC     float64 `json:"omega_c" csv:"omega_c"`       // calcite saturation state
	Alkalinity float64 `json:"alkalinity" csv:"alkalinity"` // calculated total alkalinity

	// Derived columns, NaN until the corrector runs
	DOMgPerL   float64 `json:"do_mgpl" csv:"do_mgpl"`         // dissolved oxygen, mg/L
	CO2Corr    float64 `json:"co2_corr" csv:"co2_corr"`       // pCO2 corrected to 12 C
	CO2Thermal float64 `json:"co2_thermal" csv:"co2_thermal"` // thermally expected pCO2
}

// NA is the missing-value marker for sensor and derived columns.
func NA() float64 {
	return math.NaN()
}

// IsNA reports whether v is the missing-value marker.
func IsNA(v float64) bool {
	return math.IsNaN(v)
}

// NewObservation returns an Observation at ts with every sensor and
// derived field set to NA.
func NewObservation(ts time.Time) Observation {
	return Observation{
		Timestamp:  ts,
		Temp:       NA(),
		Sal:        NA(),
		CO2:        NA(),
		PH:         NA(),
		PHExt:      NA(),
		DO:         NA(),
		OmegaA:     NA(),
		OmegaC:     NA(),
		Alkalinity: NA(),
		DOMgPerL:   NA(),
		CO2Corr:    NA(),
		CO2Thermal: NA(),
	}
}

// Field returns the value of the named sensor or derived column.
// Unknown names return NA.
func (o *Observation) Field(name string) float64 {
	switch name {
	case FieldTemp:
		return o.Temp
	case FieldSal:
		return o.Sal
	case FieldCO2:
		return o.CO2
	case FieldPH:
		return o.PH
	case FieldPHExt:
		return o.PHExt
	case FieldDO:
		return o.DO
	case FieldOmegaA:
		return o.OmegaA
	case FieldOmegaC:
		return o.OmegaC
	case FieldAlkalinity:
		return o.Alkalinity
	case FieldDOMgPerL:
		return o.DOMgPerL
	case FieldCO2Corr:
		return o.CO2Corr
	case FieldCO2Thermal:
		return o.CO2Thermal
	}
	return NA()
}

// SetField sets the named sensor or derived column. Unknown names are
// ignored; loaders validate column names before calling this.
func (o *Observation) SetField(name string, v float64) {
	switch name {
	case FieldTemp:
		o.Temp = v
	case FieldSal:
		o.Sal = v
	case FieldCO2:
		o.CO2 = v
	case FieldPH:
		o.PH = v
	case FieldPHExt:
		o.PHExt = v
	case FieldDO:
		o.DO = v
	case FieldOmegaA:
		o.OmegaA = v
	case FieldOmegaC:
		o.OmegaC = v
	case FieldAlkalinity:
		o.Alkalinity = v
	case FieldDOMgPerL:
		o.DOMgPerL = v
	case FieldCO2Corr:
		o.CO2Corr = v
	case FieldCO2Thermal:
		o.CO2Thermal = v
	}
}

// KnownField reports whether name is a recognized sensor or derived column.
func KnownField(name string) bool {
	for _, f := range SensorFields {
		if f == name {
			return true
		}
	}
	for _, f := range DerivedFields {
		if f == name {
			return true
		}
	}
	return false
}

// SensorEmpty reports whether every raw sensor field of o is NA.
func (o *Observation) SensorEmpty() bool {
	for _, f := range SensorFields {
		if !IsNA(o.Field(f)) {
			return false
		}
	}
	return true
}

// DayOfYear returns the ordinal day of the observation's timestamp.
func (o *Observation) DayOfYear() int {
	return o.Timestamp.YearDay()
}
