package dataprocessing

import (
	"context"
	"log/slog"
	"math"

	"github.com/jstetich/CBEP-OA-1/internal/stats"
	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// Thermal-correction constants after Takahashi et al. (2002).
const (
	// thermalCoefficient is the fractional change of pCO2 per degree C.
	thermalCoefficient = 0.0423
	// referenceTemp is the temperature, in degrees C, that corrected
	// pCO2 values are normalized to.
	referenceTemp = 12.0
)

// ThermalMeans holds the whole-series aggregates the corrector needs.
// They are computed once over the fully cleaned series; computing them
// over a partial series would silently change every corrected value.
type ThermalMeans struct {
	Temp float64
	CO2  float64
}

// SeriesMeans computes the whole-series mean temperature and mean pCO2
// over non-NA values. This is pass one of the two-pass correction.
func SeriesMeans(obs []domain.Observation) ThermalMeans {
	return ThermalMeans{
		Temp: stats.Mean(stats.FieldValues(obs, domain.FieldTemp)),
		CO2:  stats.Mean(stats.FieldValues(obs, domain.FieldCO2)),
	}
}

// CorrectedCO2 returns the observed pCO2 adjusted to the reference
// temperature, removing the portion of variation attributable to
// temperature alone. At temp == referenceTemp the result equals the raw
// value. Rounded to 2 decimal places; NA propagates.
func CorrectedCO2(co2, temp float64) float64 {
	return round2(co2 * math.Exp(thermalCoefficient*(referenceTemp-temp)))
}

// ExpectedThermalCO2 returns the pCO2 expected at the observed
// temperature if CO2 concentration never varied, using the whole-series
// means. Rounded to 2 decimal places; NA propagates.
func ExpectedThermalCO2(temp float64, means ThermalMeans) float64 {
	return round2(means.CO2 * math.Exp(thermalCoefficient*(temp-means.Temp)))
}

// ApplyThermalCorrection runs pass two of the correction, filling the
// CO2Corr and CO2Thermal columns in place using precomputed series means.
func ApplyThermalCorrection(ctx context.Context, obs []domain.Observation, means ThermalMeans, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "applying thermal correction",
		slog.Int("rows", len(obs)),
		slog.Float64("mean_temp", means.Temp),
		slog.Float64("mean_co2", means.CO2))

	for i := range obs {
		obs[i].CO2Corr = CorrectedCO2(obs[i].CO2, obs[i].Temp)
		obs[i].CO2Thermal = ExpectedThermalCO2(obs[i].Temp, means)
	}
}

// round2 rounds to 2 decimal places. NaN stays NaN.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
