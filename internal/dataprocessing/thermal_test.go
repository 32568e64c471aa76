package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

func thermalObs(ts time.Time, temp, co2 float64) domain.Observation {
	o := domain.NewObservation(ts)
	o.Temp = temp
	o.CO2 = co2
	return o
}

func TestSeriesMeans(t *testing.T) {
	obs := []domain.Observation{
		thermalObs(time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC), 10, 400),
		thermalObs(time.Date(2016, 7, 1, 1, 0, 0, 0, time.UTC), 14, 420),
		thermalObs(time.Date(2016, 7, 1, 2, 0, 0, 0, time.UTC), math.NaN(), math.NaN()),
	}

	means := SeriesMeans(obs)
	assert.InDelta(t, 12.0, means.Temp, 1e-12)
	assert.InDelta(t, 410.0, means.CO2, 1e-12)
}

func TestCorrectedCO2_IdentityAtReference(t *testing.T) {
	assert.InDelta(t, 400.0, CorrectedCO2(400, 12), 1e-9)
}

func TestCorrectedCO2(t *testing.T) {
	// warmer than reference: correction shrinks the value
	got := CorrectedCO2(420, 14)
	want := math.Round(420*math.Exp(0.0423*(12.0-14.0))*100) / 100
	assert.InDelta(t, want, got, 1e-9)
	assert.Less(t, got, 420.0)
}

func TestCorrectedCO2_NAPropagates(t *testing.T) {
	assert.True(t, math.IsNaN(CorrectedCO2(math.NaN(), 10)))
	assert.True(t, math.IsNaN(CorrectedCO2(400, math.NaN())))
}

func TestExpectedThermalCO2(t *testing.T) {
	means := ThermalMeans{Temp: 12, CO2: 410}

	// worked example: T_obs 10, series means 12 / 410
	got := ExpectedThermalCO2(10, means)
	assert.InDelta(t, 376.74, got, 0.01)
}

func TestApplyThermalCorrection(t *testing.T) {
	obs := []domain.Observation{
		thermalObs(time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC), 10, 400),
		thermalObs(time.Date(2016, 7, 1, 1, 0, 0, 0, time.UTC), 14, 420),
	}

	means := SeriesMeans(obs)
	ApplyThermalCorrection(context.Background(), obs, means, slog.Default())

	require.InDelta(t, 12.0, means.Temp, 1e-12)

	// corrected values use the fixed 12 C reference
	assert.InDelta(t, CorrectedCO2(400, 10), obs[0].CO2Corr, 1e-9)
	assert.InDelta(t, CorrectedCO2(420, 14), obs[1].CO2Corr, 1e-9)

	// expected-thermal values use series means
	assert.InDelta(t, 376.74, obs[0].CO2Thermal, 0.01)

	// both are rounded to 2 decimal places
	assert.InDelta(t, obs[0].CO2Corr, math.Round(obs[0].CO2Corr*100)/100, 1e-12)
}

func TestDOMgPerL(t *testing.T) {
	// 250 umol/kg -> 250 * 1.027 * 15.999 * 2 * 1000 / 1e6
	want := 250 * 1.027 * 15.999 * 2 * 1000 / 1e6
	assert.InDelta(t, want, DOMgPerL(250), 1e-12)
	assert.True(t, math.IsNaN(DOMgPerL(math.NaN())))
}

func TestApplyDOConversion(t *testing.T) {
	o := domain.NewObservation(time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC))
	o.DO = 250
	obs := []domain.Observation{o, domain.NewObservation(o.Timestamp.Add(time.Hour))}

	ApplyDOConversion(obs)

	assert.InDelta(t, DOMgPerL(250), obs[0].DOMgPerL, 1e-12)
	assert.True(t, domain.IsNA(obs[1].DOMgPerL))
}
