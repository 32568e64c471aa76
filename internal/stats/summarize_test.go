package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

func obsAt(ts time.Time, temp, omegaA float64) domain.Observation {
	o := domain.NewObservation(ts)
	o.Temp = temp
	o.OmegaA = omegaA
	return o
}

func TestFieldValues(t *testing.T) {
	obs := []domain.Observation{
		obsAt(time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC), 10, 1.2),
		obsAt(time.Date(2016, 7, 1, 1, 0, 0, 0, time.UTC), 12, math.NaN()),
	}

	temps := FieldValues(obs, domain.FieldTemp)
	require.Len(t, temps, 2)
	assert.Equal(t, 10.0, temps[0])

	omegas := FieldValues(obs, domain.FieldOmegaA)
	assert.True(t, math.IsNaN(omegas[1]))
}

func TestGroupByDay(t *testing.T) {
	obs := []domain.Observation{
		obsAt(time.Date(2016, 7, 2, 3, 0, 0, 0, time.UTC), 11, 1.0),
		obsAt(time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC), 10, 1.2),
		obsAt(time.Date(2016, 7, 1, 23, 0, 0, 0, time.UTC), 12, 1.4),
	}

	groups := GroupByDay(obs)
	require.Len(t, groups, 2)
	assert.Equal(t, time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC), groups[0].Date)
	assert.Len(t, groups[0].Obs, 2)
	assert.Len(t, groups[1].Obs, 1)
}

func TestSummarizeDaily(t *testing.T) {
	obs := []domain.Observation{
		obsAt(time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC), 10, 1.2),
		obsAt(time.Date(2016, 7, 1, 1, 0, 0, 0, time.UTC), 14, 1.4),
		obsAt(time.Date(2016, 7, 2, 0, 0, 0, 0, time.UTC), 20, math.NaN()),
	}

	daily := SummarizeDaily(obs, []string{domain.FieldTemp, domain.FieldOmegaA})
	require.Len(t, daily, 4)

	// day 1 temp
	assert.Equal(t, domain.FieldTemp, daily[0].Field)
	assert.Equal(t, 2, daily[0].Summary.Count)
	assert.InDelta(t, 12.0, daily[0].Summary.Mean, 1e-12)
	assert.InDelta(t, 4.0, daily[0].Summary.Range, 1e-12)

	// day 2 omega_a is all NA: aggregates are NA, not an error
	last := daily[3]
	assert.Equal(t, domain.FieldOmegaA, last.Field)
	assert.Equal(t, 0, last.Summary.Count)
	assert.True(t, math.IsNaN(last.Summary.Range))
}

func TestDailyMedians(t *testing.T) {
	obs := []domain.Observation{
		obsAt(time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC), 0, 0.8),
		obsAt(time.Date(2016, 7, 1, 1, 0, 0, 0, time.UTC), 0, 1.0),
		obsAt(time.Date(2016, 7, 1, 2, 0, 0, 0, time.UTC), 0, 1.2),
		obsAt(time.Date(2016, 7, 2, 0, 0, 0, 0, time.UTC), 0, 1.6),
	}

	medians := DailyMedians(obs, domain.FieldOmegaA)
	require.Len(t, medians, 2)
	assert.InDelta(t, 1.0, medians[0], 1e-12)
	assert.InDelta(t, 1.6, medians[1], 1e-12)
}

func TestSummarizeMonthly_PoolsAcrossYears(t *testing.T) {
	obs := []domain.Observation{
		obsAt(time.Date(2015, 7, 1, 0, 0, 0, 0, time.UTC), 16, 1.2),
		obsAt(time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC), 20, 1.4),
		obsAt(time.Date(2016, 1, 15, 0, 0, 0, 0, time.UTC), 4, 1.1),
	}

	monthly := SummarizeMonthly(obs, []string{domain.FieldTemp})
	require.Len(t, monthly, 1)

	july := monthly[0].Months[time.July-1]
	assert.Equal(t, 2, july.Count)
	assert.InDelta(t, 18.0, july.Mean, 1e-12)

	january := monthly[0].Months[time.January-1]
	assert.Equal(t, 1, january.Count)

	// months with no deployment yield NA aggregates
	april := monthly[0].Months[time.April-1]
	assert.Equal(t, 0, april.Count)
	assert.True(t, math.IsNaN(april.Mean))
}

func TestSummarizeFields(t *testing.T) {
	obs := []domain.Observation{
		obsAt(time.Date(2016, 7, 1, 0, 0, 0, 0, time.UTC), 10, 1.2),
		obsAt(time.Date(2016, 7, 1, 1, 0, 0, 0, time.UTC), 14, 1.4),
	}

	fields := SummarizeFields(obs, []string{domain.FieldTemp, domain.FieldSal})
	require.Len(t, fields, 2)
	assert.Equal(t, 2, fields[0].Summary.Count)
	assert.Equal(t, 0, fields[1].Summary.Count) // sal never set
}
