package stats

import (
	"sort"
	"time"

	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// FieldValues extracts the named column from a series of observations,
// preserving row order.
func FieldValues(obs []domain.Observation, field string) []float64 {
	out := make([]float64, len(obs))
	for i := range obs {
		out[i] = obs[i].Field(field)
	}
	return out
}

// FieldSummary pairs a column name with its aggregate statistics.
type FieldSummary struct {
	Field   string  `json:"field"`
	Summary Summary `json:"summary"`
}

// SummarizeFields computes whole-series aggregates for each of the given
// columns, in the order given.
func SummarizeFields(obs []domain.Observation, fields []string) []FieldSummary {
	out := make([]FieldSummary, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldSummary{
			Field:   f,
			Summary: Summarize(FieldValues(obs, f)),
		})
	}
	return out
}

// DayGroup is the set of observations sharing one calendar date.
type DayGroup struct {
	Date time.Time
	Obs  []domain.Observation
}

// GroupByDay partitions observations by calendar date, returned in
// chronological order.
func GroupByDay(obs []domain.Observation) []DayGroup {
	byDay := make(map[time.Time][]domain.Observation)
	for _, o := range obs {
		ts := o.Timestamp
		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		byDay[day] = append(byDay[day], o)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		groups = append(groups, DayGroup{Date: day, Obs: byDay[day]})
	}
	return groups
}

// DailySummary holds one column's aggregates for one calendar date.
type DailySummary struct {
	Date    time.Time `json:"date"`
	Field   string    `json:"field"`
	Summary Summary   `json:"summary"`
}

// SummarizeDaily computes the daily rollup of each column: one row per
// date per column, dates in chronological order.
func SummarizeDaily(obs []domain.Observation, fields []string) []DailySummary {
	groups := GroupByDay(obs)
	out := make([]DailySummary, 0, len(groups)*len(fields))
	for _, g := range groups {
		for _, f := range fields {
			out = append(out, DailySummary{
				Date:    g.Date,
				Field:   f,
				Summary: Summarize(FieldValues(g.Obs, f)),
			})
		}
	}
	return out
}

// DailyMedians returns the per-date medians of one column, in
// chronological order. Used for the daily-median variant of the
// threshold-crossing report.
func DailyMedians(obs []domain.Observation, field string) []float64 {
	groups := GroupByDay(obs)
	out := make([]float64, 0, len(groups))
	for _, g := range groups {
		out = append(out, Median(FieldValues(g.Obs, field)))
	}
	return out
}

// MonthlySummary holds one column's aggregates for each calendar month,
// pooled across deployment years. Index 0 is January.
type MonthlySummary struct {
	Field  string      `json:"field"`
	Months [12]Summary `json:"months"`
}

// SummarizeMonthly pools observations by calendar month across years and
// computes each column's aggregates per month.
func SummarizeMonthly(obs []domain.Observation, fields []string) []MonthlySummary {
	byMonth := make(map[time.Month][]domain.Observation)
	for _, o := range obs {
		m := o.Timestamp.Month()
		byMonth[m] = append(byMonth[m], o)
	}

	out := make([]MonthlySummary, 0, len(fields))
	for _, f := range fields {
		ms := MonthlySummary{Field: f}
		for m := time.January; m <= time.December; m++ {
			ms.Months[m-1] = Summarize(FieldValues(byMonth[m], f))
		}
		out = append(out, ms)
	}
	return out
}
