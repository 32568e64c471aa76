// Package stats provides NA-safe descriptive statistics over float64
// series where NaN marks a missing value, plus daily and monthly rollups
// and threshold-crossing counts over Observation series.
//
// Every aggregate ignores NA inputs and yields NaN, never an error or a
// panic, when a group has no observed values. Quantiles use linear
// interpolation between order statistics and standard deviations use the
// sample (n-1) denominator.
package stats
