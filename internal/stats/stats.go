package stats

import (
	"math"
	"sort"
)

// valid returns the sorted non-NA values of vs. The input is not modified.
func valid(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// Count returns the number of non-NA values.
func Count(vs []float64) int {
	n := 0
	for _, v := range vs {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Mean returns the arithmetic mean of the non-NA values, NaN when there
// are none.
func Mean(vs []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range vs {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Min returns the smallest non-NA value, NaN when there are none.
func Min(vs []float64) float64 {
	s := valid(vs)
	if len(s) == 0 {
		return math.NaN()
	}
	return s[0]
}

// Max returns the largest non-NA value, NaN when there are none.
func Max(vs []float64) float64 {
	s := valid(vs)
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

// Range returns max-min over the non-NA values. All-NA input yields NaN
// rather than an error, so daily rollups over gappy sensors never abort.
func Range(vs []float64) float64 {
	s := valid(vs)
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1] - s[0]
}

// StdDev returns the sample standard deviation (n-1 denominator) of the
// non-NA values. Fewer than two values yield NaN.
func StdDev(vs []float64) float64 {
	s := valid(vs)
	if len(s) < 2 {
		return math.NaN()
	}
	mean := 0.0
	for _, v := range s {
		mean += v
	}
	mean /= float64(len(s))

	ss := 0.0
	for _, v := range s {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(s)-1))
}

// Quantile returns the q-th quantile (0 <= q <= 1) of the non-NA values
// using linear interpolation between order statistics. All-NA input
// yields NaN.
func Quantile(vs []float64, q float64) float64 {
	s := valid(vs)
	if len(s) == 0 || q < 0 || q > 1 {
		return math.NaN()
	}
	if len(s) == 1 {
		return s[0]
	}

	pos := q * float64(len(s)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return s[lo]
	}
	frac := pos - float64(lo)
	return s[lo]*(1-frac) + s[hi]*frac
}

// Median returns the 50th percentile of the non-NA values.
func Median(vs []float64) float64 {
	return Quantile(vs, 0.5)
}

// IQR returns the interquartile range (75th minus 25th percentile) of
// the non-NA values.
func IQR(vs []float64) float64 {
	return Quantile(vs, 0.75) - Quantile(vs, 0.25)
}

// Spread80 returns the 10th-90th interpercentile range of the non-NA
// values, a robust measure of intra-day variability.
func Spread80(vs []float64) float64 {
	return Quantile(vs, 0.9) - Quantile(vs, 0.1)
}

// Summary holds the aggregate statistics reported for one column of one
// group of observations.
type Summary struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"stddev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	IQR      float64 `json:"iqr"`
	Spread80 float64 `json:"spread_80"`
}

// Summarize computes the full NA-safe aggregate set over vs.
func Summarize(vs []float64) Summary {
	return Summary{
		Count:    Count(vs),
		Mean:     Mean(vs),
		Median:   Median(vs),
		StdDev:   StdDev(vs),
		Min:      Min(vs),
		Max:      Max(vs),
		Range:    Range(vs),
		IQR:      IQR(vs),
		Spread80: Spread80(vs),
	}
}

// ThresholdStats reports how often a column's non-NA values fall below a
// fixed threshold.
type ThresholdStats struct {
	Threshold float64 `json:"threshold"`
	Below     int     `json:"below"`
	Observed  int     `json:"observed"`
	Fraction  float64 `json:"fraction"`
}

// BelowThreshold counts the non-NA values of vs strictly below threshold.
// NA values are excluded from both numerator and denominator; an all-NA
// input yields a zero count with NaN fraction.
func BelowThreshold(vs []float64, threshold float64) ThresholdStats {
	st := ThresholdStats{Threshold: threshold}
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		st.Observed++
		if v < threshold {
			st.Below++
		}
	}
	if st.Observed == 0 {
		st.Fraction = math.NaN()
	} else {
		st.Fraction = float64(st.Below) / float64(st.Observed)
	}
	return st
}
