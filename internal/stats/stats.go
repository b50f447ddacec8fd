// Package stats provides the descriptive statistics behind the insights endpoints.
// All functions are pure and never modify their inputs.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of xs, or NaN when xs is empty
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// Round2 rounds v to two decimal places, half away from zero.
// NaN and infinities are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}

// RoundedMean returns Round2(Mean(xs)), or nil when the mean is undefined
func RoundedMean(xs []float64) *float64 {
	m := Mean(xs)
	if math.IsNaN(m) {
		return nil
	}
	r := Round2(m)
	return &r
}

// CountAbove counts values strictly greater than threshold
func CountAbove(xs []float64, threshold float64) int {
	n := 0
	for _, x := range xs {
		if x > threshold {
			n++
		}
	}
	return n
}

// CountAboveBoth counts positions where xs[i] > tx and ys[i] > ty.
// xs and ys must have the same length.
func CountAboveBoth(xs []float64, tx float64, ys []float64, ty float64) int {
	n := 0
	for i := range xs {
		if xs[i] > tx && ys[i] > ty {
			n++
		}
	}
	return n
}

// Pearson returns the Pearson correlation of x and y over the positions where
// both are present (not NaN). It is NaN when fewer than two such positions
// exist or either side has zero variance.
func Pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	// clamp floating point drift so the value stays a valid correlation
	return math.Max(-1, math.Min(1, r))
}

// CorrelationMatrix returns the symmetric matrix of pairwise Pearson
// correlations between columns
func CorrelationMatrix(columns [][]float64) [][]float64 {
	n := len(columns)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := Pearson(columns[i], columns[j])
			m[i][j] = r
			m[j][i] = r
		}
	}
	return m
}

// Shares converts counts to percentages of their total.
// The result is all zeros when the total is zero.
func Shares(counts []int) []float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = 100 * float64(c) / float64(total)
	}
	return out
}
