// Package feature turns a cover/stego histogram pair into the normalized
// feature vector.
package feature

import (
	"errors"
	"fmt"

	"PPD/pkg/pattern"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrDegenerateNormalization is returned when every ratio is equal and
	// min-max normalization would divide by zero.
	ErrDegenerateNormalization = errors.New("feature: degenerate normalization (max == min)")

	// ErrNilHistogram is returned when either histogram is missing.
	ErrNilHistogram = errors.New("feature: nil histogram")
)

// Vector is the feature vector, one value per histogram bin in
// lexicographic order.
type Vector []float64

// Ratios returns stego/cover per bin, with 0 where the cover bin is empty.
func Ratios(cover, stego *pattern.Histogram) (Vector, error) {
	if cover == nil || stego == nil {
		return nil, ErrNilHistogram
	}

	r := make(Vector, pattern.Bins)
	for idx := range r {
		if c := cover.Count(idx); c > 0 {
			r[idx] = float64(stego.Count(idx)) / float64(c)
		}
	}
	return r, nil
}

// Aggregate computes the ratios and rescales them to [0,1] with min-max
// normalization.
func Aggregate(cover, stego *pattern.Histogram) (Vector, error) {
	r, err := Ratios(cover, stego)
	if err != nil {
		return nil, err
	}

	lo, hi := floats.Min(r), floats.Max(r)
	if hi == lo {
		return nil, fmt.Errorf("all %d ratios equal %g: %w", len(r), lo, ErrDegenerateNormalization)
	}

	// max maps to exactly 1
	span := hi - lo
	floats.AddConst(-lo, r)
	for i := range r {
		r[i] /= span
	}
	return r, nil
}
