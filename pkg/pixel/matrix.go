// Package pixel holds the sample grid that every stage of the feature
// pipeline works on.
//
// A Matrix stores cols×rows integer samples in a single row-major buffer.
// All accessors take the column first and the row second (x, y), which is
// the same order the image source, the embedding simulator and the
// pattern counter use, so "neighbourhood" means the same thing everywhere.
package pixel

import (
	"errors"
	"fmt"
	"math"
)

// MaxSamples bounds the size of a single matrix. Requests above it fail
// with ErrAllocation instead of attempting the allocation.
const MaxSamples = 1 << 30

var (
	// ErrInvalidDimensions is returned when cols or rows is not positive.
	ErrInvalidDimensions = errors.New("pixel: dimensions must be > 0")

	// ErrAllocation reports that the sample buffer could not be obtained.
	ErrAllocation = errors.New("pixel: allocation failure")

	// ErrOutOfRange indicates a column or row outside the matrix.
	ErrOutOfRange = errors.New("pixel: index out of range")

	// ErrDimensionMismatch indicates two matrices of different shape.
	ErrDimensionMismatch = errors.New("pixel: dimension mismatch")

	// ErrAliased is returned by Copy when source and destination share storage.
	ErrAliased = errors.New("pixel: source and destination alias")

	// ErrReleased is returned when a released (or nil) matrix is used.
	ErrReleased = errors.New("pixel: matrix released")
)

// Matrix is a rectangular grid of integer samples.
type Matrix struct {
	cols, rows int
	data       []int // row-major, len == cols*rows
}

// New allocates a zero-filled cols×rows matrix.
func New(cols, rows int) (m *Matrix, err error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", cols, rows, ErrInvalidDimensions)
	}
	if cols > MaxSamples/rows {
		return nil, fmt.Errorf("New(%d,%d): %d samples exceed limit: %w", cols, rows, uint64(cols)*uint64(rows), ErrAllocation)
	}

	defer func() {
		if r := recover(); r != nil {
			m, err = nil, fmt.Errorf("New(%d,%d): %v: %w", cols, rows, r, ErrAllocation)
		}
	}()

	return &Matrix{cols: cols, rows: rows, data: make([]int, cols*rows)}, nil
}

// Cols returns the number of columns (image width).
func (m *Matrix) Cols() int { return m.cols }

// Rows returns the number of rows (image height).
func (m *Matrix) Rows() int { return m.rows }

// Released reports whether the matrix no longer owns a buffer.
func (m *Matrix) Released() bool { return m == nil || m.data == nil }

// At returns the sample at column x, row y.
func (m *Matrix) At(x, y int) (int, error) {
	if m.Released() {
		return 0, ErrReleased
	}
	if x < 0 || x >= m.cols || y < 0 || y >= m.rows {
		return 0, fmt.Errorf("At(%d,%d): %w", x, y, ErrOutOfRange)
	}
	return m.data[y*m.cols+x], nil
}

// Set stores v at column x, row y.
func (m *Matrix) Set(x, y, v int) error {
	if m.Released() {
		return ErrReleased
	}
	if x < 0 || x >= m.cols || y < 0 || y >= m.rows {
		return fmt.Errorf("Set(%d,%d): %w", x, y, ErrOutOfRange)
	}
	m.data[y*m.cols+x] = v
	return nil
}

// Row returns the samples of row y. The slice aliases the matrix buffer
// and is only valid until Release.
func (m *Matrix) Row(y int) ([]int, error) {
	if m.Released() {
		return nil, ErrReleased
	}
	if y < 0 || y >= m.rows {
		return nil, fmt.Errorf("Row(%d): %w", y, ErrOutOfRange)
	}
	return m.data[y*m.cols : (y+1)*m.cols], nil
}

// Samples exposes the row-major buffer for whole-matrix passes.
func (m *Matrix) Samples() []int {
	if m == nil {
		return nil
	}
	return m.data
}

// Copy performs a deep element-wise copy of src into dst. Both matrices
// must already be allocated with the same dimensions.
func Copy(dst, src *Matrix) error {
	if dst.Released() || src.Released() {
		return fmt.Errorf("Copy: %w", ErrReleased)
	}
	if dst.cols != src.cols || dst.rows != src.rows {
		return fmt.Errorf("Copy: %dx%d into %dx%d: %w", src.cols, src.rows, dst.cols, dst.rows, ErrDimensionMismatch)
	}
	if dst == src || &dst.data[0] == &src.data[0] {
		return fmt.Errorf("Copy: %w", ErrAliased)
	}
	copy(dst.data, src.data)
	return nil
}

// Clone returns an independent deep copy of m.
func (m *Matrix) Clone() (*Matrix, error) {
	if m.Released() {
		return nil, fmt.Errorf("Clone: %w", ErrReleased)
	}
	c, err := New(m.cols, m.rows)
	if err != nil {
		return nil, err
	}
	if err := Copy(c, m); err != nil {
		return nil, err
	}
	return c, nil
}

// Release drops the sample buffer. Calling it more than once, or on a nil
// matrix, is a no-op.
func (m *Matrix) Release() {
	if m == nil {
		return
	}
	m.data = nil
}

// Equal reports whether a and b have the same shape and samples.
func Equal(a, b *Matrix) bool {
	if a.Released() || b.Released() {
		return false
	}
	if a.cols != b.cols || a.rows != b.rows {
		return false
	}
	for i, v := range a.data {
		if b.data[i] != v {
			return false
		}
	}
	return true
}

// Range returns the smallest and largest sample.
func (m *Matrix) Range() (lo, hi int) {
	if m.Released() {
		return 0, 0
	}
	lo, hi = math.MaxInt, math.MinInt
	for _, v := range m.data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
