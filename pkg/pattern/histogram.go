package pattern

import "fmt"

// S is the number of bins per histogram axis. Differences of S or more
// fall into the last bin.
const S = 4

// Bins is the total number of histogram cells, S^4.
const Bins = S * S * S * S

// Histogram is a 4-D co-occurrence table stored flat in lexicographic
// (left, center1, center2, right) order.
type Histogram struct {
	counts [Bins]int
}

// Index maps bin coordinates to the flat position.
func Index(i, j, k, l int) int {
	return ((i*S+j)*S+k)*S + l
}

// Coords is the inverse of Index.
func Coords(idx int) (i, j, k, l int) {
	l = idx % S
	idx /= S
	k = idx % S
	idx /= S
	j = idx % S
	i = idx / S
	return i, j, k, l
}

func inRange(v int) bool { return v >= 0 && v < S }

// At returns the count of bin (i, j, k, l).
func (h *Histogram) At(i, j, k, l int) (int, error) {
	if !inRange(i) || !inRange(j) || !inRange(k) || !inRange(l) {
		return 0, fmt.Errorf("pattern: bin (%d,%d,%d,%d) out of range", i, j, k, l)
	}
	return h.counts[Index(i, j, k, l)], nil
}

// Inc adds one to bin (i, j, k, l). Coordinates are assumed to be clamped.
func (h *Histogram) Inc(i, j, k, l int) {
	h.counts[Index(i, j, k, l)]++
}

// Count returns the count at flat index idx.
func (h *Histogram) Count(idx int) int {
	return h.counts[idx]
}

// Counts returns a copy of all bins in lexicographic order.
func (h *Histogram) Counts() []int {
	out := make([]int, Bins)
	copy(out, h.counts[:])
	return out
}

// Total sums every bin.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h.counts {
		n += c
	}
	return n
}

// Equal reports whether two histograms match bin for bin.
func (h *Histogram) Equal(o *Histogram) bool {
	return h.counts == o.counts
}

// ExpectedTotal is the number of increments Count makes for a cols×rows
// matrix: two per interior neighbourhood.
func ExpectedTotal(cols, rows int) int {
	if cols < 2 || rows < 3 {
		return 0
	}
	return 2 * (cols - 1) * (rows - 2)
}
