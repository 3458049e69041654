// Package pattern builds the co-occurrence histogram of local
// neighbourhood shapes.
//
// Every interior position contributes a five-sample neighbourhood
//
//	a b
//	c d
//	  e
//
// whose extreme value (pivot) is compared with the four remaining samples.
// The role table decides which sample plays left, right and the two
// centers depending on where the pivot sits:
//
//	   c1 c2
//	    \ /
//	l - pivot - r
package pattern

import (
	"fmt"

	"PPD/pkg/pixel"
)

// Position names one of the five neighbourhood samples.
type Position int

const (
	A Position = iota // (x,   y-1)
	B                 // (x+1, y-1)
	C                 // (x,   y)
	D                 // (x+1, y)
	E                 // (x+1, y+1)
)

func (p Position) String() string {
	return string(rune('a' + int(p)))
}

// Roles assigns the companions of a pivot.
type Roles struct {
	Pivot   Position
	Left    Position
	Right   Position
	Center1 Position
	Center2 Position
}

// RoleTable is shared by the min and max passes and is indexed by the
// pivot position.
var RoleTable = [5]Roles{
	{Pivot: A, Left: B, Right: C, Center1: D, Center2: E},
	{Pivot: B, Left: D, Right: A, Center1: C, Center2: E},
	{Pivot: C, Left: A, Right: E, Center1: B, Center2: D},
	{Pivot: D, Left: E, Right: B, Center1: C, Center2: A},
	{Pivot: E, Left: C, Right: D, Center1: A, Center2: B},
}

// Neighbourhood holds the five samples in Position order.
type Neighbourhood [5]int

// MinPivot returns the position of the first strict minimum in a..e order.
func (n *Neighbourhood) MinPivot() Position {
	p := A
	for q := B; q <= E; q++ {
		if n[q] < n[p] {
			p = q
		}
	}
	return p
}

// MaxPivot returns the position of the first strict maximum in a..e order.
func (n *Neighbourhood) MaxPivot() Position {
	p := A
	for q := B; q <= E; q++ {
		if n[q] > n[p] {
			p = q
		}
	}
	return p
}

func clamp(d int) int {
	if d >= S {
		return S - 1
	}
	return d
}

// MinBin returns the min-pass bin coordinates (left, center1, center2, right).
func (n *Neighbourhood) MinBin() (i, j, k, l int) {
	r := RoleTable[n.MinPivot()]
	pv := n[r.Pivot]
	return clamp(n[r.Left] - pv), clamp(n[r.Center1] - pv), clamp(n[r.Center2] - pv), clamp(n[r.Right] - pv)
}

// MaxBin returns the max-pass bin coordinates (left, center1, center2, right).
func (n *Neighbourhood) MaxBin() (i, j, k, l int) {
	r := RoleTable[n.MaxPivot()]
	pv := n[r.Pivot]
	return clamp(pv - n[r.Left]), clamp(pv - n[r.Center1]), clamp(pv - n[r.Center2]), clamp(pv - n[r.Right])
}

// Count scans every position with x in [0, cols-2] and y in [1, rows-2]
// and adds one min-pass and one max-pass increment per position.
func Count(m *pixel.Matrix) (*Histogram, error) {
	if m.Released() {
		return nil, fmt.Errorf("pattern: %w", pixel.ErrReleased)
	}

	h := &Histogram{}
	cols, rows := m.Cols(), m.Rows()
	s := m.Samples()

	var n Neighbourhood
	for y := 1; y < rows-1; y++ {
		up, mid, down := s[(y-1)*cols:y*cols], s[y*cols:(y+1)*cols], s[(y+1)*cols:(y+2)*cols]
		for x := 0; x < cols-1; x++ {
			n[A], n[B] = up[x], up[x+1]
			n[C], n[D] = mid[x], mid[x+1]
			n[E] = down[x+1]

			h.Inc(n.MinBin())
			h.Inc(n.MaxBin())
		}
	}

	return h, nil
}
