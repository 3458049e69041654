// Package embed simulates hiding a random bitstream in a grayscale matrix
// with LSB matching.
//
// The simulation never produces an extractable payload. It only reproduces
// the statistical footprint of embedding: every selected sample whose least
// significant bit disagrees with a random target bit is nudged by ±1.
package embed

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"PPD/pkg/pixel"
)

// ErrInvalidBitrate is returned for a bitrate outside (0, 1].
var ErrInvalidBitrate = errors.New("embed: bitrate must be in (0, 1]")

// Source is the randomness the simulator draws from. *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

// NewSource returns the default seeded Source.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Stats summarizes one simulation pass.
type Stats struct {
	Eligible int // samples strictly inside (0, 255)
	Selected int // eligible samples that passed the skip-interval draw
	Changed  int // selected samples whose value moved by ±1
}

// SkipInterval turns a bitrate into the integer interval br = floor(1/bitrate).
// A sample is selected with probability 1/br.
func SkipInterval(bitrate float64) (int, error) {
	if math.IsNaN(bitrate) || bitrate <= 0 || bitrate > 1 {
		return 0, fmt.Errorf("bitrate %v: %w", bitrate, ErrInvalidBitrate)
	}
	return int(math.Floor(1 / bitrate)), nil
}

// Simulate mutates m in place. Samples equal to 0 or 255 are left alone
// and draw nothing from rng; samples at 1 or 254 may still move onto the
// extremes.
func Simulate(m *pixel.Matrix, bitrate float64, rng Source) error {
	_, err := SimulateStats(m, bitrate, rng)
	return err
}

// SimulateStats is Simulate that also reports how many samples were touched.
func SimulateStats(m *pixel.Matrix, bitrate float64, rng Source) (Stats, error) {
	var st Stats

	br, err := SkipInterval(bitrate)
	if err != nil {
		return st, err
	}
	if rng == nil {
		return st, errors.New("embed: nil random source")
	}
	if m.Released() {
		return st, fmt.Errorf("embed: %w", pixel.ErrReleased)
	}

	// row-major: y outer, x inner
	samples := m.Samples()
	for i, v := range samples {
		if v <= 0 || v >= 255 {
			continue
		}
		st.Eligible++

		bit := rng.Intn(2)
		sign := -1
		if rng.Intn(2) == 0 {
			sign = 1
		}

		if rng.Intn(br) != 0 {
			continue
		}
		st.Selected++

		if v%2 != bit {
			samples[i] = v + sign
			st.Changed++
		}
	}

	return st, nil
}

// Simulator bundles a bitrate with its random source.
type Simulator struct {
	Bitrate float64
	Source  Source
}

// NewSimulator creates a Simulator seeded with seed.
func NewSimulator(bitrate float64, seed int64) *Simulator {
	return &Simulator{Bitrate: bitrate, Source: NewSource(seed)}
}

// Embed returns a stego copy of cover; cover itself is not modified.
func (s *Simulator) Embed(cover *pixel.Matrix) (*pixel.Matrix, Stats, error) {
	stego, err := cover.Clone()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("embed: %w", err)
	}

	st, err := SimulateStats(stego, s.Bitrate, s.Source)
	if err != nil {
		stego.Release()
		return nil, st, err
	}
	return stego, st, nil
}
