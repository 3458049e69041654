package lsb

import (
	"errors"
	"math"

	"PPD/pkg/pixel"
)

// Distribution describes the least significant bit plane of a grayscale matrix
type Distribution struct {
	Zeros     int
	Ones      int
	ZeroRatio float64
	Entropy   float64 // Shannon entropy of the bit plane, in [0,1]
}

// AnalyzeDistribution counts the LSBs of every sample in m
func AnalyzeDistribution(m *pixel.Matrix) (*Distribution, error) {
	if m.Released() {
		return nil, errors.New("nil or released matrix provided")
	}

	d := &Distribution{}
	for _, v := range m.Samples() {
		if v&1 == 0 {
			d.Zeros++
		} else {
			d.Ones++
		}
	}

	total := float64(d.Zeros + d.Ones)
	d.ZeroRatio = float64(d.Zeros) / total
	d.Entropy = calculateEntropy(d.ZeroRatio, 1-d.ZeroRatio)

	return d, nil
}

// ChangedSamples counts the positions where cover and stego differ
func ChangedSamples(cover, stego *pixel.Matrix) (int, error) {
	if cover.Released() || stego.Released() {
		return 0, errors.New("nil or released matrix provided")
	}
	if cover.Cols() != stego.Cols() || cover.Rows() != stego.Rows() {
		return 0, pixel.ErrDimensionMismatch
	}

	n := 0
	s := stego.Samples()
	for i, v := range cover.Samples() {
		if s[i] != v {
			n++
		}
	}
	return n, nil
}

// calculateEntropy calculates Shannon entropy from probability distribution
func calculateEntropy(zeroProb, oneProb float64) float64 {
	// Avoid log(0) errors
	if zeroProb <= 0 || oneProb <= 0 {
		return 0
	}

	// Shannon entropy formula: -sum(p_i * log2(p_i))
	return -zeroProb*math.Log2(zeroProb) - oneProb*math.Log2(oneProb)
}
