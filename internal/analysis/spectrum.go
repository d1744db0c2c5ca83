// Package analysis extracts frequency content from recorded trajectories.
// The oscillator models are dominated by a single mode, so the dominant
// spectral peak is a cheap check that a solver preserved the dynamics.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of data. The input
// is zero-padded to the next power of two before the transform.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	padded := pad(data)
	coeffs := fft.FFTReal(padded)

	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz with the largest spectral
// magnitude, ignoring the DC bin. dt is the sampling interval.
func DominantFrequency(data []float64, dt float64) float64 {
	if len(data) < 2 || dt <= 0 {
		return 0
	}

	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	peak := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[peak] {
			peak = i
		}
	}

	n := nextPow2(len(data))
	return float64(peak) / (float64(n) * dt)
}

func pad(data []float64) []float64 {
	n := nextPow2(len(data))
	if n == len(data) {
		return data
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
