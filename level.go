package savel

import (
	"fmt"
	"math"

	"github.com/viterin/vek"
)

// Decibel is a level relative to full scale (dBFS); 0 dB is a full-scale
// sine peak and anything above it will clip during quantization.
type Decibel float64

func (d Decibel) String() string {
	return fmt.Sprintf("%.1f dB", float64(d))
}

// LevelResult reports the levels of a mixed float buffer before quantization.
type LevelResult struct {
	Peak Decibel // largest absolute sample value
	RMS  Decibel // root mean square over the whole buffer
}

// Level measures the peak and RMS level of a mixed buffer. A peak above 0 dB
// means the additive sum left [-1,1] somewhere and the quantizer will clip
// it; measuring here lets the caller see that before deciding whether the
// volumes need adjusting. An empty buffer measures -Inf on both.
func Level(buffer []float64) LevelResult {
	if len(buffer) == 0 {
		inf := Decibel(math.Inf(-1))
		return LevelResult{Peak: inf, RMS: inf}
	}
	peak := vek.Max(vek.Abs(buffer))
	power := vek.Mean(vek.Mul(buffer, buffer))
	return LevelResult{
		Peak: amplitudeDb(peak),
		RMS:  amplitudeDb(math.Sqrt(power)),
	}
}

func amplitudeDb(a float64) Decibel {
	return Decibel(20 * math.Log10(a))
}
