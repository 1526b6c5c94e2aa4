package savel

import "math"

// waveFunc evaluates one waveform at time t (seconds) for a note of the given
// frequency (Hz). Waveforms are pure functions of (t, freq) with no phase
// state, so any sample of any note can be evaluated independently.
type waveFunc func(t, freq float64) float64

// waveforms is the closed strategy table indexed by Instrument.
var waveforms = [numInstruments]waveFunc{
	Sine:   sineWave,
	Square: squareWave,
	Saw:    sawWave,
}

// Eval returns the waveform amplitude in [-1,1] at time t for the given
// frequency. At t=0 the contract is: Sine yields 0, Square +1 and Saw -1,
// for any freq > 0.
func (i Instrument) Eval(t, freq float64) float64 {
	return waveforms[i](t, freq)
}

func sineWave(t, freq float64) float64 {
	return math.Sin(2 * math.Pi * freq * t)
}

// squareWave counts elapsed half-periods and flips sign on each one. The
// floor of 2*freq*t loses integer precision once it grows past 2^53, so very
// long renders at high frequencies eventually produce a misshapen wave; this
// matches the reference behavior and is left as is.
func squareWave(t, freq float64) float64 {
	if int64(math.Floor(2*freq*t))%2 == 0 {
		return 1
	}
	return -1
}

// sawWave is a rising ramp from -1 to 1 with period 1/freq, discontinuous at
// each period boundary.
func sawWave(t, freq float64) float64 {
	_, frac := math.Modf(freq * t)
	return 2*frac - 1
}
