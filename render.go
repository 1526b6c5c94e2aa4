package savel

import (
	"fmt"
	"math"
	"os"
)

// combineFunc tells merge how an incoming value meets the value already in
// the destination: overwrite it or add to it.
type combineFunc[T any] func(cur, incoming T) T

func overwrite[T any](_, incoming T) T { return incoming }

func addTo[T Number](cur, incoming T) T { return cur + incoming }

// Number covers the element types merge is used with.
type Number interface {
	~float64 | ~byte
}

// merge combines src into dst element by element. The slices must be exactly
// the same length; a mismatch means the caller computed its windows wrong,
// which is a programming error, so merge panics rather than truncating.
func merge[T any](dst, src []T, combine combineFunc[T]) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("merge length mismatch: dst %d, src %d", len(dst), len(src)))
	}
	for i := range dst {
		dst[i] = combine(dst[i], src[i])
	}
}

// Mix renders the song into a single monophonic float buffer of length
// ceil(TotalDuration * sampleRate). Each note contributes
// volume * waveform(i/sampleRate, freq) for floor(duration * sampleRate)
// samples starting at sample floor(start * sampleRate); overlapping notes
// accumulate. The result is not normalized, so the sum of simultaneous notes
// can leave [-1,1]; Quantize clips it later.
func Mix(song Song, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0, got %d", sampleRate)
	}
	if err := song.Validate(); err != nil {
		return nil, err
	}
	rate := float64(sampleRate)
	buffer := make([]float64, int(math.Ceil(song.TotalDuration()*rate)))
	for _, track := range song.Tracks {
		for _, note := range track.Notes {
			samples := make([]float64, int(note.Duration*rate))
			for i := range samples {
				samples[i] = note.Volume * track.Instrument.Eval(float64(i)/rate, note.Freq)
			}
			start := int(note.Start * rate)
			// The buffer length rounds up while note windows round down, so
			// a note ending exactly at the song boundary can still overshoot
			// by a sample; clamp instead of tripping the merge check.
			if end := start + len(samples); end > len(buffer) {
				samples = samples[:len(buffer)-start]
			}
			merge(buffer[start:start+len(samples)], samples, addTo[float64])
		}
	}
	return buffer, nil
}

// Quantize converts one float sample to a 16-bit PCM sample: clamp to [-1,1],
// scale by 32767 and floor. Flooring instead of rounding biases every sample
// downward by up to one step; it is kept deliberately so that rendered files
// are bit-identical with earlier versions.
func Quantize(sample float64) int16 {
	return int16(math.Floor(math.MaxInt16 * clamp(sample, -1, 1)))
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Render mixes, quantizes and serializes the song, returning the complete
// container file as a byte slice.
func Render(song Song, info WriteInfo) ([]byte, error) {
	if info.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0, got %d", info.SampleRate)
	}
	if info.Format != FormatWav {
		return nil, fmt.Errorf("unknown output format %d", info.Format)
	}
	buffer, err := Mix(song, info.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("mixing failed: %w", err)
	}
	pcm := make([]int16, len(buffer))
	for i, sample := range buffer {
		pcm[i] = Quantize(sample)
	}
	return Wav(pcm, info.SampleRate, info.Stereo), nil
}

// Export renders the song and writes it to info.FilePath in a single write.
// The error must not be ignored: a failed write is the only recoverable
// failure in the whole pipeline and retrying it is the caller's call.
func Export(song Song, info WriteInfo) error {
	data, err := Render(song, info)
	if err != nil {
		return err
	}
	if err := os.WriteFile(info.FilePath, data, 0644); err != nil {
		return fmt.Errorf("writing %v failed: %w", info.FilePath, err)
	}
	return nil
}
