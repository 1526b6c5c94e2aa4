package savel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMixEmptySong(t *testing.T) {
	buffer, err := Mix(Song{}, 44100)
	require.NoError(t, err)
	require.Len(t, buffer, 0)
}

func TestMixSingleNoteLengths(t *testing.T) {
	// An exact duration*rate product: buffer and note windows coincide.
	song := Song{Tracks: []Track{{
		Instrument: Saw,
		Notes:      []Note{{Freq: 440, Volume: 0.5, Start: 0, Duration: 1}},
	}}}
	buffer, err := Mix(song, 10)
	require.NoError(t, err)
	require.Len(t, buffer, 10)
	require.Equal(t, -0.5, buffer[0]) // saw starts at -1, scaled by volume

	// A fractional product: the buffer rounds up to 101 samples but the
	// note only fills the first 100; the last sample stays silent.
	song.Tracks[0].Notes[0].Duration = 0.1005
	buffer, err = Mix(song, 1000)
	require.NoError(t, err)
	require.Len(t, buffer, 101)
	require.Equal(t, -0.5, buffer[0])
	require.Equal(t, 0.0, buffer[100])
}

func TestMixOverlappingNotesSum(t *testing.T) {
	note := Note{Freq: 1, Volume: 0.4, Start: 0, Duration: 1}
	song := Song{Tracks: []Track{{Instrument: Sine, Notes: []Note{note, note}}}}
	buffer, err := Mix(song, 8)
	require.NoError(t, err)
	require.Len(t, buffer, 8)
	for i, v := range buffer {
		expected := 2 * 0.4 * math.Sin(2*math.Pi*float64(i)/8)
		require.InDelta(t, expected, v, 1e-12, "sample %d", i)
	}
}

func TestOverlappingNotesClipDuringQuantization(t *testing.T) {
	note := Note{Freq: 1, Volume: 0.8, Start: 0, Duration: 1}
	song := Song{Tracks: []Track{{Instrument: Sine, Notes: []Note{note, note}}}}
	buffer, err := Mix(song, 8)
	require.NoError(t, err)
	// at t=0.25 the sine peaks, so the sum is 1.6 and the quantizer clips
	require.InDelta(t, 1.6, buffer[2], 1e-12)
	require.Equal(t, int16(math.MaxInt16), Quantize(buffer[2]))
}

func TestMixStartOffset(t *testing.T) {
	song := Song{Tracks: []Track{{
		Instrument: Saw,
		Notes:      []Note{{Freq: 440, Volume: 1, Start: 0.5, Duration: 0.5}},
	}}}
	buffer, err := Mix(song, 10)
	require.NoError(t, err)
	require.Len(t, buffer, 10)
	require.Equal(t, 0.0, buffer[4])
	require.Equal(t, -1.0, buffer[5]) // note begins here with the saw at -1
}

func TestMixRejectsInvalidSongs(t *testing.T) {
	for _, song := range []Song{
		{Tracks: []Track{{Instrument: Sine, Notes: []Note{{Freq: 0, Volume: 1, Duration: 1}}}}},
		{Tracks: []Track{{Instrument: Sine, Notes: []Note{{Freq: 440, Volume: 1, Start: -1, Duration: 1}}}}},
		{Tracks: []Track{{Instrument: Sine, Notes: []Note{{Freq: 440, Volume: 1, Duration: -1}}}}},
		{Tracks: []Track{{Instrument: Instrument(42)}}},
	} {
		_, err := Mix(song, 44100)
		require.Error(t, err)
	}
	_, err := Mix(Song{}, 0)
	require.Error(t, err)
}

func TestQuantizeFloors(t *testing.T) {
	require.Equal(t, int16(0), Quantize(0.5/32767)) // floor, not round-to-nearest
	require.Equal(t, int16(0), Quantize(0))
	require.Equal(t, int16(32767), Quantize(1))
	require.Equal(t, int16(32767), Quantize(2.5)) // clamps before scaling
	require.Equal(t, int16(-32767), Quantize(-1))
	require.Equal(t, int16(-32767), Quantize(-3))
	require.Equal(t, int16(-16384), Quantize(-0.5)) // floor(-16383.5)
	require.Equal(t, int16(16383), Quantize(0.5))
}

func TestMergeCombineStrategies(t *testing.T) {
	dst := []float64{1, 2, 3}
	merge(dst, []float64{10, 20, 30}, addTo[float64])
	require.Equal(t, []float64{11, 22, 33}, dst)
	merge(dst, []float64{7, 8, 9}, overwrite[float64])
	require.Equal(t, []float64{7, 8, 9}, dst)
}

func TestMergeLengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		merge(make([]float64, 3), make([]float64, 4), addTo[float64])
	})
	require.Panics(t, func() {
		merge(make([]byte, 1), nil, overwrite[byte])
	})
}
