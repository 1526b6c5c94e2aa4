// Package savel renders note-based, multi-track songs into linear PCM audio
// and writes them out as uncompressed .wav files. The model is deliberately
// small: a Song is a list of Tracks, a Track is a list of Notes played with a
// single Instrument waveform, and rendering is purely additive; overlapping
// notes sum and the sum is hard-clipped during quantization.
package savel

import (
	"fmt"
)

type (
	// Note is a single note event within a track: a frequency in Hz, a gain
	// multiplier (usually within [0,1], but larger values are allowed and
	// simply clip earlier), and its position on the timeline in seconds.
	// Notes are plain values; once added to a Track they are never mutated
	// by the renderer.
	Note struct {
		Freq     float64 // Hz, must be > 0
		Volume   float64
		Start    float64 // seconds from the beginning of the song, >= 0
		Duration float64 // seconds, >= 0
	}

	// Track is an ordered list of notes, all played with the same instrument.
	// Notes within a track may overlap in time; overlapping notes are summed,
	// not overwritten.
	Track struct {
		Instrument Instrument
		Notes      []Note `yaml:",flow"`
	}

	// Song is the root of the model, owning all tracks and notes. A Song is
	// built up completely before rendering; the renderer never mutates it.
	Song struct {
		Tracks []Track
	}
)

// Copy makes a deep copy of a Track.
func (t *Track) Copy() Track {
	notes := make([]Note, len(t.Notes))
	copy(notes, t.Notes)
	return Track{Instrument: t.Instrument, Notes: notes}
}

// Copy makes a deep copy of a Song.
func (s *Song) Copy() Song {
	tracks := make([]Track, len(s.Tracks))
	for i, t := range s.Tracks {
		tracks[i] = t.Copy()
	}
	return Song{Tracks: tracks}
}

// TotalDuration returns the length of the song in seconds: the largest
// start+duration over all notes in all tracks, or 0 for a song with no notes.
func (s *Song) TotalDuration() float64 {
	total := 0.0
	for _, track := range s.Tracks {
		for _, note := range track.Notes {
			if end := note.Start + note.Duration; end > total {
				total = end
			}
		}
	}
	return total
}

// Validate checks that every note in the song can actually be rendered:
// known instrument, positive frequency (the square and saw waveforms divide
// by the period), and non-negative start and duration. The returned error
// identifies the offending track and note.
func (s *Song) Validate() error {
	for i, track := range s.Tracks {
		if track.Instrument < 0 || track.Instrument >= numInstruments {
			return fmt.Errorf("track %d uses unknown instrument %d", i, track.Instrument)
		}
		for j, note := range track.Notes {
			if note.Freq <= 0 {
				return fmt.Errorf("track %d note %d: frequency must be > 0, got %v", i, j, note.Freq)
			}
			if note.Start < 0 {
				return fmt.Errorf("track %d note %d: start must be >= 0, got %v", i, j, note.Start)
			}
			if note.Duration < 0 {
				return fmt.Errorf("track %d note %d: duration must be >= 0, got %v", i, j, note.Duration)
			}
		}
	}
	return nil
}
