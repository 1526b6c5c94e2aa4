package savel

import (
	"encoding/binary"
	"fmt"
)

// Format selects the output container. There is exactly one today; the enum
// exists so a raw or float format can be added without changing WriteInfo.
type Format int

const (
	FormatWav Format = iota
)

// WriteInfo describes the rendering target: where the file goes and how the
// PCM data is laid out. It is configuration, not part of the song itself.
type WriteInfo struct {
	FilePath   string
	SampleRate int // Hz, must be > 0
	Stereo     bool
	Format     Format
}

func (info *WriteInfo) channels() int {
	if info.Stereo {
		return 2
	}
	return 1
}

// sliceWriter fills a preallocated byte buffer through an advancing cursor,
// so the chunk layout below reads as a sequence of appends instead of manual
// offset arithmetic. Writing past the end of the buffer means the size
// calculation and the chunk layout disagree, which is a bug, so it panics.
type sliceWriter struct {
	buf []byte
	off int
}

func (w *sliceWriter) write(p []byte) {
	end := w.off + len(p)
	if end > len(w.buf) {
		panic(fmt.Sprintf("wav buffer overflow: writing %d bytes at offset %d into %d-byte buffer", len(p), w.off, len(w.buf)))
	}
	merge(w.buf[w.off:end], p, overwrite[byte])
	w.off = end
}

func (w *sliceWriter) writeU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.write(b[:])
}

func (w *sliceWriter) writeU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.write(b[:])
}

// Wav serializes quantized mono samples into a complete RIFF/WAVE file with a
// canonical 44-byte PCM header. For stereo output the same sample is written
// to both channel slots of each frame; there is no independent channel
// content. The whole file is assembled in memory and returned as one slice.
//
// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
//
// RIFF chunks are even-aligned: when the data chunk has an odd byte length, a
// pad byte is counted in the RIFF chunk size and physically appended after
// the sample data, so len(result) == chunkSize+8 always holds. With 16-bit
// samples the data size is always even, so the pad only matters if a narrower
// sample format is ever added.
func Wav(samples []int16, sampleRate int, stereo bool) []byte {
	const bytesPerSample = 2
	numChannels := 1
	if stereo {
		numChannels = 2
	}
	dataSize := len(samples) * numChannels * bytesPerSample
	pad := dataSize % 2
	chunkSize := 36 + dataSize + pad
	blockAlign := numChannels * bytesPerSample

	w := &sliceWriter{buf: make([]byte, chunkSize+8)}
	w.write([]byte("RIFF"))
	w.writeU32(uint32(chunkSize))
	w.write([]byte("WAVE"))
	w.write([]byte("fmt "))
	w.writeU32(16) // fmt chunk size
	w.writeU16(1)  // wave format, 1 = integer PCM
	w.writeU16(uint16(numChannels))
	w.writeU32(uint32(sampleRate))
	w.writeU32(uint32(sampleRate * blockAlign)) // avgBytesPerSec
	w.writeU16(uint16(blockAlign))
	w.writeU16(8 * bytesPerSample) // bits per sample
	w.write([]byte("data"))
	w.writeU32(uint32(dataSize))
	for _, sample := range samples {
		var b [bytesPerSample]byte
		binary.LittleEndian.PutUint16(b[:], uint16(sample))
		for c := 0; c < numChannels; c++ {
			w.write(b[:])
		}
	}
	// pad byte, already zero in the freshly allocated buffer
	w.off += pad
	return w.buf
}
