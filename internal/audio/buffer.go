// Package audio defines the sample-level data model the rest of recspec's
// analyzers consume, and the external collaborator interfaces the host
// provides (file I/O, compressed-format decoding), per spec.md §6. Nothing
// in this package decodes bytes itself — internal/wav folds raw WAV bytes
// into a Buffer; a host-supplied Decoder folds everything else.
package audio

import "fmt"

// Buffer is an immutable, fully decoded audio clip: one []float32 per
// channel, all of identical length, normalized so valid PCM lies in
// [-1.0, +1.0]. It is the common representation every DSP pass in
// internal/analysis operates on, regardless of whether the samples came
// from the WAV parser or a host-supplied Decoder.
type Buffer struct {
	SampleRateHz uint32
	Channels     [][]float32
}

// ChannelCount returns the number of channels.
func (b Buffer) ChannelCount() int { return len(b.Channels) }

// LengthFrames returns the number of sample frames (samples per channel).
func (b Buffer) LengthFrames() uint64 {
	if len(b.Channels) == 0 {
		return 0
	}
	return uint64(len(b.Channels[0]))
}

// DurationSeconds returns the clip's duration, or 0 if the sample rate is
// unknown.
func (b Buffer) DurationSeconds() float64 {
	if b.SampleRateHz == 0 {
		return 0
	}
	return float64(b.LengthFrames()) / float64(b.SampleRateHz)
}

// Validate checks the invariants from spec.md §3: every channel has the
// same length, and channel count is in 1..=8.
func (b Buffer) Validate() error {
	if len(b.Channels) < 1 || len(b.Channels) > 8 {
		return fmt.Errorf("audio: channel count %d out of range 1..=8", len(b.Channels))
	}
	n := len(b.Channels[0])
	for i, ch := range b.Channels {
		if len(ch) != n {
			return fmt.Errorf("audio: channel %d has length %d, want %d", i, len(ch), n)
		}
	}
	return nil
}

// InputSource is the host-owned file handle abstraction recspec consumes.
// It never opens or closes files itself; the host (local disk, object
// store, third-party drive integration) implements this.
type InputSource interface {
	// ReadHeader returns up to maxBytes from the start of the file —
	// typically the first 100 KiB, enough for any WAV header.
	ReadHeader(maxBytes int) ([]byte, error)
	// ReadAll returns the entire file contents.
	ReadAll() ([]byte, error)
}

// Decoder is the host-supplied black box that turns compressed-format
// bytes into a Buffer. recspec never implements audio decoding itself —
// per spec.md §1, decoding of compressed formats is out of scope and
// provided as an external primitive. The decoder must return all channels
// at equal length and at the file's native sample rate.
type Decoder interface {
	Decode(data []byte) (Buffer, error)
}
