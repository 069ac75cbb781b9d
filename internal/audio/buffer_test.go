package audio

import "testing"

func TestBufferDurationSeconds(t *testing.T) {
	b := Buffer{SampleRateHz: 44100, Channels: [][]float32{make([]float32, 44100)}}
	if d := b.DurationSeconds(); d < 0.999 || d > 1.001 {
		t.Errorf("DurationSeconds = %v, want ~1.0", d)
	}
}

func TestBufferDurationUnknownSampleRate(t *testing.T) {
	b := Buffer{Channels: [][]float32{make([]float32, 100)}}
	if d := b.DurationSeconds(); d != 0 {
		t.Errorf("DurationSeconds = %v, want 0 for unknown sample rate", d)
	}
}

func TestBufferValidateChannelCountRange(t *testing.T) {
	if err := (Buffer{Channels: [][]float32{}}).Validate(); err == nil {
		t.Error("expected error for zero channels")
	}

	nine := make([][]float32, 9)
	for i := range nine {
		nine[i] = make([]float32, 10)
	}
	if err := (Buffer{Channels: nine}).Validate(); err == nil {
		t.Error("expected error for 9 channels (max is 8)")
	}
}

func TestBufferValidateMismatchedChannelLengths(t *testing.T) {
	b := Buffer{Channels: [][]float32{make([]float32, 10), make([]float32, 11)}}
	if err := b.Validate(); err == nil {
		t.Error("expected error for mismatched channel lengths")
	}
}

func TestBufferValidateOK(t *testing.T) {
	b := Buffer{SampleRateHz: 48000, Channels: [][]float32{make([]float32, 10), make([]float32, 10)}}
	if err := b.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
