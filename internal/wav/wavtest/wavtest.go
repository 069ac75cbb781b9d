// Package wavtest generates synthetic WAV byte streams for tests across
// internal/wav, internal/analysis, internal/batch and internal/report. It is exported
// (not a _test.go file) because more than one package's tests need it,
// adapted from the teacher's processor/testutil_test.go
// (generateTestAudio/writeWAV): the same LCG noise generator and
// tone+noise+silence-gap synthesis, generalized to multi-channel int16
// PCM since recspec's analyzers need stereo fixtures the teacher's
// mono-only test helper never produced.
package wavtest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Options configures one synthesized channel's content. A silence gap
// overrides tone and noise for its duration.
type Options struct {
	DurationSecs float64
	SampleRate   int // default 44100
	Channels     int // default 1

	ToneFreq  float64 // Hz; 0 = no tone
	ToneLevel float64 // dBFS, e.g. -23.0

	NoiseLevel float64 // dBFS; 0 = no noise

	SilenceGapStartS    float64
	SilenceGapDurationS float64

	// PhaseOffsets, if non-empty, shifts each channel's tone phase by the
	// given radians — used to synthesize out-of-phase stereo fixtures.
	PhaseOffsets []float64
}

// Generate returns a complete little-endian 16-bit PCM WAV file's bytes.
func Generate(opts Options) []byte {
	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.Channels == 0 {
		opts.Channels = 1
	}
	if opts.DurationSecs == 0 {
		opts.DurationSecs = 5.0
	}

	totalFrames := int(opts.DurationSecs * float64(opts.SampleRate))
	channels := make([][]int16, opts.Channels)
	for c := range channels {
		phase := 0.0
		if c < len(opts.PhaseOffsets) {
			phase = opts.PhaseOffsets[c]
		}
		channels[c] = synthesizeChannel(opts, totalFrames, phase, uint32(12345+c*7919))
	}

	return encode(channels, opts.SampleRate)
}

func synthesizeChannel(opts Options, totalFrames int, phase float64, seed uint32) []int16 {
	samples := make([]int16, totalFrames)

	toneAmp := 0.0
	if opts.ToneFreq > 0 && opts.ToneLevel < 0 {
		toneAmp = math.Pow(10.0, opts.ToneLevel/20.0)
	}
	noiseAmp := 0.0
	if opts.NoiseLevel < 0 {
		noiseAmp = math.Pow(10.0, opts.NoiseLevel/20.0)
	}

	silenceStart := int(opts.SilenceGapStartS * float64(opts.SampleRate))
	silenceEnd := int((opts.SilenceGapStartS + opts.SilenceGapDurationS) * float64(opts.SampleRate))

	rngState := seed
	nextRandom := func() float64 {
		rngState = rngState*1664525 + 1013904223
		return (float64(rngState)/float64(0xFFFFFFFF))*2.0 - 1.0
	}

	const maxInt16 = float64(math.MaxInt16)

	for i := 0; i < totalFrames; i++ {
		if i >= silenceStart && i < silenceEnd && opts.SilenceGapDurationS > 0 {
			samples[i] = 0
			continue
		}

		var sample float64
		if toneAmp > 0 {
			t := float64(i) / float64(opts.SampleRate)
			sample += toneAmp * math.Sin(2.0*math.Pi*opts.ToneFreq*t+phase)
		}
		if noiseAmp > 0 {
			sample += noiseAmp * nextRandom()
		}

		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		samples[i] = int16(sample * maxInt16)
	}

	return samples
}

// encode interleaves per-channel int16 samples into a 16-bit PCM WAV file.
func encode(channels [][]int16, sampleRate int) []byte {
	numChannels := len(channels)
	frameCount := 0
	if numChannels > 0 {
		frameCount = len(channels[0])
	}

	const bitsPerSample = 16
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8
	dataSize := frameCount * numChannels * 2
	fileSize := 36 + dataSize

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(fileSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))

	for frame := 0; frame < frameCount; frame++ {
		for c := 0; c < numChannels; c++ {
			binary.Write(&buf, binary.LittleEndian, channels[c][frame])
		}
	}

	return buf.Bytes()
}
