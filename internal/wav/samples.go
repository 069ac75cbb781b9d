package wav

import (
	"math"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/rerr"
)

// Decode folds a PCM or IEEE-float WAV's "data" bytes into an audio.Buffer,
// per spec.md §4.2. Compressed-format WAVs (audioFormatTag not in {1,3})
// are not handled here — Decode returns an UnsupportedBitDepth error for
// them.
func Decode(data []byte, f Format) (audio.Buffer, error) {
	if !f.HasData {
		return audio.Buffer{}, rerr.New(rerr.TruncatedInput, nil)
	}
	if f.AudioFormatTag != fmtTagPCM && f.AudioFormatTag != fmtTagFloat {
		return audio.Buffer{}, rerr.Newf(rerr.UnsupportedBitDepth, "audio format tag %d is not PCM or IEEE float", f.AudioFormatTag)
	}
	channels := int(f.ChannelCount)
	if channels < 1 {
		return audio.Buffer{}, rerr.New(rerr.UnsupportedBitDepth, nil)
	}

	payload := data[f.DataByteOffset : f.DataByteOffset+f.DataByteLength]
	bytesPerSample := int(f.BitsPerSample) / 8
	if bytesPerSample == 0 {
		return audio.Buffer{}, rerr.New(rerr.UnsupportedBitDepth, nil)
	}
	frameStride := bytesPerSample * channels
	if frameStride == 0 {
		return audio.Buffer{}, rerr.New(rerr.UnsupportedBitDepth, nil)
	}
	frameCount := len(payload) / frameStride

	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frameCount)
	}

	decodeSample, err := sampleDecoder(f.AudioFormatTag, f.BitsPerSample)
	if err != nil {
		return audio.Buffer{}, err
	}

	for frame := 0; frame < frameCount; frame++ {
		base := frame * frameStride
		for c := 0; c < channels; c++ {
			off := base + c*bytesPerSample
			out[c][frame] = decodeSample(payload[off : off+bytesPerSample])
		}
	}

	return audio.Buffer{SampleRateHz: f.SampleRateHz, Channels: out}, nil
}

// sampleDecoder returns a function converting one sample's raw bytes
// (little-endian) to a float32 in [-1.0, +1.0], per spec.md §4.2's
// conversion rules.
func sampleDecoder(formatTag uint16, bitsPerSample uint16) (func([]byte) float32, error) {
	if formatTag == fmtTagFloat {
		if bitsPerSample != 32 {
			return nil, rerr.Newf(rerr.UnsupportedBitDepth, "float format requires 32-bit samples, got %d", bitsPerSample)
		}
		return func(b []byte) float32 {
			bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
			return math.Float32frombits(bits)
		}, nil
	}

	switch bitsPerSample {
	case 8:
		// Unsigned 8-bit: (x-128)/128.
		return func(b []byte) float32 {
			return (float32(b[0]) - 128) / 128
		}, nil
	case 16:
		return func(b []byte) float32 {
			v := int16(uint16(b[0]) | uint16(b[1])<<8)
			return float32(v) / 32768
		}, nil
	case 24:
		return func(b []byte) float32 {
			raw := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if raw&0x800000 != 0 {
				raw |= -0x1000000 // sign-extend
			}
			return float32(raw) / 8388608
		}, nil
	case 32:
		return func(b []byte) float32 {
			v := int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
			return float32(float64(v) / 2147483648)
		}, nil
	default:
		return nil, rerr.Newf(rerr.UnsupportedBitDepth, "unsupported PCM bit depth %d", bitsPerSample)
	}
}
