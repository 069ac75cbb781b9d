// Package wav implements the byte-exact RIFF/WAVE header parser (C1) and
// the PCM sample source (C2) described in spec.md §4.1-4.2. Parsing never
// decodes audio: it walks chunk headers only, and folding bytes into
// samples is a separate, explicit step so callers that only need
// FileProperties never pay for deinterleaving.
package wav

import (
	"encoding/binary"

	"github.com/vibingwithtom/recspec/internal/rerr"
)

// Format is the decoded "fmt "/"data" chunk pair, plus derived duration.
type Format struct {
	SampleRateHz   uint32
	BitsPerSample  uint16 // 8, 16, 24, 32 (32 may be float, see AudioFormatTag)
	ChannelCount   uint16
	AudioFormatTag uint16 // 1=PCM, 3=IEEE float, other=compressed
	DataByteOffset int64
	DataByteLength int64
	HasData        bool // false if no "data" chunk was found before EOF
}

// BytesPerSampleFrame is the stride of one interleaved sample frame
// (channels * bytes-per-sample), used to convert byte offsets to frame
// counts.
func (f Format) BytesPerSampleFrame() int {
	return int(f.ChannelCount) * int(f.BitsPerSample) / 8
}

// DurationSeconds derives duration from data length, per spec.md §3's
// WavFormat invariant. Returns 0 if duration cannot be computed (no data
// chunk, or a zero stride/sample-rate).
func (f Format) DurationSeconds() (float64, bool) {
	stride := f.BytesPerSampleFrame()
	if !f.HasData || stride == 0 || f.SampleRateHz == 0 {
		return 0, false
	}
	frames := float64(f.DataByteLength) / float64(stride)
	return frames / float64(f.SampleRateHz), true
}

const (
	fmtTagPCM   uint16 = 1
	fmtTagFloat uint16 = 3
)

// ParseHeader walks the RIFF chunk list in data and recovers the "fmt "
// and "data" chunks. It never reads beyond the bounds of data, even for
// truncated or malformed input — every read is bounds-checked first and
// the walk simply stops (using whatever was recovered so far) rather than
// panicking.
func ParseHeader(data []byte) (Format, error) {
	var f Format

	if len(data) < 12 {
		return f, rerr.New(rerr.NotAWavFile, nil)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return f, rerr.New(rerr.NotAWavFile, nil)
	}

	offset := 12
	haveFmt := false

	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		payloadStart := offset + 8

		switch id {
		case "fmt ":
			if size < 16 || payloadStart+16 > len(data) {
				// Truncated fmt chunk: an error if no fmt chunk was read
				// yet; otherwise it is skipped and the walk continues.
				if !haveFmt {
					return f, rerr.New(rerr.TruncatedInput, nil)
				}
			} else {
				payload := data[payloadStart : payloadStart+16]
				f.AudioFormatTag = binary.LittleEndian.Uint16(payload[0:2])
				f.ChannelCount = binary.LittleEndian.Uint16(payload[2:4])
				f.SampleRateHz = binary.LittleEndian.Uint32(payload[4:8])
				f.BitsPerSample = binary.LittleEndian.Uint16(payload[14:16])
				haveFmt = true
			}

		case "data":
			dataLen := size
			if payloadStart+dataLen > len(data) {
				// Declared size runs past EOF — clamp to what's actually
				// present so callers never index out of bounds.
				dataLen = len(data) - payloadStart
			}
			if dataLen < 0 {
				dataLen = 0
			}
			f.DataByteOffset = int64(payloadStart)
			f.DataByteLength = int64(dataLen)
			f.HasData = true
		}

		// RIFF rule: chunks are padded to an even byte count, so an odd
		// declared size always advances one extra byte. A file that omits
		// the pad byte is not detected; the walk continues best-effort from
		// the padded offset rather than aborting.
		advance := size
		if advance%2 == 1 {
			advance++
		}
		next := payloadStart + advance
		if next <= offset {
			break // guard against zero/negative-size chunks looping forever
		}
		offset = next
	}

	if !haveFmt {
		return f, rerr.New(rerr.MissingFmtChunk, nil)
	}
	return f, nil
}
