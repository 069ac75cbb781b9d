package wav

import (
	"fmt"
	"strings"
)

// Label returns the semantic file_type string for a parsed WAV header, per
// spec.md §4.1: format tag 1 is "WAV (PCM)", 3 is "WAV (Float)", anything
// else is reported as compressed with its tag number, and its bit depth is
// advisory rather than authoritative.
func Label(f Format) string {
	switch f.AudioFormatTag {
	case fmtTagPCM:
		return "WAV (PCM)"
	case fmtTagFloat:
		return "WAV (Float)"
	default:
		return fmt.Sprintf("WAV (Compressed – Format %d)", f.AudioFormatTag)
	}
}

// IsCompressed reports whether f's bit depth is advisory only (i.e. the
// format tag is neither PCM nor IEEE float).
func IsCompressed(f Format) bool {
	return f.AudioFormatTag != fmtTagPCM && f.AudioFormatTag != fmtTagFloat
}

// extensionLabels maps lower-cased file extensions (without the leading
// dot) to the semantic file_type label used when the extension bypasses
// the WAV parser entirely, per spec.md §4.1.
var extensionLabels = map[string]string{
	"mp3":  "MP3",
	"m4a":  "M4A",
	"aac":  "AAC",
	"flac": "FLAC",
	"ogg":  "OGG",
	"opus": "OPUS",
	"wma":  "WMA",
	"aiff": "AIFF",
	"aif":  "AIFF",
}

// LabelForExtension returns the semantic file_type for a non-WAV
// extension, matched case-insensitively against a fixed map; unrecognized
// extensions are uppercased as-is, per spec.md §4.1.
func LabelForExtension(ext string) string {
	if label, ok := extensionLabels[strings.ToLower(ext)]; ok {
		return label
	}
	return upperASCII(ext)
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
