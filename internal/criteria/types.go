package criteria

import "strings"

// Unknown is the sentinel string used for properties the parser could not
// determine, per spec.md §3.
const Unknown = "Unknown"

// FileProperties is C1/C2's summary output, per spec.md §3. SampleRateHz,
// BitDepth, ChannelCount and DurationS use 0 to mean "unknown" — callers
// compare against the Known* booleans, never against the zero value
// directly, since 0 is itself meaningless for any of these fields.
type FileProperties struct {
	FileType        string
	SampleRateHz    uint32
	KnownSampleRate bool
	BitDepth        uint16
	KnownBitDepth   bool
	CompressedDepth bool // bit depth is advisory only (non-PCM, non-float tag)
	ChannelCount    uint16
	KnownChannels   bool
	DurationS       float64
	KnownDuration   bool
	FileSizeBytes   int64
}

// Status is a rule's verdict.
type Status string

const (
	Pass    Status = "pass"
	Warning Status = "warning"
	Fail    Status = "fail"
)

// worse returns the more severe of a and b (fail > warning > pass).
func worse(a, b Status) Status {
	rank := map[Status]int{Pass: 0, Warning: 1, Fail: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// ValidationResult is one rule's outcome, per spec.md §3.
type ValidationResult struct {
	Status   Status
	Matched  bool
	Observed string
	Expected string
	Message  string
}

// Findings bundles the optional analyzer outputs the validator consults.
// Each pointer is nil when that pass did not run (e.g. StereoType is nil
// for a mono file).
type Findings struct {
	StereoType      *string
	OverlapPct      *float64
	MaxOverlapSegS  *float64
	FilenameResult  *ValidationResult
}

// normalizeFileType strips a trailing parenthesized suffix, per spec.md
// §4.8's file_type rule ("WAV (PCM)" -> "WAV").
func normalizeFileType(label string) string {
	if idx := strings.Index(label, " ("); idx >= 0 {
		return label[:idx]
	}
	return label
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func containsU32(list []uint32, want uint32) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func containsU16(list []uint16, want uint16) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
