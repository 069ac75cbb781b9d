// Package criteria implements the Criteria Validator (C8): a fixed
// registry of named presets and a fold over rules × findings that reduces
// a file's properties and analysis findings to per-rule pass/warning/fail
// verdicts, per spec.md §4.8.
package criteria

// FilenameRule selects which filename grammar, if any, a preset enforces.
type FilenameRule string

const (
	FilenameRuleNone            FilenameRule = "none"
	FilenameRuleScriptMatch     FilenameRule = "script_match"
	FilenameRuleBilingualPattern FilenameRule = "bilingual_pattern"
)

// Preset is a named, read-only rule set, per spec.md §3. Recognized fields
// are exactly the ones listed there; a preset that leaves a field nil or
// empty simply skips the corresponding rule.
type Preset struct {
	ID   string
	Name string

	FileType []string
	SampleRate []uint32
	BitDepth   []uint16
	Channels   []uint16

	MinDurationS *float64

	StereoType []string

	MaxOverlapWarningPct        *float64
	MaxOverlapFailPct           *float64
	MaxOverlapSegmentWarningS   *float64
	MaxOverlapSegmentFailS      *float64

	FilenameRule FilenameRule

	PlatformRestriction *string

	// SkipAudioValidation, when true, skips the sample_rate/bit_depth/
	// channels rules entirely regardless of the allowed-value lists above.
	SkipAudioValidation bool
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

// Preset ids recognized by the registry, per spec.md §6.
const (
	AuditionsCharacterRecordings = "auditions-character-recordings"
	AuditionsEmotionalVoice      = "auditions-emotional-voice"
	CharacterRecordings          = "character-recordings"
	P2B2PairsMono                = "p2b2-pairs-mono"
	P2B2PairsStereo              = "p2b2-pairs-stereo"
	P2B2PairsMixed               = "p2b2-pairs-mixed"
	ThreeHour                    = "three-hour"
	BilingualConversational      = "bilingual-conversational"
	Custom                       = "custom"
)

// builtinPresets is the fixed, immutable registry. Every preset here except
// Custom is read-only; Custom is a template filled in by user-supplied
// configuration (see internal/config).
var builtinPresets = map[string]Preset{
	AuditionsCharacterRecordings: {
		ID:           AuditionsCharacterRecordings,
		Name:         "Auditions – Character Recordings",
		FileType:     []string{"WAV"},
		SampleRate:   []uint32{44100, 48000},
		BitDepth:     []uint16{16, 24},
		Channels:     []uint16{1},
		MinDurationS: f64(1.0),
	},
	AuditionsEmotionalVoice: {
		ID:           AuditionsEmotionalVoice,
		Name:         "Auditions – Emotional Voice",
		FileType:     []string{"WAV"},
		SampleRate:   []uint32{44100, 48000},
		BitDepth:     []uint16{16, 24},
		Channels:     []uint16{1},
		MinDurationS: f64(1.0),
	},
	CharacterRecordings: {
		ID:           CharacterRecordings,
		Name:         "Character Recordings",
		FileType:     []string{"WAV"},
		SampleRate:   []uint32{44100, 48000},
		BitDepth:     []uint16{16, 24},
		Channels:     []uint16{1},
		MinDurationS: f64(0.5),
	},
	P2B2PairsMono: {
		ID:           P2B2PairsMono,
		Name:         "P2B2 Pairs – Mono",
		FileType:     []string{"WAV"},
		SampleRate:   []uint32{48000},
		BitDepth:     []uint16{16, 24},
		Channels:     []uint16{1},
		MinDurationS: f64(5.0),
		StereoType:   nil,
	},
	P2B2PairsStereo: {
		ID:           P2B2PairsStereo,
		Name:         "P2B2 Pairs – Stereo",
		FileType:     []string{"WAV"},
		SampleRate:   []uint32{48000},
		BitDepth:     []uint16{16, 24},
		Channels:     []uint16{2},
		MinDurationS: f64(5.0),
		StereoType:   []string{"Conversational Stereo", "Mixed Stereo"},
	},
	P2B2PairsMixed: {
		ID:           P2B2PairsMixed,
		Name:         "P2B2 Pairs – Mixed",
		FileType:     []string{"WAV"},
		SampleRate:   []uint32{44100, 48000},
		BitDepth:     []uint16{16, 24},
		Channels:     []uint16{1, 2},
		MinDurationS: f64(5.0),
	},
	ThreeHour: {
		ID:           ThreeHour,
		Name:         "Three-Hour",
		FileType:     []string{"WAV"},
		SampleRate:   []uint32{44100, 48000},
		BitDepth:     []uint16{16, 24},
		Channels:     []uint16{1},
		MinDurationS: f64(3 * 60 * 60),
		FilenameRule: FilenameRuleScriptMatch,
	},
	BilingualConversational: {
		ID:                          BilingualConversational,
		Name:                        "Bilingual Conversational",
		FileType:                    []string{"WAV"},
		SampleRate:                  []uint32{44100, 48000},
		BitDepth:                    []uint16{16, 24},
		Channels:                    []uint16{2},
		MinDurationS:                f64(60.0),
		StereoType:                  []string{"Conversational Stereo"},
		MaxOverlapWarningPct:        f64(10.0),
		MaxOverlapFailPct:           f64(25.0),
		MaxOverlapSegmentWarningS:   f64(3.0),
		MaxOverlapSegmentFailS:      f64(8.0),
		FilenameRule:                FilenameRuleBilingualPattern,
	},
	Custom: {
		ID:   Custom,
		Name: "Custom",
	},
}

// Lookup returns the named preset, or false if id is not recognized. For
// Custom, callers should use Registry.Resolve instead, which applies
// user-supplied configuration.
func Lookup(id string) (Preset, bool) {
	p, ok := builtinPresets[id]
	return p, ok
}

// Registry resolves preset ids to Presets, substituting a configured
// Custom preset (if any) for the id "custom".
type Registry struct {
	custom *Preset
}

// NewRegistry builds a Registry. custom may be nil if no custom preset was
// configured.
func NewRegistry(custom *Preset) Registry {
	return Registry{custom: custom}
}

// Resolve looks up id, preferring a configured custom preset for "custom".
func (r Registry) Resolve(id string) (Preset, bool) {
	if id == Custom {
		if r.custom != nil {
			return *r.custom, true
		}
		return builtinPresets[Custom], true
	}
	return Lookup(id)
}
