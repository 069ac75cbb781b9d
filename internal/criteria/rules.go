package criteria

import "fmt"

// rule is one named validation check. It returns (result, true) when
// applicable to p/props/findings, or (zero, false) when the preset defines
// no relevant configuration and the rule should be omitted from the
// report entirely — mirroring the teacher's rule-function-returning-nil
// pattern in internal/logging/recording_tips.go, generalized from "tip or
// no tip" to "verdict or skip".
type rule func(p Preset, props FileProperties, f Findings) (ValidationResult, bool)

// rules is the fixed rule set the validator folds over, per spec.md §4.8.
var rules = map[string]rule{
	"file_type":    ruleFileType,
	"sample_rate":  ruleSampleRate,
	"bit_depth":    ruleBitDepth,
	"channels":     ruleChannels,
	"duration":     ruleDuration,
	"stereo_type":  ruleStereoType,
	"overlap":      ruleOverlap,
	"filename":     ruleFilename,
}

func ruleFileType(p Preset, props FileProperties, _ Findings) (ValidationResult, bool) {
	if len(p.FileType) == 0 {
		return ValidationResult{}, false
	}
	observed := normalizeFileType(props.FileType)
	for _, allowed := range p.FileType {
		wantNorm := normalizeFileType(allowed)
		if !equalFold(wantNorm, "WAV") {
			if equalFold(observed, wantNorm) {
				return ValidationResult{Status: Pass, Matched: true, Observed: props.FileType, Expected: allowed}, true
			}
			continue
		}
		// Special-cased WAV family matching, per spec.md §4.8.
		switch {
		case equalFold(observed, "WAV") && !props.CompressedDepth:
			return ValidationResult{Status: Pass, Matched: true, Observed: props.FileType, Expected: allowed}, true
		case equalFold(observed, "WAV") && props.CompressedDepth:
			return ValidationResult{Status: Warning, Matched: false, Observed: props.FileType, Expected: allowed,
				Message: "compressed WAV format tag; bit depth is advisory"}, true
		}
	}
	return ValidationResult{Status: Fail, Matched: false, Observed: props.FileType, Expected: joinStrings(p.FileType)}, true
}

func ruleSampleRate(p Preset, props FileProperties, _ Findings) (ValidationResult, bool) {
	if p.SkipAudioValidation || len(p.SampleRate) == 0 {
		return ValidationResult{}, false
	}
	expected := joinU32(p.SampleRate)
	if !props.KnownSampleRate {
		return ValidationResult{Status: Warning, Observed: Unknown, Expected: expected}, true
	}
	if containsU32(p.SampleRate, props.SampleRateHz) {
		return ValidationResult{Status: Pass, Matched: true, Observed: fmt.Sprintf("%d", props.SampleRateHz), Expected: expected}, true
	}
	return ValidationResult{Status: Fail, Observed: fmt.Sprintf("%d", props.SampleRateHz), Expected: expected}, true
}

func ruleBitDepth(p Preset, props FileProperties, _ Findings) (ValidationResult, bool) {
	if p.SkipAudioValidation || len(p.BitDepth) == 0 {
		return ValidationResult{}, false
	}
	expected := joinU16(p.BitDepth)
	if !props.KnownBitDepth || props.CompressedDepth {
		return ValidationResult{Status: Warning, Observed: Unknown, Expected: expected}, true
	}
	if containsU16(p.BitDepth, props.BitDepth) {
		return ValidationResult{Status: Pass, Matched: true, Observed: fmt.Sprintf("%d", props.BitDepth), Expected: expected}, true
	}
	return ValidationResult{Status: Fail, Observed: fmt.Sprintf("%d", props.BitDepth), Expected: expected}, true
}

func ruleChannels(p Preset, props FileProperties, _ Findings) (ValidationResult, bool) {
	if p.SkipAudioValidation || len(p.Channels) == 0 {
		return ValidationResult{}, false
	}
	expected := joinU16(p.Channels)
	if !props.KnownChannels {
		return ValidationResult{Status: Warning, Observed: Unknown, Expected: expected}, true
	}
	if containsU16(p.Channels, props.ChannelCount) {
		return ValidationResult{Status: Pass, Matched: true, Observed: fmt.Sprintf("%d", props.ChannelCount), Expected: expected}, true
	}
	return ValidationResult{Status: Fail, Observed: fmt.Sprintf("%d", props.ChannelCount), Expected: expected}, true
}

func ruleDuration(p Preset, props FileProperties, _ Findings) (ValidationResult, bool) {
	if p.MinDurationS == nil {
		return ValidationResult{}, false
	}
	expected := fmt.Sprintf(">= %.3fs", *p.MinDurationS)
	if !props.KnownDuration {
		return ValidationResult{Status: Warning, Observed: Unknown, Expected: expected}, true
	}
	observed := fmt.Sprintf("%.3fs", props.DurationS)
	if props.DurationS >= *p.MinDurationS {
		return ValidationResult{Status: Pass, Matched: true, Observed: observed, Expected: expected}, true
	}
	return ValidationResult{Status: Warning, Observed: observed, Expected: expected}, true
}

func ruleStereoType(p Preset, _ FileProperties, f Findings) (ValidationResult, bool) {
	if len(p.StereoType) == 0 {
		return ValidationResult{}, false
	}
	expected := joinStrings(p.StereoType)
	if f.StereoType == nil {
		return ValidationResult{Status: Fail, Expected: expected, Message: "Not a stereo file"}, true
	}
	if containsFold(p.StereoType, *f.StereoType) {
		return ValidationResult{Status: Pass, Matched: true, Observed: *f.StereoType, Expected: expected}, true
	}
	return ValidationResult{Status: Fail, Observed: *f.StereoType, Expected: expected}, true
}

func ruleOverlap(p Preset, _ FileProperties, f Findings) (ValidationResult, bool) {
	if p.MaxOverlapWarningPct == nil && p.MaxOverlapFailPct == nil &&
		p.MaxOverlapSegmentWarningS == nil && p.MaxOverlapSegmentFailS == nil {
		return ValidationResult{}, false
	}
	if f.OverlapPct == nil {
		return ValidationResult{Status: Warning, Expected: "no overlap data", Message: "overlap analysis did not run"}, true
	}

	status := Pass
	if p.MaxOverlapFailPct != nil && *f.OverlapPct > *p.MaxOverlapFailPct {
		status = worse(status, Fail)
	} else if p.MaxOverlapWarningPct != nil && *f.OverlapPct > *p.MaxOverlapWarningPct {
		status = worse(status, Warning)
	}
	if f.MaxOverlapSegS != nil {
		if p.MaxOverlapSegmentFailS != nil && *f.MaxOverlapSegS > *p.MaxOverlapSegmentFailS {
			status = worse(status, Fail)
		} else if p.MaxOverlapSegmentWarningS != nil && *f.MaxOverlapSegS > *p.MaxOverlapSegmentWarningS {
			status = worse(status, Warning)
		}
	}

	return ValidationResult{
		Status:   status,
		Matched:  status == Pass,
		Observed: fmt.Sprintf("%.2f%%", *f.OverlapPct),
	}, true
}

func ruleFilename(p Preset, _ FileProperties, f Findings) (ValidationResult, bool) {
	if p.FilenameRule == "" || p.FilenameRule == FilenameRuleNone {
		return ValidationResult{}, false
	}
	if f.FilenameResult == nil {
		return ValidationResult{Status: Fail, Message: "filename was not validated"}, true
	}
	return *f.FilenameResult, true
}

func equalFold(a, b string) bool { return containsFold([]string{a}, b) }

func joinStrings(vs []string) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

func joinU32(vs []uint32) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", v)
	}
	return out
}

func joinU16(vs []uint16) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", v)
	}
	return out
}
