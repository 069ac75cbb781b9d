package analysis

import (
	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/progress"
	"github.com/vibingwithtom/recspec/internal/rerr"
)

// Silence timing constants, per spec.md §4.5.
const (
	silenceFrameSeconds    = 0.005
	silenceDynamicFraction = 0.25
	minSilentRunSeconds    = 0.150 // shorter runs are rejected as "ticks"
)

// SilenceSegment is one interior silent run at least minSilentRunSeconds
// long.
type SilenceSegment struct {
	StartS   float64
	DurationS float64
}

// SilenceFindings is C5's output, per spec.md §3.
type SilenceFindings struct {
	LeadingSilenceS  float64
	TrailingSilenceS float64
	LongestGapS      float64
	Segments         []SilenceSegment
	ThresholdDB      float64
}

// AnalyzeSilence scans buf for silent runs against a dynamic threshold
// derived from peakDB and noiseFloorDB, per spec.md §4.5.
func AnalyzeSilence(buf audio.Buffer, peakDB, noiseFloorDB float64, sink progress.Sink, tok cancel.Token) (SilenceFindings, error) {
	if sink == nil {
		sink = progress.Noop
	}
	sink("silence", 0)

	mono := monoMix(buf.Channels)
	sampleRate := float64(buf.SampleRateHz)
	if len(mono) == 0 || sampleRate <= 0 {
		sink("silence", 1)
		return SilenceFindings{}, nil
	}

	threshold := noiseFloorDB + silenceDynamicFraction*(peakDB-noiseFloorDB)

	frameLen := framesFor(silenceFrameSeconds, sampleRate)
	series := rmsSeries([][]float32{mono}, frameLen)
	minRunFrames := int(minSilentRunSeconds/silenceFrameSeconds + 0.5)
	if minRunFrames < 1 {
		minRunFrames = 1
	}

	isSilent := make([]bool, len(series))
	for i, v := range series {
		if i%pollWindowInterval == 0 {
			if tok.Cancelled() {
				return SilenceFindings{}, rerr.Cancelled("silence")
			}
			sink("silence", float64(i)/float64(len(series)))
		}
		isSilent[i] = v < threshold
	}
	sink("silence", 1)

	totalFrames := len(series)
	frameDur := silenceFrameSeconds

	// Collect runs of consecutive silent frames >= minRunFrames.
	type run struct{ start, end int } // [start, end)
	var runs []run
	i := 0
	for i < totalFrames {
		if !isSilent[i] {
			i++
			continue
		}
		start := i
		for i < totalFrames && isSilent[i] {
			i++
		}
		if i-start >= minRunFrames {
			runs = append(runs, run{start: start, end: i})
		}
	}

	findings := SilenceFindings{ThresholdDB: threshold}

	if len(runs) == 0 {
		return findings, nil
	}

	first := runs[0]
	if first.start == 0 {
		findings.LeadingSilenceS = float64(first.end) * frameDur
	}
	last := runs[len(runs)-1]
	if last.end == totalFrames {
		findings.TrailingSilenceS = float64(totalFrames-last.start) * frameDur
	}

	for idx, r := range runs {
		isLeading := idx == 0 && r.start == 0
		isTrailing := idx == len(runs)-1 && r.end == totalFrames
		if isLeading || isTrailing {
			continue
		}
		dur := float64(r.end-r.start) * frameDur
		findings.Segments = append(findings.Segments, SilenceSegment{
			StartS:    float64(r.start) * frameDur,
			DurationS: dur,
		})
		if dur > findings.LongestGapS {
			findings.LongestGapS = dur
		}
	}

	if findings.LeadingSilenceS > findings.LongestGapS {
		findings.LongestGapS = findings.LeadingSilenceS
	}
	if findings.TrailingSilenceS > findings.LongestGapS {
		findings.LongestGapS = findings.TrailingSilenceS
	}

	return findings, nil
}
