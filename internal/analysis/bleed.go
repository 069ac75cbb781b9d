package analysis

import (
	"math"
	"sort"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/progress"
	"github.com/vibingwithtom/recspec/internal/rerr"
)

// Bleed/conversational constants, per spec.md §4.7.
const (
	voteFrameSeconds      = 0.100
	overlapFrameThreshold = 0.300 // minimum overlap segment duration
	bothSilentIgnoreS     = 0.300 // anomaly window ignored in consistency
	correlatedEnvelopeRho = 0.5
	speakingMarginDBBleed = 12.0 // "speaking" gate for overlap detection, per spec.md §4.7
	voteMarginDB          = 6.0  // "L only"/"R only"/"both" gate, per spec.md §4.7
)

// severityBreakpoints is the piecewise-linear confirmed_bleed_pct -> score
// mapping from spec.md §4.7.
var severityBreakpoints = []struct{ pct, score float64 }{
	{0.0, 0}, {0.1, 30}, {0.5, 70}, {1.0, 100},
}

// MicBleedFindings is C7's dual-model bleed output, per spec.md §3.
type MicBleedFindings struct {
	LeftBleedDB       float64
	RightBleedDB      float64
	ConfirmedBleedPct float64
	SeverityScore     float64
}

// OverlapSegment is one interval where both channels were simultaneously
// speaking for at least overlapFrameThreshold.
type OverlapSegment struct {
	StartS    float64
	DurationS float64
}

// OverlapFindings reports simultaneous-speech intervals.
type OverlapFindings struct {
	OverlapPct float64
	Segments   []OverlapSegment
}

// ConsistencyFindings reports how often exactly one side was active.
type ConsistencyFindings struct {
	ConsistencyPct float64
}

// SyncFindings reports speaker-to-channel stability anomalies.
type SyncFindings struct {
	SidesSwapped bool
	SwapEvents   int
}

// ConversationalFindings is C7's turn-taking output, per spec.md §3.
type ConversationalFindings struct {
	Overlap     OverlapFindings
	Consistency ConsistencyFindings
	Sync        SyncFindings
}

// AnalyzeBleed runs the mic-bleed and conversational analyzers, per
// spec.md §4.7. Callers must only invoke this when StereoFindings.StereoType
// is Conversational Stereo.
func AnalyzeBleed(buf audio.Buffer, noiseFloorDB float64, sink progress.Sink, tok cancel.Token) (MicBleedFindings, ConversationalFindings, error) {
	if sink == nil {
		sink = progress.Noop
	}
	sink("bleed", 0)

	if len(buf.Channels) != 2 {
		sink("bleed", 1)
		return MicBleedFindings{}, ConversationalFindings{}, nil
	}
	left, right := buf.Channels[0], buf.Channels[1]
	sampleRate := float64(buf.SampleRateHz)

	blockFrames := framesFor(stereoBlockSeconds, sampleRate)
	blocks := computeStereoBlocks(left, right, blockFrames, noiseFloorDB)

	bleed := energyRatioBleed(blocks)

	frameLen := framesFor(voteFrameSeconds, sampleRate)
	frames := voteFrames(left, right, frameLen, noiseFloorDB)
	if err := pollVoteFrames(len(frames), sink, tok); err != nil {
		return MicBleedFindings{}, ConversationalFindings{}, err
	}

	confirmed, severity := frameVoteBleed(frames)
	bleed.ConfirmedBleedPct = confirmed
	bleed.SeverityScore = severity

	totalSeconds := float64(len(left)) / sampleRate
	overlap := detectOverlap(left, right, noiseFloorDB, sampleRate, totalSeconds)
	consistency, sync := analyzeConsistency(frames, voteFrameSeconds)

	sink("bleed", 1)

	return bleed, ConversationalFindings{
		Overlap:     overlap,
		Consistency: consistency,
		Sync:        sync,
	}, nil
}

// energyRatioBleed computes the energy-ratio bleed model: for blocks
// dominated by one channel, the median level of the other channel relative
// to the dominant one.
func energyRatioBleed(blocks []stereoBlock) MicBleedFindings {
	var rightBleedSamples, leftBleedSamples []float64
	for _, b := range blocks {
		if !b.dominantLR {
			continue
		}
		if b.dominantIsLeft {
			rightBleedSamples = append(rightBleedSamples, b.rightDB-b.leftDB)
		} else {
			leftBleedSamples = append(leftBleedSamples, b.leftDB-b.rightDB)
		}
	}
	return MicBleedFindings{
		RightBleedDB: medianOf(rightBleedSamples),
		LeftBleedDB:  medianOf(leftBleedSamples),
	}
}

func medianOf(vals []float64) float64 {
	if len(vals) == 0 {
		return negInf
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	return median(sorted)
}

// voteFrame is one 100ms frame classified for the frame-vote bleed model
// and for consistency analysis.
type voteFrame struct {
	class string // "left", "right", "both", "neither"
	rho    float64
}

func voteFrames(left, right []float32, frameLen int, noiseFloorDB float64) []voteFrame {
	if frameLen < 1 {
		return nil
	}
	total := len(left)
	threshold := noiseFloorDB + voteMarginDB

	var frames []voteFrame
	for start := 0; start < total; start += frameLen {
		end := start + frameLen
		if end > total {
			end = total
		}
		l, r := left[start:end], right[start:end]

		leftDB := windowRMSDB([][]float32{l})
		rightDB := windowRMSDB([][]float32{r})
		leftActive := leftDB > threshold
		rightActive := rightDB > threshold

		var class string
		switch {
		case leftActive && rightActive:
			class = "both"
		case leftActive:
			class = "left"
		case rightActive:
			class = "right"
		default:
			class = "neither"
		}

		var sumL2, sumR2, sumLR float64
		for i := range l {
			lv, rv := float64(l[i]), float64(r[i])
			sumL2 += lv * lv
			sumR2 += rv * rv
			sumLR += lv * rv
		}
		var rho float64
		if sumL2 > 0 && sumR2 > 0 {
			rho = sumLR / math.Sqrt(sumL2*sumR2)
		}

		frames = append(frames, voteFrame{class: class, rho: rho})
	}
	return frames
}

// frameVoteBleed computes confirmed_bleed_pct and severity_score, per
// spec.md §4.7.
func frameVoteBleed(frames []voteFrame) (confirmedPct, severity float64) {
	var bothCorrelated, singleSpeaker int
	for _, f := range frames {
		switch f.class {
		case "left", "right":
			singleSpeaker++
		case "both":
			if math.Abs(f.rho) >= correlatedEnvelopeRho {
				bothCorrelated++
			}
		}
	}
	if singleSpeaker == 0 {
		return 0, 0
	}
	confirmedPct = float64(bothCorrelated) / float64(singleSpeaker)
	return confirmedPct, severityFromPct(confirmedPct)
}

func severityFromPct(pct float64) float64 {
	if pct <= severityBreakpoints[0].pct {
		return severityBreakpoints[0].score
	}
	for i := 1; i < len(severityBreakpoints); i++ {
		lo, hi := severityBreakpoints[i-1], severityBreakpoints[i]
		if pct <= hi.pct {
			frac := (pct - lo.pct) / (hi.pct - lo.pct)
			return lo.score + frac*(hi.score-lo.score)
		}
	}
	return severityBreakpoints[len(severityBreakpoints)-1].score
}

// detectOverlap finds intervals where both channels are simultaneously
// speaking (RMS above noiseFloor+12dB) for at least 300ms, scanning at
// voteFrameSeconds resolution.
func detectOverlap(left, right []float32, noiseFloorDB, sampleRate, totalSeconds float64) OverlapFindings {
	frameLen := framesFor(voteFrameSeconds, sampleRate)
	if frameLen < 1 || totalSeconds <= 0 {
		return OverlapFindings{}
	}
	threshold := noiseFloorDB + speakingMarginDBBleed
	total := len(left)

	var segments []OverlapSegment
	var runStart = -1
	frameIdx := 0
	for start := 0; start < total; start += frameLen {
		end := start + frameLen
		if end > total {
			end = total
		}
		leftDB := windowRMSDB([][]float32{left[start:end]})
		rightDB := windowRMSDB([][]float32{right[start:end]})
		both := leftDB > threshold && rightDB > threshold

		if both {
			if runStart < 0 {
				runStart = start
			}
		} else if runStart >= 0 {
			closeOverlapRun(&segments, runStart, start, sampleRate)
			runStart = -1
		}
		frameIdx++
	}
	if runStart >= 0 {
		closeOverlapRun(&segments, runStart, total, sampleRate)
	}

	var sum float64
	for _, s := range segments {
		sum += s.DurationS
	}
	return OverlapFindings{
		OverlapPct: 100 * sum / totalSeconds,
		Segments:   segments,
	}
}

func closeOverlapRun(segments *[]OverlapSegment, startFrame, endFrame int, sampleRate float64) {
	duration := float64(endFrame-startFrame) / sampleRate
	if duration < overlapFrameThreshold {
		return
	}
	*segments = append(*segments, OverlapSegment{
		StartS:    float64(startFrame) / sampleRate,
		DurationS: duration,
	})
}

// analyzeConsistency computes the fraction of frames where exactly one
// side was active, ignoring both-silent anomalies shorter than
// bothSilentIgnoreS.
//
// Detecting genuine sides-swapping (a speaker's identity migrating from
// one channel to the other mid-recording) needs speaker diarization, which
// is out of scope here; normal conversational turn-taking alternates
// single-side frames constantly and must not be mistaken for a swap. Sync
// is therefore reported but never flagged from this frame-vote alone.
func analyzeConsistency(frames []voteFrame, frameSeconds float64) (ConsistencyFindings, SyncFindings) {
	if len(frames) == 0 {
		return ConsistencyFindings{}, SyncFindings{}
	}

	ignoreRun := int(bothSilentIgnoreS/frameSeconds + 0.5)
	singleSide := 0
	counted := 0

	i := 0
	for i < len(frames) {
		if frames[i].class == "neither" {
			j := i
			for j < len(frames) && frames[j].class == "neither" {
				j++
			}
			if j-i >= ignoreRun {
				counted += j - i
			}
			i = j
			continue
		}
		counted++
		if frames[i].class == "left" || frames[i].class == "right" {
			singleSide++
		}
		i++
	}

	if counted == 0 {
		return ConsistencyFindings{}, SyncFindings{}
	}
	return ConsistencyFindings{ConsistencyPct: 100 * float64(singleSide) / float64(counted)}, SyncFindings{}
}

// pollBleedInterval is the cancellation-poll cadence for frame-vote scans,
// shared with the "every 1,000 windows" cadence used elsewhere.
const pollBleedInterval = pollWindowInterval

func pollVoteFrames(n int, sink progress.Sink, tok cancel.Token) error {
	for i := 0; i < n; i++ {
		if i%pollBleedInterval == 0 {
			if tok.Cancelled() {
				return rerr.Cancelled("bleed")
			}
			sink("bleed", float64(i)/float64(n))
		}
	}
	return nil
}
