package analysis

import (
	"math"
	"testing"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/progress"
)

// toneBuffer builds a 2-channel buffer where each channel is either a fixed
// sine tone or silence, for deterministic conversational fixtures.
func toneBuffer(sampleRate uint32, seconds float64, leftOn, rightOn bool) audio.Buffer {
	n := int(seconds * float64(sampleRate))
	left := make([]float32, n)
	right := make([]float32, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		v := float32(0.3 * math.Sin(2*math.Pi*200*t))
		if leftOn {
			left[i] = v
		}
		if rightOn {
			right[i] = v
		}
	}
	return audio.Buffer{SampleRateHz: sampleRate, Channels: [][]float32{left, right}}
}

func TestAnalyzeBleedAlternatingTurnsNoOverlap(t *testing.T) {
	sampleRate := uint32(16000)
	left := toneBuffer(sampleRate, 1.0, true, false)
	right := toneBuffer(sampleRate, 1.0, false, true)
	buf := audio.Buffer{
		SampleRateHz: sampleRate,
		Channels: [][]float32{
			append(append([]float32{}, left.Channels[0]...), right.Channels[0]...),
			append(append([]float32{}, left.Channels[1]...), right.Channels[1]...),
		},
	}

	bleed, conv, err := AnalyzeBleed(buf, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeBleed: %v", err)
	}
	if len(conv.Overlap.Segments) != 0 {
		t.Errorf("expected no overlap segments for strictly alternating turns, got %+v", conv.Overlap.Segments)
	}
	if bleed.ConfirmedBleedPct != 0 {
		t.Errorf("ConfirmedBleedPct = %v, want 0 for non-overlapping turns", bleed.ConfirmedBleedPct)
	}
}

func TestAnalyzeBleedSimultaneousSpeechDetectsOverlap(t *testing.T) {
	buf := toneBuffer(16000, 1.0, true, true)

	_, conv, err := AnalyzeBleed(buf, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeBleed: %v", err)
	}
	if len(conv.Overlap.Segments) == 0 {
		t.Error("expected an overlap segment when both channels speak throughout")
	}
	if conv.Overlap.OverlapPct < 50 {
		t.Errorf("OverlapPct = %v, want high overlap for continuous simultaneous speech", conv.Overlap.OverlapPct)
	}
}

func TestAnalyzeBleedMonoChannelCountReturnsEmpty(t *testing.T) {
	buf := audio.Buffer{SampleRateHz: 16000, Channels: [][]float32{make([]float32, 16000)}}

	bleed, conv, err := AnalyzeBleed(buf, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeBleed: %v", err)
	}
	if bleed != (MicBleedFindings{}) {
		t.Errorf("expected zero-value bleed findings for a non-stereo buffer, got %+v", bleed)
	}
	if len(conv.Overlap.Segments) != 0 || conv.Overlap.OverlapPct != 0 || conv.Consistency.ConsistencyPct != 0 {
		t.Errorf("expected zero-value conversational findings for a non-stereo buffer, got %+v", conv)
	}
}

func TestSeverityFromPctBreakpoints(t *testing.T) {
	cases := []struct {
		pct  float64
		want float64
	}{
		{0, 0},
		{0.05, 15},
		{0.1, 30},
		{0.5, 70},
		{1.0, 100},
	}
	for _, c := range cases {
		if got := severityFromPct(c.pct); math.Abs(got-c.want) > 0.01 {
			t.Errorf("severityFromPct(%v) = %v, want %v", c.pct, got, c.want)
		}
	}
}
