package analysis

import (
	"math"
	"testing"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/progress"
	"github.com/vibingwithtom/recspec/internal/wav/wavtest"
)

func TestAnalyzeSilenceLeadingGap(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{
		DurationSecs: 3.0, SampleRate: 44100, ToneFreq: 440, ToneLevel: -12,
		SilenceGapStartS: 0, SilenceGapDurationS: 0.5,
	})

	findings, err := AnalyzeSilence(buf, -12, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeSilence: %v", err)
	}
	if findings.LeadingSilenceS < 0.4 {
		t.Errorf("LeadingSilenceS = %v, want >= ~0.5s", findings.LeadingSilenceS)
	}
}

func TestAnalyzeSilenceInteriorGap(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{
		DurationSecs: 3.0, SampleRate: 44100, ToneFreq: 440, ToneLevel: -12,
		SilenceGapStartS: 1.0, SilenceGapDurationS: 0.5,
	})

	findings, err := AnalyzeSilence(buf, -12, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeSilence: %v", err)
	}
	if len(findings.Segments) == 0 {
		t.Fatal("expected at least one interior silence segment")
	}
	if math.Abs(findings.LongestGapS-0.5) > 0.1 {
		t.Errorf("LongestGapS = %v, want ~0.5", findings.LongestGapS)
	}
	if findings.LeadingSilenceS != 0 {
		t.Errorf("LeadingSilenceS = %v, want 0 (tone starts at frame 0)", findings.LeadingSilenceS)
	}
}

func TestAnalyzeSilenceNoGapsInContinuousTone(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{
		DurationSecs: 2.0, SampleRate: 44100, ToneFreq: 440, ToneLevel: -12,
	})

	findings, err := AnalyzeSilence(buf, -12, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeSilence: %v", err)
	}
	if len(findings.Segments) != 0 || findings.LeadingSilenceS != 0 || findings.TrailingSilenceS != 0 {
		t.Errorf("expected no silence in a continuous tone, got %+v", findings)
	}
}

// TestAnalyzeSilenceTwoBoundaryRunsOnly covers spec.md §8 scenario S4: a
// short impulse splits an otherwise-silent clip into a leading run and a
// trailing run with no interior run at all. LongestGapS must still equal
// the larger of the two flanking silences.
func TestAnalyzeSilenceTwoBoundaryRunsOnly(t *testing.T) {
	sampleRate := 16000
	total := int(5.0 * float64(sampleRate))
	samples := make([]float32, total)

	impulseStart := int(2.475 * float64(sampleRate))
	impulseEnd := int(2.575 * float64(sampleRate))
	amp := float32(math.Pow(10, -6.0/20.0))
	for i := impulseStart; i < impulseEnd; i++ {
		samples[i] = amp
	}

	buf := audio.Buffer{SampleRateHz: uint32(sampleRate), Channels: [][]float32{samples}}

	findings, err := AnalyzeSilence(buf, -12, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeSilence: %v", err)
	}
	if len(findings.Segments) != 0 {
		t.Errorf("expected no interior segments, got %+v", findings.Segments)
	}
	if findings.LeadingSilenceS <= 0 || findings.TrailingSilenceS <= 0 {
		t.Fatalf("expected both leading and trailing silence, got leading=%v trailing=%v",
			findings.LeadingSilenceS, findings.TrailingSilenceS)
	}

	wantLongest := findings.TrailingSilenceS
	if findings.LeadingSilenceS > findings.TrailingSilenceS {
		wantLongest = findings.LeadingSilenceS
	}
	if math.Abs(findings.LongestGapS-wantLongest) > 1e-9 {
		t.Errorf("LongestGapS = %v, want the larger flanking silence %v", findings.LongestGapS, wantLongest)
	}
}

func TestAnalyzeSilenceCancelled(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{DurationSecs: 2.0, SampleRate: 44100, ToneFreq: 440, ToneLevel: -12})

	tok, cancelFn := cancel.NewSource()
	cancelFn()

	if _, err := AnalyzeSilence(buf, -12, -60, progress.Noop, tok); err == nil {
		t.Error("expected a cancellation error")
	}
}
