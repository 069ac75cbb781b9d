package analysis

import (
	"math"
	"testing"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/progress"
	"github.com/vibingwithtom/recspec/internal/wav"
	"github.com/vibingwithtom/recspec/internal/wav/wavtest"
)

func decodeFixture(t *testing.T, opts wavtest.Options) audio.Buffer {
	t.Helper()
	data := wavtest.Generate(opts)
	format, err := wav.ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	buf, err := wav.Decode(data, format)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return buf
}

func TestAnalyzeLevelPeakMatchesToneLevel(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{
		DurationSecs: 1.0, SampleRate: 44100, ToneFreq: 440, ToneLevel: -12,
	})

	findings, err := AnalyzeLevel(buf, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeLevel: %v", err)
	}
	if math.Abs(findings.PeakDB-(-12)) > 0.5 {
		t.Errorf("PeakDB = %v, want ~-12", findings.PeakDB)
	}
}

func TestAnalyzeLevelNormalizationStatus(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{
		DurationSecs: 1.0, SampleRate: 44100, ToneFreq: 440, ToneLevel: NormalizationTargetDB,
	})

	findings, err := AnalyzeLevel(buf, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeLevel: %v", err)
	}
	if findings.Normalization.Status != "normalized" {
		t.Errorf("Status = %q, want normalized at target level", findings.Normalization.Status)
	}
}

func TestAnalyzeLevelNoiseFloorBelowPeak(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{
		DurationSecs: 2.0, SampleRate: 44100, ToneFreq: 440, ToneLevel: -6, NoiseLevel: -50,
	})

	findings, err := AnalyzeLevel(buf, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeLevel: %v", err)
	}
	if findings.NoiseFloorDB >= findings.PeakDB {
		t.Errorf("NoiseFloorDB = %v should be below PeakDB = %v", findings.NoiseFloorDB, findings.PeakDB)
	}
}

func TestAnalyzeClippingDetectsFullScale(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{
		DurationSecs: 1.0, SampleRate: 44100, ToneFreq: 50, ToneLevel: -0.001,
	})

	findings, err := AnalyzeClipping(buf, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeClipping: %v", err)
	}
	if findings.EventCount == 0 {
		t.Error("expected at least one clipping event for a near-0dBFS tone")
	}
}

func TestAnalyzeClippingSilenceHasNone(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{DurationSecs: 1.0, SampleRate: 44100})

	findings, err := AnalyzeClipping(buf, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeClipping: %v", err)
	}
	if findings.EventCount != 0 || findings.ClippedPct != 0 {
		t.Errorf("expected no clipping for silence, got %+v", findings)
	}
}

func TestAnalyzeLevelCancelled(t *testing.T) {
	buf := decodeFixture(t, wavtest.Options{DurationSecs: 5.0, SampleRate: 44100, ToneFreq: 440, ToneLevel: -12})

	tok, cancelFn := cancel.NewSource()
	cancelFn()

	if _, err := AnalyzeLevel(buf, progress.Noop, tok); err == nil {
		t.Error("expected a cancellation error")
	}
}
