package analysis

import (
	"testing"

	"github.com/vibingwithtom/recspec/internal/audio"
	"github.com/vibingwithtom/recspec/internal/cancel"
	"github.com/vibingwithtom/recspec/internal/progress"
)

func concatBuffers(bufs ...audio.Buffer) audio.Buffer {
	out := audio.Buffer{SampleRateHz: bufs[0].SampleRateHz, Channels: make([][]float32, len(bufs[0].Channels))}
	for c := range out.Channels {
		for _, b := range bufs {
			out.Channels[c] = append(out.Channels[c], b.Channels[c]...)
		}
	}
	return out
}

func TestAnalyzeStereoSilent(t *testing.T) {
	buf := audio.Buffer{SampleRateHz: 16000, Channels: [][]float32{make([]float32, 16000), make([]float32, 16000)}}

	findings, err := AnalyzeStereo(buf, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeStereo: %v", err)
	}
	if findings.StereoType != StereoSilent {
		t.Errorf("StereoType = %q, want %q", findings.StereoType, StereoSilent)
	}
}

func TestAnalyzeStereoMonoInLeftChannel(t *testing.T) {
	buf := toneBuffer(16000, 1.0, true, false)

	findings, err := AnalyzeStereo(buf, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeStereo: %v", err)
	}
	if findings.StereoType != StereoMonoLeft {
		t.Errorf("StereoType = %q, want %q", findings.StereoType, StereoMonoLeft)
	}
}

func TestAnalyzeStereoIdenticalChannelsIsMonoAsStereo(t *testing.T) {
	buf := toneBuffer(16000, 2.0, true, true)

	findings, err := AnalyzeStereo(buf, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeStereo: %v", err)
	}
	if findings.StereoType != StereoMonoAsStereo {
		t.Errorf("StereoType = %q, want %q", findings.StereoType, StereoMonoAsStereo)
	}
}

func TestAnalyzeStereoAlternatingSpeakersIsConversational(t *testing.T) {
	buf := concatBuffers(
		toneBuffer(16000, 1.0, true, false),
		toneBuffer(16000, 1.0, false, true),
		toneBuffer(16000, 1.0, true, false),
		toneBuffer(16000, 1.0, false, true),
	)

	findings, err := AnalyzeStereo(buf, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeStereo: %v", err)
	}
	if findings.StereoType != StereoConversational {
		t.Errorf("StereoType = %q, want %q", findings.StereoType, StereoConversational)
	}
}

func TestAnalyzeStereoWrongChannelCountIsUndetermined(t *testing.T) {
	buf := audio.Buffer{SampleRateHz: 16000, Channels: [][]float32{make([]float32, 16000)}}

	findings, err := AnalyzeStereo(buf, -60, progress.Noop, cancel.Token{})
	if err != nil {
		t.Fatalf("AnalyzeStereo: %v", err)
	}
	if findings.StereoType != StereoUndetermined {
		t.Errorf("StereoType = %q, want %q", findings.StereoType, StereoUndetermined)
	}
}
