package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vibingwithtom/recspec/internal/analysis"
	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/report"
	"github.com/vibingwithtom/recspec/internal/rerr"
)

func TestDisplayReport(t *testing.T) {
	stereo := analysis.StereoFindings{StereoType: analysis.StereoConversational, Confidence: 0.82}
	reverb := analysis.ReverbFindings{Rt60Seconds: 0.42, Label: "Good"}

	rep := report.Report{
		FileName: "conv.wav",
		FileProperties: criteria.FileProperties{
			FileType: "WAV", KnownDuration: true, DurationS: 90,
			KnownSampleRate: true, SampleRateHz: 44100,
			KnownChannels: true, ChannelCount: 2,
		},
		Reverb: &reverb,
		Stereo: &stereo,
		Validations: map[string]criteria.ValidationResult{
			"stereo_type": {Status: criteria.Pass},
		},
		Overall: criteria.OverallPass,
	}

	var buf bytes.Buffer
	DisplayReport(&buf, rep)
	out := buf.String()

	for _, want := range []string{"conv.wav", "REVERB", "0.42s", "STEREO", "Conversational Stereo", "VALIDATION", "pass"} {
		if !strings.Contains(out, want) {
			t.Errorf("DisplayReport output missing %q:\n%s", want, out)
		}
	}
}

func TestDisplayReportError(t *testing.T) {
	rep := report.Report{
		FileName: "broken.wav",
		Error:    rerr.New(rerr.NotAWavFile, nil),
		Overall:  criteria.OverallError,
	}
	var buf bytes.Buffer
	DisplayReport(&buf, rep)
	if !strings.Contains(buf.String(), "ERROR") {
		t.Error("expected ERROR section for a report carrying an Error")
	}
}
