package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vibingwithtom/recspec/internal/analysis"
	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/report"
)

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()

	level := analysis.LevelFindings{
		PeakDB:       -6.1,
		NoiseFloorDB: -58.0,
		Normalization: analysis.Normalization{
			Status: "normalized", PeakDB: -6.1, TargetDB: analysis.NormalizationTargetDB,
		},
	}

	rep := report.Report{
		FileName: "sample.wav",
		FileProperties: criteria.FileProperties{
			FileType: "WAV", KnownSampleRate: true, SampleRateHz: 48000,
			KnownBitDepth: true, BitDepth: 16, KnownChannels: true, ChannelCount: 1,
			KnownDuration: true, DurationS: 12.5, FileSizeBytes: 1200000,
		},
		Level: &level,
		Validations: map[string]criteria.ValidationResult{
			"sample_rate": {Status: criteria.Pass, Matched: true, Observed: "48000", Expected: "48000"},
		},
		Overall: criteria.OverallPass,
	}

	if err := GenerateReport(dir, rep); err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sample.recspec.log"))
	if err != nil {
		t.Fatalf("reading generated log: %v", err)
	}
	out := string(data)

	for _, want := range []string{"sample.wav", "48000 Hz", "Peak", "-6.1", "normalized", "sample_rate", "pass"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateReportErrorResult(t *testing.T) {
	dir := t.TempDir()
	rep := report.Report{
		FileName:    "bad.wav",
		Overall:     criteria.OverallError,
		Error:       nil,
		Validations: map[string]criteria.ValidationResult{},
	}
	if err := GenerateReport(dir, rep); err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
}
