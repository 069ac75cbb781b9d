package report

import (
	"strings"
	"testing"

	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/wav/wavtest"
)

type memSource struct{ data []byte }

func (m memSource) ReadHeader(maxBytes int) ([]byte, error) {
	if maxBytes > len(m.data) {
		maxBytes = len(m.data)
	}
	return m.data[:maxBytes], nil
}

func (m memSource) ReadAll() ([]byte, error) { return m.data, nil }

func TestAnalyzeMonoPass(t *testing.T) {
	data := wavtest.Generate(wavtest.Options{
		DurationSecs: 2.0, SampleRate: 48000, Channels: 1,
		ToneFreq: 440, ToneLevel: -12,
	})
	preset, _ := criteria.Lookup(criteria.CharacterRecordings)

	rep := Analyze(memSource{data: data}, "voice.wav", Options{Preset: preset})

	if rep.Error != nil {
		t.Fatalf("unexpected error: %v", rep.Error)
	}
	if rep.Level == nil {
		t.Fatal("expected Level findings for a decodable mono WAV")
	}
	if rep.Stereo != nil {
		t.Error("mono input should not produce stereo findings")
	}
	if rep.FileProperties.ChannelCount != 1 {
		t.Errorf("ChannelCount = %d, want 1", rep.FileProperties.ChannelCount)
	}
}

func TestAnalyzeNotAWavFile(t *testing.T) {
	rep := Analyze(memSource{data: []byte("not a wav")}, "bad.wav", Options{})
	if rep.Overall != criteria.OverallError {
		t.Fatalf("Overall = %q, want error", rep.Overall)
	}
	if rep.Error == nil {
		t.Fatal("expected a populated Error")
	}
}

func TestAnalyzeNonWavExtensionWithoutDecoder(t *testing.T) {
	rep := Analyze(memSource{data: []byte{0, 1, 2, 3}}, "clip.mp3", Options{})
	if rep.FileProperties.FileType != "MP3" {
		t.Errorf("FileType = %q, want MP3", rep.FileProperties.FileType)
	}
	// No Decoder supplied: recspec never decodes compressed formats itself,
	// so no findings are produced, but the file is not an error either.
	if rep.Level != nil {
		t.Error("expected no Level findings without a supplied Decoder")
	}
}

func TestAnalyzeStereoFileProducesStereoFindings(t *testing.T) {
	data := wavtest.Generate(wavtest.Options{
		DurationSecs: 3.0, SampleRate: 48000, Channels: 2,
		ToneFreq: 200, ToneLevel: -14,
		PhaseOffsets: []float64{0, 1.7}, // decorrelated, not simple L/R duplication
	})
	preset, _ := criteria.Lookup(criteria.BilingualConversational)

	rep := Analyze(memSource{data: data}, "conv-en-user-u1-agent-a1.wav", Options{Preset: preset})
	if rep.Error != nil {
		t.Fatalf("unexpected error: %v", rep.Error)
	}
	if rep.Stereo == nil {
		t.Fatal("expected stereo findings for a 2-channel file")
	}
}

func TestAnalyzeFilenameValidationRuns(t *testing.T) {
	preset, _ := criteria.Lookup(criteria.ThreeHour)
	data := wavtest.Generate(wavtest.Options{DurationSecs: 1.0, ToneFreq: 440, ToneLevel: -12})

	rep := Analyze(memSource{data: data}, "wrong_name.wav", Options{
		Preset: preset, ScriptBases: []string{"script_a"}, SpeakerID: "speaker1",
	})
	v, ok := rep.Validations["filename"]
	if !ok {
		t.Fatal("expected a filename validation result for the three-hour preset")
	}
	if v.Status != criteria.Fail {
		t.Errorf("filename status = %q, want fail for an unrecognized script", v.Status)
	}
	if !strings.Contains(v.Message, "No matching script") {
		t.Errorf("Message = %q", v.Message)
	}
}
