package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vibingwithtom/recspec/internal/criteria"
)

func TestLoadCustomPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")
	doc := `
name: My Custom Preset
file_type: ["WAV"]
sample_rate: [44100, 48000]
bit_depth: [16]
channels: [1]
min_duration_s: 2.5
filename_rule: none
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	preset, err := LoadCustomPreset(path)
	if err != nil {
		t.Fatalf("LoadCustomPreset: %v", err)
	}
	if preset.Name != "My Custom Preset" {
		t.Errorf("Name = %q", preset.Name)
	}
	if preset.ID != criteria.Custom {
		t.Errorf("ID = %q, want %q", preset.ID, criteria.Custom)
	}
	if preset.MinDurationS == nil || *preset.MinDurationS != 2.5 {
		t.Errorf("MinDurationS = %v, want 2.5", preset.MinDurationS)
	}
	if len(preset.SampleRate) != 2 {
		t.Errorf("SampleRate = %v", preset.SampleRate)
	}
}

func TestLoadCustomPresetMissingFile(t *testing.T) {
	if _, err := LoadCustomPreset("/nonexistent/preset.yaml"); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadCatalogue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.yaml")
	doc := `
languages:
  - code: en
    display_name: English
conversations_by_language:
  en: ["conv1", "conv2"]
contributor_pairs_by_language:
  en:
    - ["u1", "a1"]
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cat, err := LoadCatalogue(path)
	if err != nil {
		t.Fatalf("LoadCatalogue: %v", err)
	}
	if len(cat.Languages) != 1 || cat.Languages[0].Code != "en" {
		t.Errorf("Languages = %+v", cat.Languages)
	}
	pairs := cat.ContributorPairsByLanguage["en"]
	if len(pairs) != 1 || pairs[0].UserID != "u1" || pairs[0].AgentID != "a1" {
		t.Errorf("ContributorPairsByLanguage[en] = %+v", pairs)
	}
}
