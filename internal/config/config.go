// Package config loads the user-supplied configuration recspec's core has
// no opinion on: the custom preset and the bilingual language/contributor
// catalogues, per spec.md §6. Both are plain YAML, parsed with
// gopkg.in/yaml.v3 the way the teacher's cmd/jivetalking/main.go loads its
// own configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/filename"
)

// CustomPresetDoc is the on-disk shape of a user-supplied "custom" preset.
type CustomPresetDoc struct {
	Name                      string    `yaml:"name"`
	FileType                  []string  `yaml:"file_type"`
	SampleRate                []uint32  `yaml:"sample_rate"`
	BitDepth                  []uint16  `yaml:"bit_depth"`
	Channels                  []uint16  `yaml:"channels"`
	MinDurationS              *float64  `yaml:"min_duration_s"`
	StereoType                []string  `yaml:"stereo_type"`
	MaxOverlapWarningPct      *float64  `yaml:"max_overlap_warning_pct"`
	MaxOverlapFailPct         *float64  `yaml:"max_overlap_fail_pct"`
	MaxOverlapSegmentWarningS *float64  `yaml:"max_overlap_segment_warning_s"`
	MaxOverlapSegmentFailS    *float64  `yaml:"max_overlap_segment_fail_s"`
	FilenameRule              string    `yaml:"filename_rule"`
	PlatformRestriction       *string   `yaml:"platform_restriction"`
	SkipAudioValidation       bool      `yaml:"skip_audio_validation"`
}

// LoadCustomPreset parses a YAML custom-preset file into a criteria.Preset.
func LoadCustomPreset(path string) (criteria.Preset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return criteria.Preset{}, fmt.Errorf("reading custom preset %s: %w", path, err)
	}
	var doc CustomPresetDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return criteria.Preset{}, fmt.Errorf("parsing custom preset %s: %w", path, err)
	}
	return criteria.Preset{
		ID:                        criteria.Custom,
		Name:                      doc.Name,
		FileType:                  doc.FileType,
		SampleRate:                doc.SampleRate,
		BitDepth:                  doc.BitDepth,
		Channels:                  doc.Channels,
		MinDurationS:              doc.MinDurationS,
		StereoType:                doc.StereoType,
		MaxOverlapWarningPct:      doc.MaxOverlapWarningPct,
		MaxOverlapFailPct:         doc.MaxOverlapFailPct,
		MaxOverlapSegmentWarningS: doc.MaxOverlapSegmentWarningS,
		MaxOverlapSegmentFailS:    doc.MaxOverlapSegmentFailS,
		FilenameRule:              criteria.FilenameRule(doc.FilenameRule),
		PlatformRestriction:       doc.PlatformRestriction,
		SkipAudioValidation:       doc.SkipAudioValidation,
	}, nil
}

// catalogueDoc is the on-disk shape of the bilingual language/contributor
// catalogue, per spec.md §6's JSON-shaped description (YAML is a superset
// of the same structure here).
type catalogueDoc struct {
	Languages []struct {
		Code        string `yaml:"code"`
		DisplayName string `yaml:"display_name"`
	} `yaml:"languages"`
	ConversationsByLanguage map[string][]string `yaml:"conversations_by_language"`
	ContributorPairsByLanguage map[string][][2]string `yaml:"contributor_pairs_by_language"`
}

// LoadCatalogue parses a YAML catalogue file into a filename.Catalogue.
func LoadCatalogue(path string) (filename.Catalogue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return filename.Catalogue{}, fmt.Errorf("reading catalogue %s: %w", path, err)
	}
	var doc catalogueDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return filename.Catalogue{}, fmt.Errorf("parsing catalogue %s: %w", path, err)
	}

	cat := filename.Catalogue{
		ConversationsByLanguage:    doc.ConversationsByLanguage,
		ContributorPairsByLanguage: make(map[string][]filename.ContributorPair, len(doc.ContributorPairsByLanguage)),
	}
	for _, l := range doc.Languages {
		cat.Languages = append(cat.Languages, filename.Language{Code: l.Code, DisplayName: l.DisplayName})
	}
	for lang, pairs := range doc.ContributorPairsByLanguage {
		converted := make([]filename.ContributorPair, len(pairs))
		for i, p := range pairs {
			converted[i] = filename.ContributorPair{UserID: p[0], AgentID: p[1]}
		}
		cat.ContributorPairsByLanguage[lang] = converted
	}
	return cat, nil
}
