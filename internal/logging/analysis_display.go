// Package logging handles generation of analysis reports for recspec.
// This file provides console display of a single file's Report, for
// non-interactive use (cmd/recspec's plain output when --json is not set
// and no terminal is attached).

package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vibingwithtom/recspec/internal/report"
)

func durationOf(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// DisplayReport writes rep to w as a console-friendly summary.
func DisplayReport(w io.Writer, rep report.Report) {
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "ANALYSIS: %s\n", filepath.Base(rep.FileName))
	fmt.Fprintln(w, strings.Repeat("=", 70))

	p := rep.FileProperties
	fmt.Fprintf(w, "Type:        %s\n", orUnknownStr(p.FileType))
	if p.KnownDuration {
		fmt.Fprintf(w, "Duration:    %s\n", formatDuration(durationOf(p.DurationS)))
	}
	if p.KnownSampleRate {
		fmt.Fprintf(w, "Sample Rate: %d Hz\n", p.SampleRateHz)
	}
	if p.KnownChannels {
		fmt.Fprintf(w, "Channels:    %s\n", channelName(int(p.ChannelCount)))
	}
	fmt.Fprintln(w)

	if rep.Error != nil {
		writeAnalysisSection(w, "ERROR")
		fmt.Fprintf(w, "  %v\n\n", rep.Error)
		return
	}

	if l := rep.Level; l != nil {
		writeAnalysisSection(w, "LEVEL")
		fmt.Fprintf(w, "  Peak:          %.1f dB\n", l.PeakDB)
		fmt.Fprintf(w, "  Noise Floor:   %.1f dB\n", l.NoiseFloorDB)
		fmt.Fprintf(w, "  Normalization: %s\n", l.Normalization.Status)
		if l.Clipping.EventCount > 0 {
			fmt.Fprintf(w, "  Clipping:      %d events, %.2f%% clipped\n", l.Clipping.EventCount, l.Clipping.ClippedPct)
		}
		fmt.Fprintln(w)
	}

	if r := rep.Reverb; r != nil {
		writeAnalysisSection(w, "REVERB")
		fmt.Fprintf(w, "  RT60: %.2fs (%s)\n\n", r.Rt60Seconds, r.Label)
	}

	if s := rep.Silence; s != nil {
		writeAnalysisSection(w, "SILENCE")
		fmt.Fprintf(w, "  Leading:  %.2fs\n", s.LeadingSilenceS)
		fmt.Fprintf(w, "  Trailing: %.2fs\n", s.TrailingSilenceS)
		fmt.Fprintf(w, "  Longest gap: %.2fs\n\n", s.LongestGapS)
	}

	if s := rep.Stereo; s != nil {
		writeAnalysisSection(w, "STEREO")
		fmt.Fprintf(w, "  Type:       %s\n", s.StereoType)
		fmt.Fprintf(w, "  Confidence: %.0f%%\n\n", s.Confidence*100)
	}

	if b, c := rep.Bleed, rep.Conversational; b != nil && c != nil {
		writeAnalysisSection(w, "MIC BLEED & OVERLAP")
		fmt.Fprintf(w, "  Bleed severity: %.0f/100\n", b.SeverityScore)
		fmt.Fprintf(w, "  Overlap:        %.1f%%\n\n", c.Overlap.OverlapPct)
	}

	writeAnalysisSection(w, "VALIDATION")
	names := make([]string, 0, len(rep.Validations))
	for name := range rep.Validations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := rep.Validations[name]
		fmt.Fprintf(w, "  %-14s %-8s %s\n", name, v.Status, v.Message)
	}
	fmt.Fprintf(w, "  Overall: %s\n", rep.Overall)
}

// writeAnalysisSection writes a section header for console output.
func writeAnalysisSection(w io.Writer, title string) {
	fmt.Fprintln(w, title)
}
