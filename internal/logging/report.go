// Package logging handles generation of analysis reports for recspec.

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vibingwithtom/recspec/internal/analysis"
	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/report"
)

// writeSection writes a section header with title and dashed underline.
func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// channelName returns a human-readable channel name.
func channelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d channels", channels)
	}
}

// GenerateReport writes rep as a detailed text report to
// <fileName-without-ext>.recspec.log inside dir, per spec.md
// §4.10's per-file Report output.
func GenerateReport(dir string, rep report.Report) error {
	base := strings.TrimSuffix(filepath.Base(rep.FileName), filepath.Ext(rep.FileName))
	logPath := filepath.Join(dir, base+".recspec.log")

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	writeReportHeader(f, rep)
	writeFilePropertiesSection(f, rep)

	if rep.Level != nil {
		writeLevelSection(f, rep.Level)
	}
	if rep.Reverb != nil {
		writeReverbSection(f, rep.Reverb)
	}
	if rep.Silence != nil {
		writeSilenceSection(f, rep.Silence)
	}
	if rep.Stereo != nil {
		writeStereoSection(f, rep.Stereo)
	}
	if rep.Bleed != nil && rep.Conversational != nil {
		writeConversationalSection(f, rep.Bleed, rep.Conversational)
	}

	writeValidationSection(f, rep)

	return nil
}

func writeReportHeader(f *os.File, rep report.Report) {
	fmt.Fprintf(f, "recspec analysis report: %s\n", rep.FileName)
	fmt.Fprintf(f, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
}

func writeFilePropertiesSection(f *os.File, rep report.Report) {
	writeSection(f, "File Properties")
	p := rep.FileProperties
	fmt.Fprintf(f, "Type:        %s\n", orUnknownStr(p.FileType))
	if p.KnownSampleRate {
		fmt.Fprintf(f, "Sample Rate: %d Hz\n", p.SampleRateHz)
	} else {
		fmt.Fprintf(f, "Sample Rate: %s\n", criteria.Unknown)
	}
	if p.KnownBitDepth {
		fmt.Fprintf(f, "Bit Depth:   %d-bit\n", p.BitDepth)
	} else if p.CompressedDepth {
		fmt.Fprintf(f, "Bit Depth:   compressed\n")
	} else {
		fmt.Fprintf(f, "Bit Depth:   %s\n", criteria.Unknown)
	}
	if p.KnownChannels {
		fmt.Fprintf(f, "Channels:    %s\n", channelName(int(p.ChannelCount)))
	} else {
		fmt.Fprintf(f, "Channels:    %s\n", criteria.Unknown)
	}
	if p.KnownDuration {
		fmt.Fprintf(f, "Duration:    %s\n", formatDuration(time.Duration(p.DurationS*float64(time.Second))))
	} else {
		fmt.Fprintf(f, "Duration:    %s\n", criteria.Unknown)
	}
	fmt.Fprintf(f, "Size:        %d bytes\n", p.FileSizeBytes)
	fmt.Fprintln(f)
}

func orUnknownStr(s string) string {
	if s == "" {
		return criteria.Unknown
	}
	return s
}

func writeLevelSection(f *os.File, l *analysis.LevelFindings) {
	writeSection(f, "Level Analysis")
	table := NewMetricTable()
	table.AddMetricRow("Peak", l.PeakDB, 1, "dB", "")
	table.AddMetricRow("Noise Floor", l.NoiseFloorDB, 1, "dB", "")
	table.AddRow("Normalization", l.Normalization.Status, "", fmt.Sprintf("target %.1f dB", l.Normalization.TargetDB))
	table.AddRow("Clipping Events", fmt.Sprintf("%d", l.Clipping.EventCount), "", "")
	table.AddMetricRow("Clipped Samples", l.Clipping.ClippedPct, 2, "%", "")
	table.AddMetricRow("Near-Clipping Samples", l.Clipping.NearClippingPct, 2, "%", "")
	fmt.Fprint(f, table.String())
	fmt.Fprintln(f)
}

func writeReverbSection(f *os.File, r *analysis.ReverbFindings) {
	writeSection(f, "Reverb (RT60)")
	table := NewMetricTable()
	table.AddMetricRow("RT60", r.Rt60Seconds, 2, "s", r.Label)
	fmt.Fprint(f, table.String())
	fmt.Fprintln(f)
}

func writeSilenceSection(f *os.File, s *analysis.SilenceFindings) {
	writeSection(f, "Silence")
	table := NewMetricTable()
	table.AddMetricRow("Leading Silence", s.LeadingSilenceS, 2, "s", "")
	table.AddMetricRow("Trailing Silence", s.TrailingSilenceS, 2, "s", "")
	table.AddMetricRow("Longest Gap", s.LongestGapS, 2, "s", "")
	table.AddMetricRow("Threshold", s.ThresholdDB, 1, "dB", "")
	fmt.Fprint(f, table.String())
	if len(s.Segments) > 0 {
		fmt.Fprintf(f, "Internal silence segments: %d\n", len(s.Segments))
	}
	fmt.Fprintln(f)
}

func writeStereoSection(f *os.File, s *analysis.StereoFindings) {
	writeSection(f, "Stereo")
	table := NewMetricTable()
	table.AddRow("Type", s.StereoType, "", "")
	table.AddMetricRow("Confidence", s.Confidence*100, 0, "%", "")
	fmt.Fprint(f, table.String())
	fmt.Fprintln(f)
}

func writeConversationalSection(f *os.File, bleed *analysis.MicBleedFindings, conv *analysis.ConversationalFindings) {
	writeSection(f, "Mic Bleed & Conversational Overlap")
	table := NewMetricTable()
	table.AddMetricRow("Left Bleed", bleed.LeftBleedDB, 1, "dB", "")
	table.AddMetricRow("Right Bleed", bleed.RightBleedDB, 1, "dB", "")
	table.AddMetricRow("Confirmed Bleed", bleed.ConfirmedBleedPct, 1, "%", "")
	table.AddMetricRow("Bleed Severity", bleed.SeverityScore, 0, "/100", "")
	table.AddMetricRow("Overlap", conv.Overlap.OverlapPct, 1, "%", "")
	table.AddMetricRow("Turn-Taking Consistency", conv.Consistency.ConsistencyPct, 1, "%", "")
	fmt.Fprint(f, table.String())
	if len(conv.Overlap.Segments) > 0 {
		fmt.Fprintf(f, "Overlap segments: %d\n", len(conv.Overlap.Segments))
	}
	fmt.Fprintln(f)
}

func writeValidationSection(f *os.File, rep report.Report) {
	writeSection(f, "Validation")
	if rep.Error != nil {
		fmt.Fprintf(f, "Error: %v\n\n", rep.Error)
		return
	}

	names := make([]string, 0, len(rep.Validations))
	for name := range rep.Validations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := rep.Validations[name]
		fmt.Fprintf(f, "%-14s %-8s %s\n", name, v.Status, v.Message)
	}
	fmt.Fprintf(f, "\nOverall: %s\n\n", rep.Overall)
}
