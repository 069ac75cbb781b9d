// Package logging provides analysis report generation for recspec.
// This file contains reusable table formatting infrastructure for
// single-value metric tables, generalized from the teacher's three-column
// Input/Filtered/Final comparison table: recspec reports one measurement
// per metric rather than a before/after/final comparison, so the Values
// slice collapses to a single Value field.

package logging

import (
	"fmt"
	"math"
	"strings"
)

// MetricRow represents a single row in a metric table.
type MetricRow struct {
	Label          string // Row label, e.g., "Peak Level"
	Value          string // Pre-formatted value
	Unit           string // Unit suffix, e.g., "dB", "%", "" for unitless
	Interpretation string // Optional interpretation text (only shown if non-empty)
}

// MetricTable formats aligned label/value/unit rows for a report section.
// Handles variable column widths, missing values, and an optional
// interpretation column.
type MetricTable struct {
	Rows []MetricRow
}

// NewMetricTable creates an empty MetricTable.
func NewMetricTable() *MetricTable {
	return &MetricTable{}
}

// AddRow adds a row with a pre-formatted value.
func (t *MetricTable) AddRow(label, value, unit, interpretation string) {
	t.Rows = append(t.Rows, MetricRow{Label: label, Value: value, Unit: unit, Interpretation: interpretation})
}

// AddMetricRow adds a row with a numeric value, formatting it automatically.
// Pass math.NaN() for a missing value - it will display as "-".
func (t *MetricTable) AddMetricRow(label string, value float64, decimals int, unit, interpretation string) {
	t.AddRow(label, formatMetric(value, decimals), unit, interpretation)
}

// String renders the table with aligned columns.
// - Labels are left-aligned
// - Values are right-aligned
// - Units are appended after the value
// - Interpretation column only shown if any row has one
func (t *MetricTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	hasInterpretation := false
	labelWidth, valueWidth, unitWidth := 0, 0, 0
	for _, row := range t.Rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
		if len(row.Unit) > unitWidth {
			unitWidth = len(row.Unit)
		}
		if row.Interpretation != "" {
			hasInterpretation = true
		}
	}

	var sb strings.Builder
	for _, row := range t.Rows {
		sb.WriteString(fmt.Sprintf("%-*s  %*s", labelWidth, row.Label, valueWidth, row.Value))
		if unitWidth > 0 {
			sb.WriteString(fmt.Sprintf(" %-*s", unitWidth, row.Unit))
		}
		if hasInterpretation && row.Interpretation != "" {
			sb.WriteString("  ")
			sb.WriteString(row.Interpretation)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// MissingValue is the placeholder for unavailable measurements.
const MissingValue = "-"

// DigitalSilenceThreshold is the dBFS level below which a signal is
// considered digital silence.
const DigitalSilenceThreshold = -120.0

// isDigitalSilence reports whether value represents digital silence (true
// zero or below threshold).
func isDigitalSilence(value float64) bool {
	return math.IsInf(value, -1) || value <= DigitalSilenceThreshold
}

// formatMetric formats a numeric value with appropriate precision.
func formatMetric(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MissingValue
	}
	if value != 0 && math.Abs(value) < 0.0001 {
		return fmt.Sprintf("%.2e", value)
	}
	format := fmt.Sprintf("%%.%df", decimals)
	return fmt.Sprintf(format, value)
}

// formatMetricDB formats a dB value, showing "< -120" at or below the
// digital-silence floor instead of -Inf.
func formatMetricDB(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 1) {
		return MissingValue
	}
	if isDigitalSilence(value) {
		return "< -120"
	}
	format := fmt.Sprintf("%%.%df", decimals)
	return fmt.Sprintf(format, value)
}

// formatMetricSigned formats a value with an explicit sign, e.g. "+2.5".
func formatMetricSigned(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MissingValue
	}
	format := fmt.Sprintf("%%+.%df", decimals)
	return fmt.Sprintf(format, value)
}
