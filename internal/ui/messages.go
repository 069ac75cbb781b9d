package ui

import (
	"github.com/vibingwithtom/recspec/internal/batch"
	"github.com/vibingwithtom/recspec/internal/report"
)

// ProgressMsg carries a progress update from the batch orchestrator for the
// file at FileIndex.
type ProgressMsg struct {
	FileIndex int
	Message   string
	Progress  float64 // 0.0 to 1.0
}

// FileStartMsg indicates a file has begun analysis.
type FileStartMsg struct {
	FileIndex int
	FileName  string
}

// FileCompleteMsg carries a finished file's Report.
type FileCompleteMsg struct {
	FileIndex int
	Report    report.Report
}

// AllCompleteMsg indicates the batch has finished, successfully or by
// cancellation.
type AllCompleteMsg struct {
	Counters batch.Counters
}
