package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vibingwithtom/recspec/internal/batch"
	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/report"
)

func TestModelFileLifecycle(t *testing.T) {
	var cancelled bool
	m := NewModel([]string{"a.wav", "b.wav"}, func() { cancelled = true })

	updated, _ := m.Update(FileStartMsg{FileIndex: 0, FileName: "a.wav"})
	m = updated.(Model)
	if m.Files[0].Status != StatusAnalyzing {
		t.Fatalf("expected StatusAnalyzing, got %v", m.Files[0].Status)
	}

	updated, _ = m.Update(ProgressMsg{FileIndex: 0, Message: "peak", Progress: 0.5})
	m = updated.(Model)
	if m.Files[0].Progress != 0.5 {
		t.Fatalf("expected progress 0.5, got %v", m.Files[0].Progress)
	}

	updated, _ = m.Update(FileCompleteMsg{FileIndex: 0, Report: report.Report{Overall: criteria.OverallPass}})
	m = updated.(Model)
	if m.Files[0].Status != StatusComplete {
		t.Fatalf("expected StatusComplete, got %v", m.Files[0].Status)
	}
	if m.CompletedFiles != 1 {
		t.Fatalf("expected 1 completed file, got %d", m.CompletedFiles)
	}

	updated, _ = m.Update(FileCompleteMsg{FileIndex: 1, Report: report.Report{Overall: criteria.OverallError}})
	m = updated.(Model)
	if m.Files[1].Status != StatusError {
		t.Fatalf("expected StatusError, got %v", m.Files[1].Status)
	}
	if m.FailedFiles != 1 {
		t.Fatalf("expected 1 failed file, got %d", m.FailedFiles)
	}

	updated, _ = m.Update(AllCompleteMsg{Counters: batch.Counters{Pass: 1, Error: 1}})
	m = updated.(Model)
	if !m.Done {
		t.Fatal("expected Done after AllCompleteMsg")
	}
	if m.Counters.Pass != 1 || m.Counters.Error != 1 {
		t.Fatalf("unexpected counters: %+v", m.Counters)
	}

	if cancelled {
		t.Fatal("cancel should not have been called")
	}
}

func TestModelCancelOnQuit(t *testing.T) {
	var cancelled bool
	m := NewModel([]string{"a.wav"}, func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !cancelled {
		t.Fatal("expected Cancel to be called on 'q'")
	}
	if cmd == nil {
		t.Fatal("expected a tea.Quit command")
	}
}
