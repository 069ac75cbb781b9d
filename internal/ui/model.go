// Package ui provides the Bubbletea terminal user interface for recspec's
// interactive batch run.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vibingwithtom/recspec/internal/batch"
	"github.com/vibingwithtom/recspec/internal/criteria"
	"github.com/vibingwithtom/recspec/internal/report"
)

// FileStatus represents the validation state of a single file.
type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusAnalyzing
	StatusComplete
	StatusError
)

// FileProgress tracks progress for a single file in the batch.
type FileProgress struct {
	Name   string
	Status FileStatus

	Message     string
	Progress    float64 // 0.0 to 1.0
	StartTime   time.Time
	ElapsedTime time.Duration

	Report report.Report
}

// Model is the Bubbletea model for a recspec batch run.
type Model struct {
	Files          []FileProgress
	CurrentIndex   int
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int

	StartTime time.Time
	Done      bool
	Counters  batch.Counters

	// ProgressChan is read by the commands Init and Update return; any
	// tea.Msg written to it is delivered to Update. cmd/recspec does not
	// write to it and delivers messages with Program.Send instead.
	ProgressChan chan tea.Msg

	// Cancel requests the in-flight batch stop starting new work. Called
	// when the user presses q or ctrl+c.
	Cancel func()

	Width  int
	Height int
}

// NewModel creates a new UI model with the given file names.
func NewModel(fileNames []string, cancel func()) Model {
	files := make([]FileProgress, len(fileNames))
	for i, name := range fileNames {
		files[i] = FileProgress{Name: name, Status: StatusQueued}
	}

	return Model{
		Files:        files,
		CurrentIndex: -1,
		TotalFiles:   len(fileNames),
		StartTime:    time.Now(),
		ProgressChan: make(chan tea.Msg, 100),
		Cancel:       cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return waitForProgress(m.ProgressChan)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.Cancel != nil {
				m.Cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case ProgressMsg:
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Files) {
			fp := m.Files[msg.FileIndex]
			fp.Progress = msg.Progress
			fp.Message = msg.Message
			fp.ElapsedTime = time.Since(fp.StartTime)
			m.Files[msg.FileIndex] = fp
		}
		return m, waitForProgress(m.ProgressChan)

	case FileStartMsg:
		m.CurrentIndex = msg.FileIndex
		m.Files[msg.FileIndex].Status = StatusAnalyzing
		m.Files[msg.FileIndex].StartTime = time.Now()
		return m, waitForProgress(m.ProgressChan)

	case FileCompleteMsg:
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Files) {
			fp := &m.Files[msg.FileIndex]
			fp.Report = msg.Report
			fp.Progress = 1.0
			switch msg.Report.Overall {
			case criteria.OverallError:
				fp.Status = StatusError
				m.FailedFiles++
			default:
				fp.Status = StatusComplete
				m.CompletedFiles++
			}
		}
		return m, waitForProgress(m.ProgressChan)

	case AllCompleteMsg:
		m.Done = true
		m.Counters = msg.Counters
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.Width == 0 {
		return fmt.Sprintf("Initializing...\nFiles: %d\n", len(m.Files))
	}

	if m.Done {
		return renderCompletionSummary(m)
	}

	return renderBatchView(m)
}

// waitForProgress creates a command that waits for the next message.
func waitForProgress(progressChan chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-progressChan
	}
}
