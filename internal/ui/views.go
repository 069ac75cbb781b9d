package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vibingwithtom/recspec/internal/criteria"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#005FAF"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
	passStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// renderBatchView renders the main in-progress view.
func renderBatchView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderFileQueue(m))
	b.WriteString("\n\n")
	b.WriteString(renderOverallProgress(m))

	return b.String()
}

func renderHeader(m Model) string {
	title := titleStyle.Render("recspec")
	subtitle := subtleStyle.Render(fmt.Sprintf("Validating %d file(s)", m.TotalFiles))
	return title + "\n" + subtitle
}

func renderFileQueue(m Model) string {
	var b strings.Builder
	for i, file := range m.Files {
		b.WriteString(renderFileEntry(file, i, m.CurrentIndex))
		b.WriteString("\n")
	}
	return b.String()
}

func renderFileEntry(file FileProgress, index int, currentIndex int) string {
	switch file.Status {
	case StatusComplete:
		icon := outcomeIcon(file.Report.Overall)
		return fmt.Sprintf(" %s %s\n   %s", icon, file.Name, outcomeSummary(file.Report.Overall))

	case StatusError:
		icon := failStyle.Render("✗")
		return fmt.Sprintf(" %s %s\n   %s", icon, file.Name, renderFileDetails(file))

	case StatusAnalyzing:
		icon := warningStyle.Render("⚙")
		return fmt.Sprintf(" %s %s\n%s", icon, file.Name, renderFileDetails(file))

	default:
		icon := queuedStyle.Render("○")
		return fmt.Sprintf(" %s %s\n   Queued...", icon, file.Name)
	}
}

func renderFileDetails(file FileProgress) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#005FAF")).
		Padding(0, 1).
		Width(60)

	var content strings.Builder
	if file.Message != "" {
		content.WriteString(file.Message)
		content.WriteString("\n")
	}
	content.WriteString(renderProgressBar(file.Progress, 40))
	content.WriteString(fmt.Sprintf("\nElapsed: %.1fs", file.ElapsedTime.Seconds()))

	return box.Render(content.String())
}

func renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	empty := width - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("%s %d%%", bar, int(progress*100))
}

func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1).
		Width(60)

	var content string
	if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Files) {
		content = fmt.Sprintf("Validating file %d of %d (%d done)",
			m.CurrentIndex+1, m.TotalFiles, m.CompletedFiles+m.FailedFiles)
	} else {
		content = fmt.Sprintf("Overall progress: %d/%d complete", m.CompletedFiles+m.FailedFiles, m.TotalFiles)
	}

	return box.Render(content + "\n(press q to cancel)")
}

// renderCompletionSummary renders the final batch summary.
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	header := titleStyle.Render("Batch Complete")
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, file := range m.Files {
		if file.Status == StatusComplete || file.Status == StatusError {
			b.WriteString(renderCompletedFile(file))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Pass: %d  Warning: %d  Fail: %d  Error: %d\n",
		m.Counters.Pass, m.Counters.Warning, m.Counters.Fail, m.Counters.Error))

	return b.String()
}

func renderCompletedFile(file FileProgress) string {
	icon := outcomeIcon(file.Report.Overall)
	return fmt.Sprintf(" %s %s\n   %s", icon, file.Name, outcomeSummary(file.Report.Overall))
}

func outcomeIcon(overall criteria.Overall) string {
	switch overall {
	case criteria.OverallPass:
		return passStyle.Render("✓")
	case criteria.OverallWarning:
		return warningStyle.Render("⚠")
	case criteria.OverallFail:
		return failStyle.Render("✗")
	default:
		return failStyle.Render("!")
	}
}

func outcomeSummary(overall criteria.Overall) string {
	switch overall {
	case criteria.OverallPass:
		return passStyle.Render("PASS")
	case criteria.OverallWarning:
		return warningStyle.Render("WARNING")
	case criteria.OverallFail:
		return failStyle.Render("FAIL")
	default:
		return failStyle.Render("ERROR")
	}
}
