package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Styles (defined at package init for reuse)
var (
	styleGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleRed   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleGray  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	stylePanel = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	styleEventInfo  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	styleEventWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	styleEventError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	prog := m.renderProgress()
	fitness := m.renderFitness()
	meta := m.renderMeta()
	events := m.renderEvents()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		prog,
		lipgloss.JoinHorizontal(lipgloss.Top, fitness, meta),
		events,
		footer,
	)
}

func (m Model) renderHeader() string {
	runtime := time.Since(m.snapshot.StartTime)
	return styleHeader.Render(fmt.Sprintf(
		"%s │ evaluator=%s │ runtime=%s",
		m.snapshot.RunName,
		m.snapshot.Evaluator,
		FormatDuration(runtime),
	))
}

func (m Model) renderProgress() string {
	s := m.snapshot
	if s.MaxGenerations == 0 {
		return ""
	}
	frac := float64(s.Generation) / float64(s.MaxGenerations)
	if frac > 1 {
		frac = 1
	}
	return stylePanel.Render(fmt.Sprintf(
		"Generation %d/%d  %s",
		s.Generation, s.MaxGenerations,
		m.progress.ViewAs(frac),
	))
}

func (m Model) renderFitness() string {
	s := m.snapshot
	return stylePanel.Width(52).Render(fmt.Sprintf(
		"Fitness: best=%s │ avg=%.4f │ worst=%.4f",
		m.bestChangeColor(s.BestFitness),
		s.AvgFitness,
		s.WorstFitness,
	))
}

func (m Model) renderMeta() string {
	s := m.snapshot
	return stylePanel.Width(52).Render(fmt.Sprintf(
		"Pop: size=%d │ elite=%d │ workers=%d │ evals=%d (%.0f/s)",
		s.PopulationSize,
		s.EliteCount,
		s.Workers,
		s.Evaluations,
		s.RatePerSec,
	))
}

func (m Model) renderEvents() string {
	// viewport.Model is a struct, not a pointer - never nil
	// Content is updated in Update() on MsgEvent, not here
	if !m.ready || m.width == 0 {
		return stylePanel.Render("Events: initializing...")
	}
	return stylePanel.Render("Events (scroll):") + "\n" + m.viewport.View()
}

func (m Model) renderFooter() string {
	hints := []string{"q: quit", "p: pause"}
	if m.paused {
		hints = append(hints, "(PAUSED)")
	}

	hintStrings := make([]string, len(hints))
	for i, h := range hints {
		hintStrings[i] = styleDim.Render(h)
	}

	return styleGray.Render("│ " + strings.Join(hintStrings, " │ ") + " │")
}

func (m Model) bestChangeColor(best float64) string {
	if best > m.prevBest {
		return styleGreen.Render(fmt.Sprintf("%.4f ↑", best))
	}
	if best < m.prevBest {
		return styleRed.Render(fmt.Sprintf("%.4f ↓", best))
	}
	return styleDim.Render(fmt.Sprintf("%.4f =", best))
}

func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}
