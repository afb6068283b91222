// Package tui provides the interactive gear checker.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tbctxt/readycheck/internal/cli"
	"github.com/tbctxt/readycheck/internal/engine"
	"github.com/tbctxt/readycheck/internal/model"
)

// debounceDelay is how long input must be quiet before the slot preview
// re-runs. A new keystroke restarts the timer, so at most one re-evaluation
// is pending at a time.
const debounceDelay = 300 * time.Millisecond

type debounceMsg struct {
	gen int
}

type reportMsg struct {
	report *model.Report
	err    error
}

// CheckerModel is the interactive checker's bubbletea model.
type CheckerModel struct {
	eng     *engine.Engine
	class   string
	spec    string
	phase   string
	input   textarea.Model
	spinner spinner.Model

	lines []model.LineResolution
	slots []model.SlotMatchResult

	report      *model.Report
	err         error
	calculating bool
	debounceGen int
	width       int
}

// NewChecker creates the interactive checker for a class/spec/phase, seeded
// with any previously saved gear text.
func NewChecker(eng *engine.Engine, class, spec, phase, gearText string) CheckerModel {
	input := textarea.New()
	input.Placeholder = "Paste your gear list, one item per line..."
	input.SetWidth(60)
	input.SetHeight(10)
	input.SetValue(gearText)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.PrimaryColor)

	m := CheckerModel{
		eng:     eng,
		class:   class,
		spec:    spec,
		phase:   phase,
		input:   input,
		spinner: sp,
	}
	m.lines, m.slots = eng.Preview(class, spec, phase, gearText)
	return m
}

// GearText returns the current contents of the gear textarea.
func (m CheckerModel) GearText() string {
	return m.input.Value()
}

// Init implements tea.Model.
func (m CheckerModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m CheckerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(min(msg.Width-4, 80))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			if m.calculating {
				return m, nil
			}
			m.calculating = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.runCheck())
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.debounceGen++
			gen := m.debounceGen
			return m, tea.Batch(cmd, tea.Tick(debounceDelay, func(time.Time) tea.Msg {
				return debounceMsg{gen: gen}
			}))
		}
		return m, cmd

	case debounceMsg:
		// Stale timers from earlier keystrokes are dropped
		if msg.gen != m.debounceGen {
			return m, nil
		}
		m.lines, m.slots = m.eng.Preview(m.class, m.spec, m.phase, m.input.Value())
		return m, nil

	case reportMsg:
		m.calculating = false
		m.report = msg.report
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.calculating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m CheckerModel) runCheck() tea.Cmd {
	gearText := m.input.Value()
	return func() tea.Msg {
		report, err := m.eng.Check(context.Background(), m.class, m.spec, m.phase, gearText)
		return reportMsg{report: report, err: err}
	}
}

// View implements tea.Model.
func (m CheckerModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("readycheck: %s %s, phase %s", m.class, m.spec, m.phase)
	b.WriteString(cli.FormatTitle(title))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.slots) > 0 {
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
	}

	switch {
	case m.calculating:
		b.WriteString(m.spinner.View() + " fetching item stats...\n")
	case m.err != nil:
		b.WriteString(cli.FormatError(m.err.Error()) + "\n")
	case m.report != nil:
		b.WriteString(cli.RenderReport(m.report))
	}

	b.WriteString(cli.SubtleStyle.Render("\nctrl+s: calculate stats • esc: quit"))
	return b.String()
}

func (m CheckerModel) renderPreview() string {
	var matched int
	var rows []string
	for _, s := range m.slots {
		if s.Status == model.MatchMissing {
			continue
		}
		matched++
		rows = append(rows, fmt.Sprintf("%s %s: %s",
			cli.SuccessIcon, s.DisplaySlot, s.UserItem))
	}

	var resolved int
	for _, l := range m.lines {
		if l.Found {
			resolved++
		}
	}

	header := fmt.Sprintf("%d/%d items recognized, %d/%d slots matched",
		resolved, len(m.lines), matched, len(m.slots))
	if len(rows) == 0 {
		return cli.SubtleStyle.Render(header)
	}
	return cli.SubtleStyle.Render(header) + "\n" + strings.Join(rows, "\n")
}

// Run starts the interactive checker and returns the final model so the
// caller can persist the session.
func Run(m CheckerModel) (CheckerModel, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(CheckerModel); ok {
		return fm, nil
	}
	return m, nil
}
