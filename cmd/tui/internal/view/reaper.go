package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Reaper purges spots whose soft-delete grace period has elapsed.
type Reaper interface {
	Run(ctx context.Context) (int, error)
}

type reaperState int

const (
	reaperStateConfirm reaperState = iota
	reaperStateRunning
	reaperStateResult
)

// A run may delete many objects, so it gets more room than a single query.
const reaperTimeout = 2 * time.Minute

type ReaperModel struct {
	reaper Reaper

	state   reaperState
	form    *huh.Form
	confirm *bool
	spinner spinner.Model

	deleted int
	elapsed time.Duration
	err     error
}

func NewReaperModel(r Reaper) ReaperModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ReaperModel{
		reaper:  r,
		state:   reaperStateConfirm,
		confirm: new(bool),
		spinner: s,
	}
	m.form = m.buildConfirmForm()

	return m
}

func (m ReaperModel) Title() string { return "Purge Deleted Spots" }

func (m ReaperModel) ShortHelp() string {
	switch m.state {
	case reaperStateRunning:
		return "Purging..."
	case reaperStateResult:
		return "Esc: back to menu"
	}
	return "Esc: back | Enter: confirm"
}

func (m ReaperModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ReaperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case reaperStateConfirm:
		return m.updateConfirm(msg)
	case reaperStateRunning:
		return m.updateRunning(msg)
	case reaperStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ReaperModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirm {
		return m, Back
	}

	m.state = reaperStateRunning
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, m.runCmd())
}

func (m ReaperModel) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(reaperResultMsg); ok {
		m.state = reaperStateResult
		m.deleted = result.deleted
		m.elapsed = result.elapsed
		m.err = result.err
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m ReaperModel) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Purge spots past their grace period?").
				Description("Stored images are deleted along with the rows").
				Affirmative("Purge").
				Negative("Cancel").
				Value(m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ReaperModel) View() string {
	switch m.state {
	case reaperStateConfirm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case reaperStateRunning:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Purging expired spots...", m.spinner.View()),
		)

	case reaperStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Purge Complete!")

		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s\n\nDeleted: %d\nTook: %s\n\n(Esc to back)", header, m.deleted, m.elapsed.Round(time.Millisecond)),
		)
	}

	return ""
}

type reaperResultMsg struct {
	deleted int
	elapsed time.Duration
	err     error
}

func (m ReaperModel) runCmd() tea.Cmd {
	r := m.reaper

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reaperTimeout)
		defer cancel()

		start := time.Now()
		deleted, err := r.Run(ctx)

		return reaperResultMsg{deleted: deleted, elapsed: time.Since(start), err: err}
	}
}
