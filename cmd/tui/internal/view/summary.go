package view

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wayfare/internal/analytics"
	"github.com/MrJamesThe3rd/wayfare/internal/billing"
)

type SummaryService interface {
	Summary(ctx context.Context) (*analytics.Summary, error)
}

type SummaryModel struct {
	svc SummaryService

	summary *analytics.Summary
	loading bool
	err     error
}

func NewSummaryModel(svc SummaryService) SummaryModel {
	return SummaryModel{svc: svc, loading: true}
}

func (m SummaryModel) Title() string { return "Summary" }

func (m SummaryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		m.loading = false
		m.summary = msg.summary
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	s := m.summary
	label := lipgloss.NewStyle().Width(24).Faint(true)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Transactions") + "\n")
	for _, status := range statusOrder(s.TransactionsByStatus) {
		fmt.Fprintf(&b, "  %s %d\n", label.Render(status), s.TransactionsByStatus[status])
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d\n", label.Render("Active subscriptions"), s.ActiveSubscriptions)
	fmt.Fprintf(&b, "%s %d\n", label.Render("Payments (24h)"), s.RecentPayments)
	fmt.Fprintf(&b, "%s %d\n", label.Render("Spots pending delete"), s.SpotsPendingDelete)
	b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("Generated "+FormatDate(s.GeneratedAt)))

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// statusOrder lists known statuses in lifecycle order, then any others
// alphabetically.
func statusOrder(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	seen := make(map[string]bool, len(billing.Statuses))

	for _, s := range billing.Statuses {
		seen[string(s)] = true
		if _, ok := counts[string(s)]; ok {
			out = append(out, string(s))
		}
	}

	var rest []string
	for s := range counts {
		if !seen[s] {
			rest = append(rest, s)
		}
	}
	slices.Sort(rest)

	return append(out, rest...)
}

type summaryMsg struct {
	summary *analytics.Summary
	err     error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := svc.Summary(ctx)
		return summaryMsg{summary: summary, err: err}
	}
}
