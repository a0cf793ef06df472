package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wayfare/internal/billing"
)

// paymentItem wraps a payment to implement list.Item.
type paymentItem struct {
	p *billing.Payment
}

func (i paymentItem) Title() string {
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.p.Status))

	amount := "-"
	if i.p.Amount != nil {
		currency := ""
		if i.p.Currency != nil {
			currency = *i.p.Currency
		}
		amount = FormatAmount(*i.p.Amount, currency)
	}

	return fmt.Sprintf("%s  %s  %s  %s", FormatDate(i.p.CreatedAt), amount, status, i.p.Provider)
}

func (i paymentItem) Description() string {
	var parts []string
	if i.p.SubscriptionID != nil {
		parts = append(parts, "Subscription: "+*i.p.SubscriptionID)
	}
	if i.p.ProviderRef != nil {
		parts = append(parts, "Ref: "+*i.p.ProviderRef)
	}

	return strings.Join(parts, "  |  ")
}

func (i paymentItem) FilterValue() string {
	return i.p.Status + " " + i.Description()
}

type PaymentsModel struct {
	billingService *billing.Service

	list    list.Model
	loading bool
	err     error
}

func NewPaymentsModel(svc *billing.Service) PaymentsModel {
	l := list.New([]list.Item{}, paymentItemDelegate{}, 80, 20)
	l.Title = "Payments"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return PaymentsModel{
		billingService: svc,
		list:           l,
		loading:        true,
	}
}

func (m PaymentsModel) Title() string { return "Payments" }

func (m PaymentsModel) ShortHelp() string {
	return "Esc: back | /: filter | r: refresh"
}

func (m PaymentsModel) Init() tea.Cmd {
	return m.loadPaymentsCmd()
}

func (m PaymentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPaymentsMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}

		items := make([]list.Item, len(msg.payments))
		for i, p := range msg.payments {
			items[i] = paymentItem{p: p}
		}
		return m, m.list.SetItems(items)

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// While filtering, keys belong to the filter input.
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "esc":
				if m.list.FilterState() == list.FilterApplied {
					m.list.ResetFilter()
					return m, nil
				}
				return m, Back
			case "r":
				m.loading = true
				return m, m.loadPaymentsCmd()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PaymentsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading payments...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(m.list.View())
}

type loadPaymentsMsg struct {
	payments []*billing.Payment
	err      error
}

func (m PaymentsModel) loadPaymentsCmd() tea.Cmd {
	svc := m.billingService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		payments, err := svc.Payments(ctx, billing.PaymentFilter{Limit: listLimit})
		return loadPaymentsMsg{payments: payments, err: err}
	}
}

// paymentItemDelegate renders items in the list.
type paymentItemDelegate struct{}

func (d paymentItemDelegate) Height() int                             { return 2 }
func (d paymentItemDelegate) Spacing() int                            { return 0 }
func (d paymentItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d paymentItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(paymentItem)
	if !ok {
		return
	}

	title := i.Title()
	desc := i.Description()

	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)

	if desc == "" {
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(desc))
}
