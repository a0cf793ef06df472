package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wayfare/internal/billing"
)

const listLimit = 200

type txState int

const (
	txStateBrowse txState = iota
	txStateRefund
	txStateComplete
	txStateSaving
)

type TransactionsModel struct {
	billingService *billing.Service

	state txState
	table table.Model
	txs   []*billing.Transaction
	form  *huh.Form

	// 0 is "all", i is billing.Statuses[i-1]
	statusFilterIdx int

	loading bool
	err     error
	status  string

	// Form bindings. Pointers so they survive the model being copied.
	formReason  *string
	formConfirm *bool
}

func NewTransactionsModel(svc *billing.Service) TransactionsModel {
	columns := []table.Column{
		{Title: "Tran ID", Width: 24},
		{Title: "Status", Width: 17},
		{Title: "Amount", Width: 14},
		{Title: "Updated", Width: 17},
		{Title: "Refund Reason", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return TransactionsModel{
		billingService: svc,
		table:          t,
		loading:        true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateSaving:
		return "Saving..."
	case txStateRefund, txStateComplete:
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | s: status filter | f: request refund | c: complete refund | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.txs = msg.txs
		m.refreshTable()
		return m, nil

	case refundResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("%s is now %s", msg.tx.TranID, msg.tx.Status)
		}
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateSaving:
		return m, nil
	}

	return m.updateForm(msg)
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % (len(billing.Statuses) + 1)
			m.loading = true
			return m, m.loadTxsCmd()
		case "f":
			return m.openForm(txStateRefund, billing.StatusCompleted)
		case "c":
			return m.openForm(txStateComplete, billing.StatusRefundRequested)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TransactionsModel) openForm(state txState, want billing.Status) (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	if tx.Status != want {
		m.status = fmt.Sprintf("%s is %s, expected %s", tx.TranID, tx.Status, want)
		return m, nil
	}

	m.formReason = new(string)
	m.formConfirm = new(bool)

	var fields []huh.Field
	if state == txStateRefund {
		fields = append(fields,
			huh.NewInput().
				Key("reason").
				Title("Reason").
				Placeholder("optional").
				Value(m.formReason),
		)
	}

	fields = append(fields,
		huh.NewConfirm().
			Key("confirm").
			Title(confirmTitle(state, tx.TranID)).
			Affirmative("Yes").
			Negative("No").
			Value(m.formConfirm),
	)

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)
	m.state = state
	m.status = ""
	m.table.Blur()
	return m, m.form.Init()
}

func confirmTitle(state txState, tranID string) string {
	if state == txStateRefund {
		return fmt.Sprintf("Request refund for %s?", tranID)
	}

	return fmt.Sprintf("Mark %s as refunded?", tranID)
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.closeForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if !*m.formConfirm {
			return m.closeForm(), nil
		}
		cmd := m.refundCmd()
		if cmd == nil {
			return m.closeForm(), nil
		}
		m.state = txStateSaving
		return m, cmd
	case huh.StateAborted:
		return m.closeForm(), nil
	}

	return m, cmd
}

func (m TransactionsModel) closeForm() TransactionsModel {
	m.state = txStateBrowse
	m.form = nil
	m.table.Focus()
	return m
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | %d shown", activeStyle(m.filterLabel()), len(m.txs))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.txInfoView() + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m TransactionsModel) txInfoView() string {
	tx := m.selected()
	if tx == nil {
		return ""
	}

	return fmt.Sprintf(
		"Tran ID: %s\nAmount: %s\nCreated: %s",
		tx.TranID,
		FormatAmount(tx.Amount, tx.Currency),
		FormatDate(tx.CreatedAt),
	)
}

func (m TransactionsModel) filterLabel() string {
	if m.statusFilterIdx == 0 {
		return "All"
	}

	return string(billing.Statuses[m.statusFilterIdx-1])
}

func (m TransactionsModel) filter() billing.ListFilter {
	f := billing.ListFilter{Limit: listLimit}
	if m.statusFilterIdx > 0 {
		f.Status = new(billing.Statuses[m.statusFilterIdx-1])
	}

	return f
}

func (m TransactionsModel) selected() *billing.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		reason := ""
		if v, ok := tx.Metadata["refund_reason"]; ok {
			reason, _ = v.AsString()
		}

		rows = append(rows, table.Row{
			tx.TranID,
			string(tx.Status),
			FormatAmount(tx.Amount, tx.Currency),
			FormatDate(tx.UpdatedAt),
			strings.TrimSpace(reason),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadTxsMsg struct {
	txs []*billing.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	filter := m.filter()
	svc := m.billingService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := svc.List(ctx, filter)
		return loadTxsMsg{txs: txs, err: err}
	}
}

type refundResultMsg struct {
	tx  *billing.Transaction
	err error
}

func (m TransactionsModel) refundCmd() tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	tranID := tx.TranID
	reason := *m.formReason
	state := m.state
	svc := m.billingService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var (
			updated *billing.Transaction
			err     error
		)

		if state == txStateRefund {
			updated, err = svc.RequestRefund(ctx, tranID, reason)
		} else {
			updated, err = svc.CompleteRefund(ctx, tranID)
		}

		return refundResultMsg{tx: updated, err: err}
	}
}
