package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/wayfare/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/wayfare/internal/analytics"
	analyticsStore "github.com/MrJamesThe3rd/wayfare/internal/analytics/store"
	"github.com/MrJamesThe3rd/wayfare/internal/billing"
	billingStore "github.com/MrJamesThe3rd/wayfare/internal/billing/store"
	"github.com/MrJamesThe3rd/wayfare/internal/clock"
	"github.com/MrJamesThe3rd/wayfare/internal/config"
	"github.com/MrJamesThe3rd/wayfare/internal/database"
	"github.com/MrJamesThe3rd/wayfare/internal/reaper"
	spotStore "github.com/MrJamesThe3rd/wayfare/internal/spot/store"
	"github.com/MrJamesThe3rd/wayfare/internal/storage"
)

type model struct {
	billingService   *billing.Service
	analyticsService *analytics.Service
	spotReaper       *reaper.Reaper

	// screen is the open screen; nil shows the menu.
	screen view.View
}

func initialModel(ctx context.Context) (model, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return model{}, nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return model{}, nil, fmt.Errorf("connecting to database: %w", err)
	}

	// The TUI is interactive; keep service logs out of the terminal.
	logger := slog.New(slog.DiscardHandler)
	clk := clock.System()

	var objects reaper.ObjectStore

	if cfg.Storage.Bucket != "" {
		bucket, err := storage.NewBucket(ctx, cfg.Storage.Bucket, cfg.Storage.Region)
		if err != nil {
			db.Close()
			return model{}, nil, fmt.Errorf("configuring storage: %w", err)
		}

		objects = bucket
	}

	spots := spotStore.New(db)

	m := model{
		billingService:   billing.NewService(billingStore.New(db), clk, logger),
		analyticsService: analytics.NewService(analyticsStore.New(db), spots, clk),
		spotReaper:       reaper.New(spots, objects, cfg.ReaperTTL(), clk, logger),
	}

	return m, func() { db.Close() }, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.screen == nil {
			return m.updateMenu(msg)
		}
	case view.BackMsg:
		m.screen = nil
		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	next, cmd := m.screen.Update(msg)
	m.screen = next.(view.View)

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1":
		m.screen = view.NewTransactionsModel(m.billingService)
	case "2":
		m.screen = view.NewPaymentsModel(m.billingService)
	case "3":
		m.screen = view.NewReaperModel(m.spotReaper)
	case "4":
		m.screen = view.NewSummaryModel(m.analyticsService)
	default:
		return m, nil
	}

	return m, m.screen.Init()
}

func (m model) View() string {
	if m.screen == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Wayfare Billing Console\n\n" +
				"1. Transactions & Refunds\n" +
				"2. Payments\n" +
				"3. Purge Deleted Spots\n" +
				"4. Summary\n\n" +
				"q. Quit",
		)
	}

	title := lipgloss.NewStyle().Bold(true).PaddingLeft(1).Render(m.screen.Title())
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.screen.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, m.screen.View(), help)
}

func main() {
	m, closeDB, err := initialModel(context.Background())
	if err != nil {
		slog.Error("failed to start TUI", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		closeDB()
		os.Exit(1)
	}
}
