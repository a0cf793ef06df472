package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is one console screen. The menu labels it with Title and renders
// ShortHelp as its footer.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// BackMsg returns control to the menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
