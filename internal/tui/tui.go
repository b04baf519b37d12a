// Package tui is the interactive front end: the same page controllers as
// the command line, driven by a Bubble Tea program.
package tui

import (
	"context"

	"taskvvts-cli/internal/page"

	tea "github.com/charmbracelet/bubbletea"
)

// Run blocks until the user quits or ctx is cancelled. env.Nav is
// ignored; the program supplies its own navigation.
func Run(ctx context.Context, env page.Env) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(ctx, env)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
