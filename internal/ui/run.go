package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/ReviewRadar/internal/viewmodel"
)

// Run runs the interactive TUI until the user quits or ctx is cancelled
func Run(ctx context.Context, store *viewmodel.Store, runner *viewmodel.Runner, opts Options) error {
	model := NewModel(ctx, store, runner, opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
