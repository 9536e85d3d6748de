package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/session"
)

// Run shows the form until the user quits or ctx is done.
func Run(ctx context.Context, controller Controller, initial session.Config, dark bool, logs *common.LogBuffer) error {
	p := tea.NewProgram(
		NewModel(ctx, controller, initial, dark, logs),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
