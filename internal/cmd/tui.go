package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/backoffice/cli/internal/logging"
	"github.com/gravitrone/backoffice/cli/internal/ui"
)

// RunTUI starts the interactive backoffice. A stored session skips login.
func RunTUI(ctx context.Context) error {
	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	logging.Info("tui starting", "base_url", rt.cfg.BaseURL)
	app := ui.NewApp(rt.client, rt.cfg, rt.holder)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	rt.client.OnUnauthorized(ui.UnauthorizedNotifier(p.Send))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
