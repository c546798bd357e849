package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/towerstyle/internal/tui"
)

func newEditCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <style.json>",
		Short: "Browse and edit a style document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.edit")
			path := args[0]

			store, err := app.Editor.Open(ctx, path)
			if err != nil {
				logger.Error(ctx, "open failed", "path", path, "error", err)
				return newCommandError("open style", path, err, "Run 'towerstyle new' to create a document, or fix the reported line.")
			}

			p := tea.NewProgram(tui.NewModel(ctx, store, path), tea.WithAltScreen(), tea.WithContext(ctx))
			final, err := p.Run()
			if err != nil {
				logger.Error(ctx, "editor execution failed", "error", err)
				return fmt.Errorf("failed to run editor: %w", err)
			}

			if m, ok := final.(tui.Model); ok && m.Dirty() {
				logger.Warn(ctx, "unsaved changes discarded", "path", path)
				fmt.Fprintln(cmd.ErrOrStderr(), "Unsaved changes were discarded.")
			}
			logger.Info(ctx, "editor closed", "revision", app.Editor.Revision())
			return nil
		},
	}

	return cmd
}
