package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/towerstyle/internal/app/editor"
)

type newOptions struct {
	force bool
}

func newNewCmd(app *AppContext) *cobra.Command {
	opts := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new <style.json>",
		Short: "Create an empty style document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.new")
			path := args[0]

			doc, err := app.Editor.Create(ctx, path, opts.force)
			if err != nil {
				logger.Error(ctx, "create failed", "path", path, "error", err)
				if errors.Is(err, editor.ErrExists) {
					return newCommandError("create style", path, err, "Pass --force to overwrite it.")
				}
				return newCommandError("create style", path, err, "Check that the directory is writable.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", path, doc.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
