package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/towerstyle/internal/app/editor"
)

type diffOptions struct {
	format string
}

func newDiffCmd(app *AppContext) *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <before.json> <after.json>",
		Short: "Compare two style documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.diff")

			text, err := app.Editor.Diff(args[0], args[1], editor.DiffFormat(opts.format))
			if err != nil {
				logger.Error(ctx, "diff failed", "error", err)
				return newCommandError("compare styles", strings.Join(args, " and "), err, "Both files must be valid style documents; --format is unified or merge-patch.")
			}
			if text == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No differences")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", string(editor.DiffUnified), "Output format: unified or merge-patch")

	return cmd
}
