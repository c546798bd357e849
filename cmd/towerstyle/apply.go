package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/towerstyle/internal/app/editor"
	"github.com/alexisbeaulieu97/towerstyle/internal/command"
	"github.com/alexisbeaulieu97/towerstyle/internal/ports"
)

type applyOptions struct {
	output   string
	dryRun   bool
	showDiff bool
}

func newApplyCmd(app *AppContext) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <style.json> <script.yaml>",
		Short: "Run an edit script against a style document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.apply")

			outcome, err := app.Editor.Apply(ctx, editor.ApplyRequest{
				DocumentPath: args[0],
				ScriptPath:   args[1],
				OutputPath:   opts.output,
				DryRun:       opts.dryRun,
				Adapter:      loggingAdapter{ctx: ctx, logger: logger},
			})
			if err != nil {
				logger.Error(ctx, "apply failed", "error", err)
				return newCommandError("apply script", args[1], err, "Fix the reported operation and run the script again.")
			}

			out := cmd.OutOrStdout()
			switch {
			case !outcome.Changed:
				fmt.Fprintf(out, "%d commands, no changes\n", outcome.Commands)
			case outcome.Saved:
				fmt.Fprintf(out, "%d commands applied, saved %s\n", outcome.Commands, outcome.OutputPath)
			default:
				fmt.Fprintf(out, "%d commands applied (dry run, nothing written)\n", outcome.Commands)
			}
			if opts.showDiff || opts.dryRun {
				fmt.Fprint(out, outcome.Diff)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the result here instead of overwriting the input")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Preview changes without writing")
	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "Print a unified diff of the changes")

	return cmd
}

// loggingAdapter stands in for a live game connection and records the
// actions scripts send to it.
type loggingAdapter struct {
	ctx    context.Context
	logger ports.Logger
}

func (a loggingAdapter) Dispatch(action command.AdapterAction) {
	a.logger.Info(a.ctx, "adapter action", "action", action.Name, "args", action.Args)
}
