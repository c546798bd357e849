package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type patchOptions struct {
	output string
}

func newPatchCmd(app *AppContext) *cobra.Command {
	opts := &patchOptions{}

	cmd := &cobra.Command{
		Use:   "patch <style.json> <patch.json>",
		Short: "Apply a JSON merge patch to a style document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.patch")

			patch, err := os.ReadFile(args[1])
			if err != nil {
				return newCommandError("patch style", "reading "+args[1], err, "Check the patch file path.")
			}
			if err := app.Editor.Patch(ctx, args[0], patch, opts.output); err != nil {
				logger.Error(ctx, "patch failed", "error", err)
				return newCommandError("patch style", args[0], err, "Produce the patch with 'towerstyle diff --format merge-patch'.")
			}

			target := opts.output
			if target == "" {
				target = args[0]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Patched %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the result here instead of overwriting the input")

	return cmd
}
