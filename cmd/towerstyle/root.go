package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	app := &AppContext{}

	cmd := &cobra.Command{
		Use:           "towerstyle",
		Short:         "towerstyle edits timing tower overlay styles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return app.load(cmd, flags)
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to editor configuration file")

	cmd.AddCommand(newNewCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newApplyCmd(app))
	cmd.AddCommand(newDiffCmd(app))
	cmd.AddCommand(newPatchCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
