package main

import "github.com/spf13/cobra"

func newPslistCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "pslist <dump>",
		Short: "flat process list, one row per task_struct",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlugins(cmd, f, args[0], []string{"pslist"})
		},
	}
}
