package main

import "github.com/spf13/cobra"

func newPstreeCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "pstree <dump>",
		Short: "process list reparented into a forest by ppid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlugins(cmd, f, args[0], []string{"pstree"})
		},
	}
}
