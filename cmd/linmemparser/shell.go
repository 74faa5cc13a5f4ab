package main

import (
	"github.com/linmemparser/linmemparser/internal/shell"
	"github.com/spf13/cobra"
)

func newShellCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell <dump>",
		Short: "interactive inspection REPL over an already-walked process list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(f, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			procs, err := s.walk()
			if err != nil {
				return err
			}
			return shell.Run(procs, cmd.OutOrStdout())
		},
	}
}
