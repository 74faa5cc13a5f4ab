package main

import (
	"fmt"

	"github.com/linmemparser/linmemparser/internal/plugins"
	"github.com/spf13/cobra"
)

func newListPluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-plugins",
		Short: "list every plugin and its implementation status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := plugins.NewRegistry()
			for _, p := range reg.List() {
				status := "stub"
				if p.Implemented {
					status = "implemented"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-12s %s\n", p.Name, status, p.Description)
			}
			return nil
		},
	}
}
