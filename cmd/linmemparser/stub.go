package main

import "github.com/spf13/cobra"

// newStubCmd builds a subcommand for a not-yet-implemented plugin
// (netstat, modules, files). It still runs the full boot-strap/walk so
// the PluginError surfaces exactly where a real implementation would
// fail, rather than being rejected at flag-parsing time.
func newStubCmd(f *flags, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <dump>",
		Short: short + " (not yet implemented)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlugins(cmd, f, args[0], []string{name})
		},
	}
}
