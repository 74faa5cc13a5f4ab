package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := newRootCmd(&flags{})
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"pslist", "pstree", "netstat", "modules", "files", "list-plugins", "shell"} {
		require.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestRootCmdDefaultFlags(t *testing.T) {
	f := &flags{}
	root := newRootCmd(f)
	require.NoError(t, root.ParseFlags(nil))
	require.Equal(t, "text", f.format)
	require.Equal(t, "-", f.output)
	require.False(t, f.debug)
	require.False(t, f.verbose)
}

func TestEnvSet(t *testing.T) {
	require.False(t, envSet("LINMEMPARSER_DOES_NOT_EXIST_XYZ"))
	t.Setenv("LINMEMPARSER_DEBUG", "1")
	require.True(t, envSet("LINMEMPARSER_DEBUG"))
}
