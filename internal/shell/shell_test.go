package shell

import (
	"bytes"
	"testing"

	"github.com/linmemparser/linmemparser/internal/walker"
	"github.com/stretchr/testify/require"
)

func sampleProcs() []walker.Process {
	return []walker.Process{
		{Pid: 1, PPid: 0, Comm: "systemd", State: "Running"},
		{Pid: 200, PPid: 1, Comm: "sshd", State: "Sleeping", Cmdline: "/usr/sbin/sshd"},
		{Pid: 50, PPid: 1, Comm: "cron", State: "Sleeping"},
	}
}

func TestCmdListSortsByPid(t *testing.T) {
	var buf bytes.Buffer
	cmdList(&buf, sampleProcs())
	out := buf.String()
	require.True(t, indexOf(out, "systemd") < indexOf(out, "cron"))
	require.True(t, indexOf(out, "cron") < indexOf(out, "sshd"))
}

func TestCmdShowFound(t *testing.T) {
	var buf bytes.Buffer
	cmdShow(&buf, sampleProcs(), []string{"200"})
	out := buf.String()
	require.Contains(t, out, "sshd")
	require.Contains(t, out, "/usr/sbin/sshd")
}

func TestCmdShowNotFound(t *testing.T) {
	var buf bytes.Buffer
	cmdShow(&buf, sampleProcs(), []string{"9999"})
	require.Contains(t, buf.String(), "no process with pid 9999")
}

func TestCmdShowBadArgs(t *testing.T) {
	var buf bytes.Buffer
	cmdShow(&buf, sampleProcs(), nil)
	require.Contains(t, buf.String(), "usage: show <pid>")
}

func TestCmdFindMatches(t *testing.T) {
	var buf bytes.Buffer
	cmdFind(&buf, sampleProcs(), []string{"ssh"})
	require.Contains(t, buf.String(), "sshd")
	require.NotContains(t, buf.String(), "cron")
}

func TestCmdFindNoMatches(t *testing.T) {
	var buf bytes.Buffer
	cmdFind(&buf, sampleProcs(), []string{"zzz"})
	require.Contains(t, buf.String(), `no process matching "zzz"`)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
