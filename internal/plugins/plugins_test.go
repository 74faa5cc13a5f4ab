package plugins

import (
	"testing"

	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/linmemparser/linmemparser/internal/walker"
	"github.com/stretchr/testify/require"
)

func sampleProcs() []walker.Process {
	return []walker.Process{
		{Pid: 0, PPid: 0, Comm: "swapper"},
		{Pid: 1, PPid: 0, Comm: "systemd"},
		{Pid: 100, PPid: 1, Comm: "sshd"},
		{Pid: 200, PPid: 100, Comm: "bash"},
		{Pid: 50, PPid: 1, Comm: "cron"},
	}
}

func TestPSListSortsByPid(t *testing.T) {
	procs := sampleProcs()
	out := PSList(procs)
	require.Len(t, out, 5)
	for i := 1; i < len(out); i++ {
		require.Less(t, out[i-1].Pid, out[i].Pid)
	}
}

func TestPSTreeBuildsForest(t *testing.T) {
	procs := sampleProcs()
	forest := PSTree(procs)
	require.Len(t, forest, 1) // only pid 0 is rootless
	require.Equal(t, int32(0), forest[0].Process.Pid)
	require.Len(t, forest[0].Children, 1) // systemd
	systemd := forest[0].Children[0]
	require.Equal(t, int32(1), systemd.Process.Pid)
	require.Len(t, systemd.Children, 2) // sshd, cron

	var childPids []int32
	for _, c := range systemd.Children {
		childPids = append(childPids, c.Process.Pid)
	}
	require.Equal(t, []int32{50, 100}, childPids)

	sshd := systemd.Children[1]
	require.Len(t, sshd.Children, 1)
	require.Equal(t, int32(200), sshd.Children[0].Process.Pid)
}

func TestPSTreeOrphanBecomesRoot(t *testing.T) {
	procs := []walker.Process{
		{Pid: 5, PPid: 9999, Comm: "orphan"},
	}
	forest := PSTree(procs)
	require.Len(t, forest, 1)
	require.Equal(t, int32(5), forest[0].Process.Pid)
}

func TestRegistryListAndImplementedNames(t *testing.T) {
	reg := NewRegistry()
	names := reg.ImplementedNames()
	require.Equal(t, []string{"pslist", "pstree"}, names)

	all := reg.List()
	require.Len(t, all, 5)
	for _, p := range all {
		if p.Name == "netstat" || p.Name == "modules" || p.Name == "files" {
			require.False(t, p.Implemented)
		}
	}
}

func TestRegistryStubPluginReturnsError(t *testing.T) {
	reg := NewRegistry()
	p, ok := reg.Get("netstat")
	require.True(t, ok)
	_, err := p.Run(nil)
	require.Error(t, err)
	kind, ok := errs.KindOf(err)
	require.True(t, ok)
	require.Equal(t, errs.PluginError, kind)
}

func TestRegistryGetMissing(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Get("does-not-exist")
	require.False(t, ok)
}
