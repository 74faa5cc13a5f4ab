package output

import (
	"github.com/linmemparser/linmemparser/internal/plugins"
	"github.com/linmemparser/linmemparser/internal/walker"
)

// Row is the flat, serializable shape every format encodes, shared by
// the pslist and (flattened) pstree plugins.
type Row struct {
	Pid       int32  `json:"pid"`
	PPid      int32  `json:"ppid"`
	Comm      string `json:"comm"`
	StartTime uint64 `json:"start_time"`
	UID       uint32 `json:"uid"`
	GID       uint32 `json:"gid"`
	State     string `json:"state"`
	Cmdline   string `json:"cmdline"`
	Depth     int    `json:"depth,omitempty"`
}

func rowFromProcess(p walker.Process, depth int) Row {
	return Row{
		Pid: p.Pid, PPid: p.PPid, Comm: p.Comm, StartTime: p.StartTime,
		UID: p.UID, GID: p.GID, State: p.State, Cmdline: p.Cmdline, Depth: depth,
	}
}

// rowsFromProcesses flattens a pslist result with depth 0 throughout.
func rowsFromProcesses(procs []walker.Process) []Row {
	rows := make([]Row, len(procs))
	for i, p := range procs {
		rows[i] = rowFromProcess(p, 0)
	}
	return rows
}

// rowsFromForest flattens a pstree result in depth-first, parent-before-
// children order, recording each node's depth.
func rowsFromForest(forest []*plugins.TreeNode) []Row {
	var rows []Row
	var walk func(nodes []*plugins.TreeNode, depth int)
	walk = func(nodes []*plugins.TreeNode, depth int) {
		for _, n := range nodes {
			rows = append(rows, rowFromProcess(n.Process, depth))
			walk(n.Children, depth+1)
		}
	}
	walk(forest, 0)
	return rows
}
