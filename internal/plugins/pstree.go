package plugins

import (
	"sort"

	"github.com/linmemparser/linmemparser/internal/walker"
)

// TreeNode is one process in the pstree forest, with its direct
// children attached.
type TreeNode struct {
	Process  walker.Process
	Children []*TreeNode
}

// PSTree reparents the flat process list into a forest keyed by ppid
// (spec.md §4.8). A process whose ppid does not appear in the list, or
// equals its own pid (pid 0, the idle task, whose ppid is also 0),
// becomes a root.
func PSTree(procs []walker.Process) []*TreeNode {
	nodes := make(map[int32]*TreeNode, len(procs))
	for _, p := range procs {
		nodes[p.Pid] = &TreeNode{Process: p}
	}

	var roots []*TreeNode
	for _, p := range procs {
		node := nodes[p.Pid]
		parent, ok := nodes[p.PPid]
		if !ok || p.PPid == p.Pid {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortForest(roots)
	return roots
}

func sortForest(nodes []*TreeNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Process.Pid < nodes[j].Process.Pid })
	for _, n := range nodes {
		sortForest(n.Children)
	}
}
