package plugins

import (
	"sort"

	"github.com/linmemparser/linmemparser/internal/walker"
)

// PSList is the flat process list plugin's result: the walker's output,
// sorted by pid for stable, human-readable output.
func PSList(procs []walker.Process) []walker.Process {
	out := make([]walker.Process, len(procs))
	copy(out, procs)
	sort.Slice(out, func(i, j int) bool { return out[i].Pid < out[j].Pid })
	return out
}
