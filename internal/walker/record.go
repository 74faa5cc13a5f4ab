// Package walker implements the process walker (C8): the container_of
// traversal of the kernel's circular task list, and extraction of one
// process record per task_struct (spec.md §4.4, §4.5).
package walker

import "fmt"

// Process is one task_struct's worth of identifying information. It is
// created once by a walk, never mutated afterward.
type Process struct {
	Offset    int64 // dump-relative byte offset of the task_struct
	Pid       int32
	PPid      int32
	Comm      string
	StartTime uint64
	UID       uint32
	GID       uint32
	State     string
	Cmdline   string
}

// mapState implements spec.md §4.5's state enumeration.
func mapState(raw int32) string {
	switch raw {
	case 0:
		return "Running"
	case 1:
		return "Sleeping"
	case 2:
		return "Stopped"
	case 3:
		return "Zombie"
	case 4:
		return "Tracing-Stop"
	default:
		return fmt.Sprintf("Unknown(%d)", raw)
	}
}
