package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// writeTable renders rows as an aligned column table, grounded on
// cmd/viewcore/main.go's tabwriter usage for its "overview"/"mappings"
// commands. A non-zero Depth indents the comm column, giving pstree a
// readable flat-tool rendering without a second table layout.
func writeTable(w io.Writer, rows []Row) error {
	t := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(t, "PID\tPPID\tUSER\tSTATE\tSTART\tCOMM\tCMDLINE\n")
	for _, r := range rows {
		comm := r.Comm
		if r.Depth > 0 {
			comm = strings.Repeat("  ", r.Depth) + comm
		}
		fmt.Fprintf(t, "%d\t%d\t%d:%d\t%s\t%d\t%s\t%s\n",
			r.Pid, r.PPid, r.UID, r.GID, r.State, r.StartTime, comm, r.Cmdline)
	}
	return t.Flush()
}
