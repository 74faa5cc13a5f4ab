package shell

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/linmemparser/linmemparser/internal/walker"
)

func cmdList(out io.Writer, procs []walker.Process) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tPPID\tCOMM")
	for _, p := range sortedByPid(procs) {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", p.Pid, p.PPid, p.Comm)
	}
	tw.Flush()
}

func cmdShow(out io.Writer, procs []walker.Process, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: show <pid>")
		return
	}
	pid, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		fmt.Fprintf(out, "invalid pid %q\n", args[0])
		return
	}
	for _, p := range procs {
		if int64(p.Pid) == pid {
			printDetail(out, p)
			return
		}
	}
	fmt.Fprintf(out, "no process with pid %d\n", pid)
}

func cmdFind(out io.Writer, procs []walker.Process, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "usage: find <substring>")
		return
	}
	needle := strings.ToLower(args[0])
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tPPID\tCOMM")
	matched := 0
	for _, p := range sortedByPid(procs) {
		if strings.Contains(strings.ToLower(p.Comm), needle) {
			fmt.Fprintf(tw, "%d\t%d\t%s\n", p.Pid, p.PPid, p.Comm)
			matched++
		}
	}
	tw.Flush()
	if matched == 0 {
		fmt.Fprintf(out, "no process matching %q\n", args[0])
	}
}

func printDetail(out io.Writer, p walker.Process) {
	fmt.Fprintf(out, "pid:        %d\n", p.Pid)
	fmt.Fprintf(out, "ppid:       %d\n", p.PPid)
	fmt.Fprintf(out, "comm:       %s\n", p.Comm)
	fmt.Fprintf(out, "state:      %s\n", p.State)
	fmt.Fprintf(out, "uid:        %d\n", p.UID)
	fmt.Fprintf(out, "gid:        %d\n", p.GID)
	fmt.Fprintf(out, "start_time: %d\n", p.StartTime)
	fmt.Fprintf(out, "cmdline:    %s\n", p.Cmdline)
	fmt.Fprintf(out, "offset:     0x%x\n", p.Offset)
}

func sortedByPid(procs []walker.Process) []walker.Process {
	sorted := make([]walker.Process, len(procs))
	copy(sorted, procs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Pid < sorted[j].Pid })
	return sorted
}
