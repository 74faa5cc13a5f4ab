package main

import (
	"fmt"
	"io"

	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/linmemparser/linmemparser/internal/output"
	"github.com/linmemparser/linmemparser/internal/plugins"
	"github.com/linmemparser/linmemparser/internal/walker"
	"github.com/spf13/cobra"
)

// runPlugins opens dumpPath, walks it once, and runs each named plugin
// (every implemented plugin, in registry order, when names is nil — the
// bare "linmemparser <dump>" invocation). Results are written to the
// --output destination in --format, one "==> name" text header per
// plugin when more than one runs.
func runPlugins(cmd *cobra.Command, f *flags, dumpPath string, names []string) error {
	format, err := output.ParseFormat(f.format)
	if err != nil {
		return errs.Wrap(errs.ParseError, err, "invalid --format")
	}

	s, err := openSession(f, dumpPath)
	if err != nil {
		return err
	}
	defer s.Close()

	procs, err := s.walk()
	if err != nil {
		return err
	}

	reg := plugins.NewRegistry()
	if names == nil {
		names = reg.ImplementedNames()
	}

	out, closeOut, err := openOutput(f.output)
	if err != nil {
		return errs.Wrap(errs.IO, err, "opening output")
	}
	defer closeOut()

	for i, name := range names {
		p, ok := reg.Get(name)
		if !ok {
			return errs.Newf(errs.PluginError, "unknown plugin %q", name)
		}
		result, err := p.Run(procs)
		if err != nil {
			return err
		}
		if len(names) > 1 && format == output.Text {
			fmt.Fprintf(out, "==> %s\n", name)
		}
		if err := writeResult(out, format, result); err != nil {
			return errs.Wrap(errs.IO, err, "writing output")
		}
		if len(names) > 1 && format == output.Text && i < len(names)-1 {
			fmt.Fprintln(out)
		}
	}
	return nil
}

func writeResult(w io.Writer, format output.Format, result interface{}) error {
	switch v := result.(type) {
	case []walker.Process:
		return output.WriteProcesses(w, format, v)
	case []*plugins.TreeNode:
		return output.WriteTree(w, format, v)
	default:
		return fmt.Errorf("plugin returned unsupported result type %T", result)
	}
}
