package output

import (
	"fmt"
	"io"

	"github.com/linmemparser/linmemparser/internal/plugins"
	"github.com/linmemparser/linmemparser/internal/walker"
)

// WriteProcesses renders a flat process list (the pslist plugin's
// result) in the requested format.
func WriteProcesses(w io.Writer, format Format, procs []walker.Process) error {
	return write(w, format, rowsFromProcesses(procs))
}

// WriteTree renders a process forest (the pstree plugin's result),
// flattened to rows with a Depth field in every format but text, where
// Depth instead drives indentation of the comm column.
func WriteTree(w io.Writer, format Format, forest []*plugins.TreeNode) error {
	return write(w, format, rowsFromForest(forest))
}

func write(w io.Writer, format Format, rows []Row) error {
	switch format {
	case Text:
		return writeTable(w, rows)
	case CSV:
		return writeCSV(w, rows)
	case JSON:
		return writeJSON(w, rows)
	case JSONL:
		return writeJSONL(w, rows)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
