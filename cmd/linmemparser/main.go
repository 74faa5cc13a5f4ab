// Command linmemparser reconstructs the process list of a Linux system
// from a raw physical memory capture, without the help of a running
// kernel. Run "linmemparser help" for the command list.
package main

import (
	"fmt"
	"os"
)

func main() {
	f := &flags{}
	root := newRootCmd(f)
	if err := root.Execute(); err != nil {
		if f.debug || envSet("LINMEMPARSER_DEBUG") {
			fmt.Fprintf(os.Stderr, "linmemparser: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "linmemparser: %v\n", err)
		}
		os.Exit(1)
	}
}
