package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// flags holds the persistent flag values shared by every subcommand.
type flags struct {
	symbols   string
	debugInfo string
	format    string
	output    string
	verbose   bool
	debug     bool
}

func newRootCmd(f *flags) *cobra.Command {
	root := &cobra.Command{
		Use:           "linmemparser <dump>",
		Short:         "reconstruct a Linux process list from a raw memory capture",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlugins(cmd, f, args[0], nil)
		},
	}

	root.PersistentFlags().StringVarP(&f.symbols, "symbols", "s", "", "path to a plain symbol-listing file")
	root.PersistentFlags().StringVarP(&f.debugInfo, "debug-info", "d", "", "path to a debug-info JSON file")
	root.PersistentFlags().StringVarP(&f.format, "format", "f", "text", "output format: text|csv|json|jsonl")
	root.PersistentFlags().StringVarP(&f.output, "output", "o", "-", `output path, "-" or omitted for stdout`)
	root.PersistentFlags().BoolVar(&f.verbose, "verbose", false, "enable warning-level tracing")
	root.PersistentFlags().BoolVar(&f.debug, "debug", false, "enable full boot-strap tracing")

	root.AddCommand(
		newPslistCmd(f),
		newPstreeCmd(f),
		newStubCmd(f, "netstat", "open sockets per process"),
		newStubCmd(f, "modules", "loaded kernel modules"),
		newStubCmd(f, "files", "open file descriptors per process"),
		newListPluginsCmd(),
		newShellCmd(f),
	)

	return root
}

// newLogger builds the shared logrus logger, with verbosity resolved
// from flags first and the LINMEMPARSER_DEBUG / LINMEMPARSER_VERBOSE
// environment variables as a boolean-by-presence fallback (spec §6).
func newLogger(f *flags) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	debug := f.debug || envSet("LINMEMPARSER_DEBUG")
	verbose := f.verbose || envSet("LINMEMPARSER_VERBOSE")

	switch {
	case debug:
		log.SetLevel(logrus.DebugLevel)
	case verbose:
		log.SetLevel(logrus.WarnLevel)
	default:
		log.SetLevel(logrus.ErrorLevel)
	}
	return log
}

func envSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	out, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output %q: %w", path, err)
	}
	return out, func() { out.Close() }, nil
}
