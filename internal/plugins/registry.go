// Package plugins implements the plugin orchestrator (C9): a small
// registry of named analyses that each take a completed walk and
// produce a result, plus the list-plugins introspection the CLI exposes.
package plugins

import (
	"sort"

	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/linmemparser/linmemparser/internal/walker"
)

// Plugin is one named analysis over a process list.
type Plugin struct {
	Name        string
	Description string
	Implemented bool
	run         func([]walker.Process) (interface{}, error)
}

// Run executes the plugin, returning PluginError for a stub.
func (p Plugin) Run(procs []walker.Process) (interface{}, error) {
	if !p.Implemented {
		return nil, errs.Newf(errs.PluginError, "plugin %q is a stub in this build", p.Name)
	}
	return p.run(procs)
}

// Registry is the set of known plugins, keyed by name.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry builds the standard registry: pslist and pstree
// implemented, netstat/modules/files as stubs (spec.md §6).
func NewRegistry() *Registry {
	r := &Registry{plugins: make(map[string]Plugin)}
	r.register(Plugin{
		Name:        "pslist",
		Description: "flat process list, one row per task_struct",
		Implemented: true,
		run: func(procs []walker.Process) (interface{}, error) {
			return PSList(procs), nil
		},
	})
	r.register(Plugin{
		Name:        "pstree",
		Description: "process list reparented into a forest by ppid",
		Implemented: true,
		run: func(procs []walker.Process) (interface{}, error) {
			return PSTree(procs), nil
		},
	})
	r.register(Plugin{
		Name:        "netstat",
		Description: "open sockets per process (not yet implemented)",
	})
	r.register(Plugin{
		Name:        "modules",
		Description: "loaded kernel modules (not yet implemented)",
	})
	r.register(Plugin{
		Name:        "files",
		Description: "open file descriptors per process (not yet implemented)",
	})
	return r
}

func (r *Registry) register(p Plugin) {
	r.plugins[p.Name] = p
}

// Get looks up a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	p, ok := r.plugins[name]
	return p, ok
}

// List returns every registered plugin, sorted by name, for the
// list-plugins CLI mode (spec.md §4.9 / §6).
func (r *Registry) List() []Plugin {
	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ImplementedNames returns every plugin name considered part of "run all"
// (spec.md §6's bare `linmemparser <dump>` invocation): the implemented
// ones only, in a stable order.
func (r *Registry) ImplementedNames() []string {
	var out []string
	for _, p := range r.List() {
		if p.Implemented {
			out = append(out, p.Name)
		}
	}
	return out
}
