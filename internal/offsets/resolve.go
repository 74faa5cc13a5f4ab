package offsets

import (
	"github.com/linmemparser/linmemparser/internal/kernelver"
	"github.com/linmemparser/linmemparser/internal/symbols"
)

// FieldOffsets is the fully-resolved set of struct field offsets the
// walker needs, computed once per run by Resolve.
type FieldOffsets struct {
	Pid       uintptr
	Comm      uintptr
	Tasks     uintptr // task_struct.tasks (list_head), .next is the first 8 bytes
	Parent    uintptr
	StartTime uintptr
	Cred      uintptr
	Mm        uintptr
	State     uintptr
	ArgStart  uintptr // mm_struct.arg_start
	ArgEnd    uintptr // mm_struct.arg_end
}

// Resolver implements the three-tier precedence chain of spec.md §4.6:
// (1) the debug-info catalogue, (2) the per-kernel-version table keyed
// by detected major.minor (falling back to the "default" row for
// versions outside {4.19, 5.4, 5.15, 6.1}), (3) hard-coded fallback
// constants.
type Resolver struct {
	cat    *symbols.Catalogue
	verRow row
}

// NewResolver builds a Resolver for the given catalogue and detected
// kernel version. If detected is the zero Version (detection failed),
// the "default" row is used for tier 2.
func NewResolver(cat *symbols.Catalogue, detected kernelver.Version) *Resolver {
	r, ok := rowForVersionKey(detected.Key())
	if !ok {
		r = versionTable["default"]
	}
	return &Resolver{cat: cat, verRow: r}
}

// field resolves one struct field's offset through the three tiers.
func (r *Resolver) field(structName, fieldName string, verValue uintptr, verHas bool) uintptr {
	if r.cat != nil {
		if off, ok := r.cat.Offset(structName, fieldName); ok {
			return off
		}
	}
	if verHas {
		return verValue
	}
	return 0 // caller substitutes the hard-coded constant
}

// Resolve computes the full FieldOffsets set, including the "state"
// vs. "__state" alias rule: a lookup for "state" tries "__state" as an
// alternate spelling (the name the field was renamed to in kernel 5.14)
// before falling through to the version table / hard-coded tier.
func Resolve(cat *symbols.Catalogue, detected kernelver.Version) FieldOffsets {
	r := NewResolver(cat, detected)

	resolveWithCatalogueAlias := func(structName, primary, alias string, verValue uintptr, verHas bool, hardVal uintptr) uintptr {
		if r.cat != nil {
			if off, ok := r.cat.Offset(structName, primary); ok {
				return off
			}
			if off, ok := r.cat.Offset(structName, alias); ok {
				return off
			}
		}
		if verHas {
			return verValue
		}
		return hardVal
	}

	resolve := func(structName, fieldName string, verValue uintptr, verHas bool, hardVal uintptr) uintptr {
		if r.cat != nil {
			if off, ok := r.cat.Offset(structName, fieldName); ok {
				return off
			}
		}
		if verHas {
			return verValue
		}
		return hardVal
	}

	return FieldOffsets{
		Pid:       resolve("task_struct", "pid", r.verRow.pid, true, hardcoded.pid),
		Comm:      resolve("task_struct", "comm", r.verRow.comm, true, hardcoded.comm),
		Tasks:     resolve("task_struct", "tasks", r.verRow.tasks, true, hardcoded.tasks),
		Parent:    resolve("task_struct", "parent", r.verRow.parent, true, hardcoded.parent),
		StartTime: resolve("task_struct", "start_time", r.verRow.startTime, true, hardcoded.startTime),
		Cred:      resolve("task_struct", "cred", r.verRow.cred, true, hardcoded.cred),
		Mm:        resolve("task_struct", "mm", r.verRow.mm, true, hardcoded.mm),
		State:     resolveWithCatalogueAlias("task_struct", "state", "__state", r.verRow.state, true, hardcoded.state),
		ArgStart:  resolve("mm_struct", "arg_start", r.verRow.argStart, true, hardcoded.argStart),
		ArgEnd:    resolve("mm_struct", "arg_end", r.verRow.argEnd, true, hardcoded.argEnd),
	}
}
