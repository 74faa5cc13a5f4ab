// Package translate implements the address translator (C3): converting
// 64-bit little-endian x86 kernel virtual addresses into dump-buffer
// byte offsets, via a physical load base and a direct-map base that are
// both mutable until the boot-strap pipeline freezes them.
package translate

import (
	"sort"

	"github.com/linmemparser/linmemparser/internal/dump"
)

const (
	// KernelTextMin/KernelTextMax bound the kernel text / fixed mapping
	// window on 64-bit little-endian x86.
	KernelTextMin uint64 = 0xffff_ffff_8000_0000
	KernelTextMax uint64 = 0xffff_ffff_ff00_0000 // exclusive

	// directMapSpan is the size of each direct-map window: 64 TiB.
	directMapSpan uint64 = 64 << 40

	// DefaultPhysBase is the kernel text's default physical load address.
	DefaultPhysBase uint64 = 0x0100_0000
	// DefaultPageOffset4Level is the direct-map base under 4-level paging.
	DefaultPageOffset4Level uint64 = 0xffff_8800_0000_0000
	// DefaultPageOffset5Level is the direct-map base under 5-level paging.
	DefaultPageOffset5Level uint64 = 0xffff_8880_0000_0000

	// DirectMapCanonicalMin/Max bound the canonical window any direct-map
	// pointer must fall in, used by bootstrap Stage C.
	DirectMapCanonicalMin uint64 = 0xffff_0000_0000_0000
	DirectMapCanonicalMax uint64 = 0xffff_ffff_0000_0000 // exclusive

	// CanonicalKernelMin/Max bound any canonical kernel pointer (used by
	// Stage A's tasks-field sanity check).
	CanonicalKernelMin uint64 = 0xffff_8000_0000_0000
	CanonicalKernelMax uint64 = 0xffff_ffff_fff0_0000 // exclusive
)

// Translator holds the region list and the three tunable scalars.
// Mutation of the scalars is only legitimate during bootstrap; after
// Stage D (see internal/bootstrap) they are treated as frozen by
// convention, the same way spec.md §5 describes.
type Translator struct {
	regions         []dump.Region // sorted by StartPhys
	physBase        uint64
	pageOffset4     uint64
	pageOffset5     uint64
}

// New builds a Translator over regions with the spec-mandated defaults.
func New(regions []dump.Region) *Translator {
	sorted := make([]dump.Region, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartPhys < sorted[j].StartPhys })
	return &Translator{
		regions:     sorted,
		physBase:    DefaultPhysBase,
		pageOffset4: DefaultPageOffset4Level,
		pageOffset5: DefaultPageOffset5Level,
	}
}

// PhysBase returns the current physical load base.
func (t *Translator) PhysBase() uint64 { return t.physBase }

// SetPhysBase sets the physical load base. Legal only during bootstrap.
func (t *Translator) SetPhysBase(v uint64) { t.physBase = v }

// PageOffset4Level returns the current 4-level-paging direct-map base.
func (t *Translator) PageOffset4Level() uint64 { return t.pageOffset4 }

// SetPageOffset4Level sets the 4-level-paging direct-map base.
func (t *Translator) SetPageOffset4Level(v uint64) { t.pageOffset4 = v }

// PageOffset5Level returns the current 5-level-paging direct-map base.
func (t *Translator) PageOffset5Level() uint64 { return t.pageOffset5 }

// SetPageOffset5Level sets the 5-level-paging direct-map base.
func (t *Translator) SetPageOffset5Level(v uint64) { t.pageOffset5 = v }

// Regions returns the translator's region list, sorted by physical
// start address.
func (t *Translator) Regions() []dump.Region {
	return t.regions
}

// PhysToFile maps a physical address to a dump buffer byte offset via
// the unique region whose closed interval contains it. Absence of a
// containing region is reported, not panicked on — spec.md §4.1 requires
// this translation to be a silent, normal partial function.
func (t *Translator) PhysToFile(p uint64) (int64, bool) {
	// Regions are few (a handful of LiME segments); linear scan is
	// simpler than a radix tree and plenty fast at this scale.
	for _, r := range t.regions {
		if r.Contains(p) {
			return r.Offset(p), true
		}
	}
	return 0, false
}

// VirtToPhys applies the two recognized kernel mappings (text/fixed and
// direct map, 5-level tried before 4-level) to a kernel virtual address.
func (t *Translator) VirtToPhys(v uint64) (uint64, bool) {
	if v >= KernelTextMin && v < KernelTextMax {
		return t.physBase + (v - KernelTextMin), true
	}
	if t.pageOffset5 != 0 && v >= t.pageOffset5 && v-t.pageOffset5 < directMapSpan {
		return v - t.pageOffset5, true
	}
	if t.pageOffset4 != 0 && v >= t.pageOffset4 && v-t.pageOffset4 < directMapSpan {
		return v - t.pageOffset4, true
	}
	return 0, false
}

// Translate composes VirtToPhys and PhysToFile: a kernel virtual address
// in, a dump buffer byte offset out.
func (t *Translator) Translate(v uint64) (int64, bool) {
	p, ok := t.VirtToPhys(v)
	if !ok {
		return 0, false
	}
	return t.PhysToFile(p)
}

// RegionContainingPhys returns the region containing p, if any. Used by
// bootstrap Stage C, which needs the region itself (not just the
// translated offset) to place each candidate next task in the dump.
func (t *Translator) RegionContainingPhys(p uint64) (dump.Region, bool) {
	for _, r := range t.regions {
		if r.Contains(p) {
			return r, true
		}
	}
	return dump.Region{}, false
}

// RegionContainingFileOffset returns the region whose backing byte range
// contains the dump buffer offset off, if any.
func (t *Translator) RegionContainingFileOffset(off int64) (dump.Region, bool) {
	for _, r := range t.regions {
		size := int64(r.Size())
		if off >= r.FileOffset && off < r.FileOffset+size {
			return r, true
		}
	}
	return dump.Region{}, false
}

// IsCanonicalKernelPointer reports whether v falls in the canonical
// kernel pointer window and is not one of the list-sentinel values
// (-1, -2 as 64-bit two's complement).
func IsCanonicalKernelPointer(v uint64) bool {
	if v < CanonicalKernelMin || v >= CanonicalKernelMax {
		return false
	}
	if v == ^uint64(0) || v == ^uint64(0)-1 {
		return false
	}
	return true
}

// IsDirectMapCanonical reports whether v falls in the canonical
// direct-map pointer window used by bootstrap Stage C.
func IsDirectMapCanonical(v uint64) bool {
	return v >= DirectMapCanonicalMin && v < DirectMapCanonicalMax
}
