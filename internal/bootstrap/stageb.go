package bootstrap

import (
	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/linmemparser/linmemparser/internal/offsets"
	"github.com/linmemparser/linmemparser/internal/reader"
	"github.com/linmemparser/linmemparser/internal/symbols"
	"github.com/linmemparser/linmemparser/internal/translate"
)

const physBaseAcceptWindow = 4096

// physBaseCandidates builds the ordered candidate list of spec.md §4.3
// Stage B: the arithmetic solution from _text (if known), the literal
// default, zero, and a KASLR-adjusted variant.
func physBaseCandidates(cat *symbols.Catalogue, kaslrShift int) []uint64 {
	var out []uint64
	if textVA, ok := cat.Addr("_text"); ok {
		// Solve phys_base so that translate(_text's shifted VA) == 0x1000000.
		shifted := shiftedVA(textVA, kaslrShift)
		out = append(out, translate.DefaultPhysBase-(shifted-translate.KernelTextMin))
	}
	out = append(out, translate.DefaultPhysBase)
	out = append(out, 0)
	out = append(out, shiftedPhysBase(kaslrShift))
	return out
}

// shiftedPhysBase is the "KASLR-adjusted variant" candidate: the
// physical load address shifts by the same 1-MiB granularity as the
// virtual KASLR shift found in Stage A.
func shiftedPhysBase(kaslrShift int) uint64 {
	if kaslrShift >= 0 {
		return translate.DefaultPhysBase + uint64(kaslrShift)*oneMiB
	}
	return translate.DefaultPhysBase - uint64(-kaslrShift)*oneMiB
}

// StageB resolves phys_base and sets it on tr. anchorOffset/kaslrShift
// are Stage A's outputs.
func StageB(rd *reader.Reader, tr *translate.Translator, cat *symbols.Catalogue, fo offsets.FieldOffsets, anchorOffset int64, kaslrShift int) error {
	initVA, haveVA := cat.Addr("init_task")

	if haveVA {
		target := shiftedVA(initVA, kaslrShift)
		for _, candidate := range physBaseCandidates(cat, kaslrShift) {
			tr.SetPhysBase(candidate)
			off, ok := tr.Translate(target)
			if !ok {
				continue
			}
			if abs64(off-anchorOffset) > physBaseAcceptWindow {
				continue
			}
			pid, err := rd.ReadI32(off + int64(fo.Pid))
			if err != nil || pid != 0 {
				continue
			}
			tr.SetPhysBase(candidate)
			return nil
		}

		// None of the precomputed candidates qualified: derive phys_base
		// arithmetically from the region that physically contains the
		// already-located init_task.
		region, ok := tr.RegionContainingFileOffset(anchorOffset)
		if !ok {
			return errs.Newf(errs.InvalidStructure, "stage B: no region contains init_task's byte offset 0x%x", anchorOffset)
		}
		physOfAnchor := region.StartPhys + uint64(anchorOffset-region.FileOffset)
		derived := physOfAnchor - (target - translate.KernelTextMin)
		tr.SetPhysBase(derived)
		return nil
	}

	// No init_task symbol at all (Stage A used the raw byte-scan
	// fallback): phys_base can't be derived via the kernel-text mapping
	// without a known virtual address. Leave the default in place; the
	// structures this tool walks are almost always reached via the
	// direct map (Stage C), not the kernel-text window.
	return nil
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
