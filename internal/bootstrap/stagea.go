package bootstrap

import (
	"bytes"

	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/linmemparser/linmemparser/internal/offsets"
	"github.com/linmemparser/linmemparser/internal/reader"
	"github.com/linmemparser/linmemparser/internal/symbols"
	"github.com/linmemparser/linmemparser/internal/translate"
)

const oneMiB = 1 << 20

// kaslrShiftOrder returns the signed 1-MiB shift candidates to try,
// nearest-to-zero first: 0, +1, -1, +2, -2, ..., +512, -512. Trying the
// no-shift case first means an un-KASLR'd (or statically linked) kernel
// is found on the very first attempt.
func kaslrShiftOrder() []int {
	out := make([]int, 0, 1025)
	out = append(out, 0)
	for k := 1; k <= 512; k++ {
		out = append(out, k, -k)
	}
	return out
}

// shiftedVA applies a signed 1-MiB KASLR shift to a kernel virtual
// address without wrapping unexpectedly: shift is small (<= 512 MiB)
// relative to the address space, so plain uint64 arithmetic suffices.
func shiftedVA(va uint64, shiftMiB int) uint64 {
	if shiftMiB >= 0 {
		return va + uint64(shiftMiB)*oneMiB
	}
	return va - uint64(-shiftMiB)*oneMiB
}

// StageA locates the byte offset of init_task in the dump. It returns
// the offset, the KASLR shift that was needed to find it (0 if the
// anchor was found via the raw byte-string fallback scan, since no
// virtual address was available to measure a shift against), and a
// fatal error if no candidate could be validated.
func StageA(rd *reader.Reader, tr *translate.Translator, cat *symbols.Catalogue, fo offsets.FieldOffsets) (anchorOffset int64, kaslrShift int, err error) {
	if initVA, ok := cat.Addr("init_task"); ok {
		for _, k := range kaslrShiftOrder() {
			v := shiftedVA(initVA, k)
			off, ok := tr.Translate(v)
			if !ok {
				continue
			}
			if validateInitTaskCandidate(rd, off, fo) {
				return off, k, nil
			}
		}
	}

	// Fallback: scan the whole dump for the "swapper" byte string and
	// treat each match as a candidate comm field.
	data := rd.Raw()
	needle := []byte("swapper")
	searchFrom := 0
	for {
		i := bytes.Index(data[searchFrom:], needle)
		if i < 0 {
			break
		}
		matchOffset := int64(searchFrom + i)
		candidateBase := matchOffset - int64(fo.Comm)
		if candidateBase >= 0 && validateInitTaskCandidate(rd, candidateBase, fo) {
			return candidateBase, 0, nil
		}
		searchFrom += i + 1
		if searchFrom >= len(data) {
			break
		}
	}

	return 0, 0, errs.New(errs.InvalidStructure, "stage A: could not locate init_task in dump (no KASLR shift validated, and no byte-scan candidate survived validation)")
}
