package bootstrap

import (
	"sort"
	"strings"

	"github.com/linmemparser/linmemparser/internal/dump"
	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/linmemparser/linmemparser/internal/offsets"
	"github.com/linmemparser/linmemparser/internal/reader"
	"github.com/linmemparser/linmemparser/internal/translate"
)

const (
	gibi = 1 << 30
	mebi = 1 << 20

	pidScoreMax   = 1_000_000
	stateScoreMin = -1
	stateScoreMax = 1024

	derivationMinRegionSize  = mebi
	derivationBigRegionSize  = 512 * mebi
	derivationSmallStep      = 4 * 1024
	derivationBigStep        = 64 * 1024
	derivationMaxStepsPerReg = 50_000
)

// directMapCandidateBases builds the ordered candidate list spec.md §4.3
// Stage C enumerates: the two well-known bases first, then a 1-GiB-step
// sweep across the canonical window.
func directMapCandidateBases() []uint64 {
	out := []uint64{translate.DefaultPageOffset4Level, translate.DefaultPageOffset5Level}
	for b := uint64(0xffff_8000_0000_0000); b <= 0xffff_b000_0000_0000; b += gibi {
		out = append(out, b)
	}
	return out
}

type directMapCandidate struct {
	base         uint64
	nextTaskBase int64
	score        int
}

// StageC resolves the direct-map base(s) and sets them on tr. It is a
// no-op (not a failure) when tasks.next isn't a direct-map pointer at
// all, per spec.md §4.3.
func StageC(rd *reader.Reader, tr *translate.Translator, fo offsets.FieldOffsets, anchorOffset int64) error {
	tasksNext, err := rd.ReadU64(anchorOffset + int64(fo.Tasks))
	if err != nil {
		return errs.Wrap(errs.InvalidStructure, err, "stage C: reading init_task.tasks.next")
	}
	if !translate.IsDirectMapCanonical(tasksNext) {
		// The kernel keeps the list in the text mapping; nothing to do.
		return nil
	}

	var candidates []directMapCandidate
	for _, base := range directMapCandidateBases() {
		if base > tasksNext {
			continue
		}
		physNext := tasksNext - base
		region, ok := tr.RegionContainingPhys(physNext)
		if !ok {
			continue
		}
		nextFileOff := region.Offset(physNext)
		nextTaskBase := nextFileOff - int64(fo.Tasks)
		score, ok := scoreDirectMapCandidate(rd, nextTaskBase, fo)
		if !ok {
			continue
		}
		candidates = append(candidates, directMapCandidate{base: base, nextTaskBase: nextTaskBase, score: score})
	}

	if len(candidates) > 0 {
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
		assignDirectMapBase(tr, candidates[0].base)
		return nil
	}

	if base, ok := derivationScan(rd, tr, fo, tasksNext); ok {
		assignDirectMapBase(tr, base)
		return nil
	}

	return errs.New(errs.InvalidStructure, "stage C: no direct-map base candidate validated, and derivation scan found none")
}

// scoreDirectMapCandidate applies the hard constraints and scoring
// function of spec.md §4.3 Stage C to a candidate next-task.
func scoreDirectMapCandidate(rd *reader.Reader, base int64, fo offsets.FieldOffsets) (int, bool) {
	if base < 0 {
		return 0, false
	}
	pid, err := rd.ReadI32(base + int64(fo.Pid))
	if err != nil || pid <= 0 || pid >= pidScoreMax {
		return 0, false
	}
	state, err := rd.ReadI32(base + int64(fo.State))
	if err != nil || state < stateScoreMin || state > stateScoreMax {
		return 0, false
	}
	comm, err := rd.ReadFixedString(base+int64(fo.Comm), 16)
	if err != nil {
		return 0, false
	}

	score := 20 + 30
	alnum := 0
	for i := 0; i < len(comm); i++ {
		if isAlnumASCII(comm[i]) {
			alnum++
		}
	}
	score += 10*len(comm) + 5*alnum

	if next, err := rd.ReadU64(base + int64(fo.Tasks)); err == nil && translate.IsDirectMapCanonical(next) {
		score += 20
	}
	if strings.HasPrefix(comm, "systemd") || strings.HasPrefix(comm, "kthreadd") {
		score += 100
	}
	return score, true
}

// assignDirectMapBase records base as the 4-level or 5-level direct-map
// scalar, whichever of the two well-known bases it sits closer to.
func assignDirectMapBase(tr *translate.Translator, base uint64) {
	d4 := absU64(int64(base) - int64(translate.DefaultPageOffset4Level))
	d5 := absU64(int64(base) - int64(translate.DefaultPageOffset5Level))
	if d5 < d4 {
		tr.SetPageOffset5Level(base)
	} else {
		tr.SetPageOffset4Level(base)
	}
}

func absU64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// derivationScan is Stage C's last-resort fallback: step through each
// physical region at a coarse granularity, looking for a placement of
// tasks.next's target that yields a plausible-looking task.
func derivationScan(rd *reader.Reader, tr *translate.Translator, fo offsets.FieldOffsets, tasksNext uint64) (uint64, bool) {
	regions := append([]dump.Region(nil), tr.Regions()...)
	sort.Slice(regions, func(i, j int) bool { return regions[i].Size() < regions[j].Size() })

	for _, region := range regions {
		if region.Size() < derivationMinRegionSize {
			continue
		}
		step := uint64(derivationSmallStep)
		if region.Size() > derivationBigRegionSize {
			step = derivationBigStep
		}
		steps := 0
		for p := region.StartPhys; p <= region.EndPhys && steps < derivationMaxStepsPerReg; p += step {
			steps++
			if p > tasksNext {
				continue
			}
			candidateBase := tasksNext - p
			nextFileOff := region.Offset(p)
			nextTaskBase := nextFileOff - int64(fo.Tasks)
			if minimalValidate(rd, nextTaskBase, fo) {
				return candidateBase, true
			}
		}
	}
	return 0, false
}

// minimalValidate is the derivation scan's cheaper acceptance test:
// pid in (0, 10^6) and a command name with at least 2 printable-graphic
// bytes.
func minimalValidate(rd *reader.Reader, base int64, fo offsets.FieldOffsets) bool {
	if base < 0 {
		return false
	}
	pid, err := rd.ReadI32(base + int64(fo.Pid))
	if err != nil || pid <= 0 || pid >= pidScoreMax {
		return false
	}
	comm, err := rd.ReadFixedString(base+int64(fo.Comm), 16)
	if err != nil {
		return false
	}
	graphic := 0
	for i := 0; i < len(comm); i++ {
		if comm[i] > 0x20 && comm[i] < 0x7f {
			graphic++
		}
	}
	return graphic >= 2
}
