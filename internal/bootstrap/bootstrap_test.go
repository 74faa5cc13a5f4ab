package bootstrap

import (
	"testing"

	"github.com/linmemparser/linmemparser/internal/dump"
	"github.com/linmemparser/linmemparser/internal/offsets"
	"github.com/linmemparser/linmemparser/internal/reader"
	"github.com/linmemparser/linmemparser/internal/symbols"
	"github.com/linmemparser/linmemparser/internal/translate"
	"github.com/stretchr/testify/require"
)

// smallFieldOffsets is a compact, test-only layout so synthetic task
// structures fit in a few dozen bytes instead of the real kernel's
// multi-kilobyte task_struct.
func smallFieldOffsets() offsets.FieldOffsets {
	return offsets.FieldOffsets{
		Pid: 0, Comm: 16, Tasks: 32, Parent: 40, StartTime: 48,
		Cred: 56, Mm: 64, State: 72, ArgStart: 0, ArgEnd: 0,
	}
}

func writeCanonicalPtr(buf []byte, off int, v uint64) {
	for i := 0; i < 8; i++ {
		buf[off+i] = byte(v >> (8 * i))
	}
}

func writeInitTaskTemplate(buf []byte, fo offsets.FieldOffsets, tasksNext uint64) {
	buf[fo.Pid+0] = 0
	buf[4] = 0xAA // non-pid word nonzero
	copy(buf[fo.Comm:], "swapper\x00")
	buf[fo.Comm+8] = 0x7f // keep the comm word nonzero
	writeCanonicalPtr(buf, int(fo.Tasks), tasksNext)
}

func TestStageAFindsNoShiftCandidate(t *testing.T) {
	fo := smallFieldOffsets()
	initVA := uint64(0xffff_ffff_8160_0000)
	smallPhys := uint64(0x3000)

	buf := make([]byte, 256)
	writeInitTaskTemplate(buf, fo, 0xffff_8880_0000_1000)

	region := dump.Region{StartPhys: smallPhys, EndPhys: smallPhys + 0xFFF, FileOffset: 0}
	tr := translate.New([]dump.Region{region})
	tr.SetPhysBase(smallPhys - (initVA - translate.KernelTextMin))

	cat := symbols.New()
	cat.PutAddr("init_task", initVA)

	rd := reader.New(buf, tr)
	anchor, shift, err := StageA(rd, tr, cat, fo)
	require.NoError(t, err)
	require.Equal(t, 0, shift)
	require.Equal(t, int64(0), anchor)
}

func TestStageAFindsKASLRShift(t *testing.T) {
	fo := smallFieldOffsets()
	initVA := uint64(0xffff_ffff_8160_0000)
	shift := 3
	realVA := shiftedVA(initVA, shift)
	smallPhys := uint64(0x3000)

	buf := make([]byte, 256)
	writeInitTaskTemplate(buf, fo, 0xffff_8880_0000_1000)

	region := dump.Region{StartPhys: smallPhys, EndPhys: smallPhys + 0xFFF, FileOffset: 0}
	tr := translate.New([]dump.Region{region})
	tr.SetPhysBase(smallPhys - (realVA - translate.KernelTextMin))

	cat := symbols.New()
	cat.PutAddr("init_task", initVA)

	rd := reader.New(buf, tr)
	anchor, gotShift, err := StageA(rd, tr, cat, fo)
	require.NoError(t, err)
	require.Equal(t, shift, gotShift)
	require.Equal(t, int64(0), anchor)
}

func TestStageAFallbackByteScan(t *testing.T) {
	fo := smallFieldOffsets()
	buf := make([]byte, 4096)
	base := 1000
	writeInitTaskTemplate(buf[base:], fo, 0xffff_8880_0000_1000)

	tr := translate.New(nil)
	cat := symbols.New() // no init_task symbol at all

	rd := reader.New(buf, tr)
	anchor, shift, err := StageA(rd, tr, cat, fo)
	require.NoError(t, err)
	require.Equal(t, 0, shift)
	require.Equal(t, int64(base), anchor)
}

func TestStageAFailsWhenNothingValidates(t *testing.T) {
	fo := smallFieldOffsets()
	buf := make([]byte, 256)
	tr := translate.New(nil)
	cat := symbols.New()
	rd := reader.New(buf, tr)
	_, _, err := StageA(rd, tr, cat, fo)
	require.Error(t, err)
}

func TestStageBDerivesFromRegionWhenCandidatesRejected(t *testing.T) {
	fo := smallFieldOffsets()
	initVA := uint64(0xffff_ffff_8160_0000)

	region := dump.Region{StartPhys: 0x4000000, EndPhys: 0x4000FFF, FileOffset: 0}
	tr := translate.New([]dump.Region{region})

	cat := symbols.New()
	cat.PutAddr("init_task", initVA)

	rd := reader.New(make([]byte, 256), tr)
	err := StageB(rd, tr, cat, fo, 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x4000000)-(initVA-translate.KernelTextMin), tr.PhysBase())
}

func TestStageBAcceptsLiteralCandidateWhenItMatches(t *testing.T) {
	fo := smallFieldOffsets()
	initVA := uint64(0xffff_ffff_8160_0000)
	smallPhys := translate.DefaultPhysBase + (initVA - translate.KernelTextMin)

	buf := make([]byte, 256)
	writeInitTaskTemplate(buf, fo, 0xffff_8880_0000_1000)

	region := dump.Region{StartPhys: smallPhys, EndPhys: smallPhys + 0xFFF, FileOffset: 0}
	tr := translate.New([]dump.Region{region})
	tr.SetPhysBase(0) // wrong on purpose; StageB must fix it

	cat := symbols.New()
	cat.PutAddr("init_task", initVA)

	rd := reader.New(buf, tr)
	err := StageB(rd, tr, cat, fo, 0, 0)
	require.NoError(t, err)
	require.Equal(t, translate.DefaultPhysBase, tr.PhysBase())
}

func TestStageCSkippedWhenNotDirectMapPointer(t *testing.T) {
	fo := smallFieldOffsets()
	buf := make([]byte, 256)
	writeCanonicalPtr(buf, int(fo.Tasks), 0xffff_ffff_8100_0000) // kernel-text window, not direct map

	tr := translate.New(nil)
	before4, before5 := tr.PageOffset4Level(), tr.PageOffset5Level()
	rd := reader.New(buf, tr)

	err := StageC(rd, tr, fo, 0)
	require.NoError(t, err)
	require.Equal(t, before4, tr.PageOffset4Level())
	require.Equal(t, before5, tr.PageOffset5Level())
}

func TestStageCResolvesDirectMapBase(t *testing.T) {
	fo := smallFieldOffsets()
	base := translate.DefaultPageOffset4Level
	nextTaskPhys := uint64(0x10000)
	tasksNext := base + nextTaskPhys + uint64(fo.Tasks)

	region := dump.Region{StartPhys: 0, EndPhys: 0xFFFFF, FileOffset: 0}
	tr := translate.New([]dump.Region{region})

	buf := make([]byte, 0x20000)
	anchorBase := 0
	writeCanonicalPtr(buf, anchorBase+int(fo.Tasks), tasksNext)

	// Next task, at physical nextTaskPhys (== file offset, FileOffset 0).
	nextBase := int(nextTaskPhys)
	buf[nextBase+int(fo.Pid)] = 1 // pid = 1
	copy(buf[nextBase+int(fo.Comm):], "systemd\x00")
	buf[nextBase+int(fo.State)] = 0 // state = 0, in range

	rd := reader.New(buf, tr)
	err := StageC(rd, tr, fo, int64(anchorBase))
	require.NoError(t, err)
	require.Equal(t, base, tr.PageOffset4Level())
}
