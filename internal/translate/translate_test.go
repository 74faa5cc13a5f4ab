package translate

import (
	"testing"

	"github.com/linmemparser/linmemparser/internal/dump"
	"github.com/stretchr/testify/require"
)

func testRegions() []dump.Region {
	return []dump.Region{
		{StartPhys: 0x1000000, EndPhys: 0x1FFFFFF, FileOffset: 32},
		{StartPhys: 0x2000000, EndPhys: 0x2FFFFFF, FileOffset: 32 + 0x1000000 + 32},
	}
}

func TestTranslationInversion(t *testing.T) {
	tr := New(testRegions())
	for _, r := range tr.Regions() {
		for _, p := range []uint64{r.StartPhys, r.EndPhys, r.StartPhys + r.Size()/2} {
			off, ok := tr.PhysToFile(p)
			require.True(t, ok)
			require.Equal(t, r.FileOffset+int64(p-r.StartPhys), off)
		}
	}
}

func TestTranslationMonotonicityKernelText(t *testing.T) {
	tr := New(testRegions())
	v1 := KernelTextMin + 0x100000
	v2 := KernelTextMin + 0x200000
	o1, ok1 := tr.Translate(v1)
	o2, ok2 := tr.Translate(v2)
	if ok1 && ok2 {
		require.Equal(t, int64(v2-v1), o2-o1)
	}
}

func TestTranslationMonotonicityDirectMap(t *testing.T) {
	tr := New(testRegions())
	tr.SetPageOffset4Level(DefaultPageOffset4Level)
	base := DefaultPageOffset4Level
	v1 := base + 0x1000100
	v2 := base + 0x1000200
	o1, ok1 := tr.Translate(v1)
	o2, ok2 := tr.Translate(v2)
	if ok1 && ok2 {
		require.Equal(t, int64(v2-v1), o2-o1)
	}
}

func TestVirtToPhysOutsideAnyWindow(t *testing.T) {
	tr := New(testRegions())
	_, ok := tr.VirtToPhys(0x0000_1234_5678)
	require.False(t, ok)
}

func TestPhysToFileNoRegion(t *testing.T) {
	tr := New(testRegions())
	_, ok := tr.PhysToFile(0x5000000)
	require.False(t, ok)
}

func TestKernelTextTranslation(t *testing.T) {
	tr := New(testRegions())
	tr.SetPhysBase(0x1000000)
	v := KernelTextMin + 0x500000
	off, ok := tr.Translate(v)
	require.True(t, ok)
	require.Equal(t, testRegions()[0].FileOffset+0x500000, off)
}

func TestDirectMapFiveLevelTriedFirst(t *testing.T) {
	regions := []dump.Region{{StartPhys: 0, EndPhys: 0xFFFFFF, FileOffset: 0}}
	tr := New(regions)
	tr.SetPageOffset5Level(0x1000)
	tr.SetPageOffset4Level(0x2000)
	// An address only valid under the 5-level window resolves through it.
	v := uint64(0x1000) + 0x42
	p, ok := tr.VirtToPhys(v)
	require.True(t, ok)
	require.Equal(t, uint64(0x42), p)

	// An address valid under both windows resolves through the 5-level
	// one, which is checked first.
	both := uint64(0x2000) + 0x42
	p, ok = tr.VirtToPhys(both)
	require.True(t, ok)
	require.Equal(t, uint64(0x1042), p)
}

func TestIsCanonicalKernelPointer(t *testing.T) {
	require.True(t, IsCanonicalKernelPointer(0xffff_8800_1234_5678))
	require.False(t, IsCanonicalKernelPointer(^uint64(0)))
	require.False(t, IsCanonicalKernelPointer(^uint64(0)-1))
	require.False(t, IsCanonicalKernelPointer(0x0000_1234_5678))
}
