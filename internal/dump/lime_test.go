package dump

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiMERoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		regions []Region
	}{
		{"single region", []Region{{StartPhys: 0, EndPhys: 0xFFFF, FileOffset: 32}}},
		{
			"two disjoint regions",
			[]Region{
				{StartPhys: 0, EndPhys: 0xFFFF, FileOffset: 32},
				{StartPhys: 0x100000, EndPhys: 0x10FFFF, FileOffset: 32 + 0x10000 + 32},
			},
		},
		{
			"three regions, gaps between",
			[]Region{
				{StartPhys: 0x1000, EndPhys: 0x1FFF, FileOffset: 32},
				{StartPhys: 0x100000, EndPhys: 0x100FFF, FileOffset: 32 + 0x1000 + 32},
				{StartPhys: 0x200000000, EndPhys: 0x200000FFF, FileOffset: 32 + 0x1000 + 32 + 0x1000 + 32},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// Recompute FileOffset sequentially as EncodeLiME/parseLiME
			// would lay them out, and generate deterministic payloads.
			payloads := make(map[uint64][]byte)
			rng := rand.New(rand.NewSource(1))
			regions := make([]Region, len(c.regions))
			off := 0
			for i, r := range c.regions {
				r.FileOffset = int64(off + limeHeaderSize)
				buf := make([]byte, r.Size())
				rng.Read(buf)
				payloads[r.StartPhys] = buf
				regions[i] = r
				off = int(r.FileOffset) + len(buf)
			}

			encoded := EncodeLiME(regions, func(r Region) []byte {
				return payloads[r.StartPhys]
			})

			got, err := parseLiME(encoded)
			require.NoError(t, err)
			require.Equal(t, regions, got)

			for _, r := range got {
				want := payloads[r.StartPhys]
				require.Equal(t, want, encoded[r.FileOffset:r.FileOffset+int64(r.Size())])
			}
		})
	}
}

func TestParseLiMENoHeader(t *testing.T) {
	buf := make([]byte, 64)
	regions, err := parseLiME(buf)
	require.NoError(t, err)
	require.Nil(t, regions)
}

func TestNewFromBytesRawFallback(t *testing.T) {
	buf := make([]byte, 4096)
	b, err := NewFromBytes(buf)
	require.NoError(t, err)
	require.Len(t, b.Regions(), 1)
	require.Equal(t, uint64(0), b.Regions()[0].StartPhys)
	require.Equal(t, uint64(4095), b.Regions()[0].EndPhys)
	require.Equal(t, int64(0), b.Regions()[0].FileOffset)
}

func TestRegionContainsAndOffset(t *testing.T) {
	r := Region{StartPhys: 0x1000, EndPhys: 0x1FFF, FileOffset: 64}
	require.True(t, r.Contains(0x1000))
	require.True(t, r.Contains(0x1FFF))
	require.False(t, r.Contains(0x0FFF))
	require.False(t, r.Contains(0x2000))
	require.Equal(t, int64(64), r.Offset(0x1000))
	require.Equal(t, int64(64+0xFF), r.Offset(0x10FF))
}
