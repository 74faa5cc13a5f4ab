package kernelver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		banner string
		want   Version
	}{
		{
			"Linux version 5.15.0-91-generic (buildd@host) (gcc)",
			Version{Major: 5, Minor: 15, Patch: 0, Extra: "91-generic"},
		},
		{
			"Linux version 6.1.55 (root@builder)",
			Version{Major: 6, Minor: 1, Patch: 55, Extra: ""},
		},
		{
			"Linux version 4.19.0-21-amd64 (debian-kernel@lists.debian.org)",
			Version{Major: 4, Minor: 19, Patch: 0, Extra: "21-amd64"},
		},
	}
	for _, c := range cases {
		buf := append([]byte("junkjunkjunk"), []byte(c.banner)...)
		got, err := Detect(buf)
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}
}

func TestDetectNoBanner(t *testing.T) {
	_, err := Detect([]byte("nothing interesting here"))
	require.Error(t, err)
}

func TestKey(t *testing.T) {
	v := Version{Major: 5, Minor: 15, Patch: 3}
	require.Equal(t, "5.15", v.Key())
}
