package bootstrap

import (
	"strings"

	"github.com/linmemparser/linmemparser/internal/offsets"
	"github.com/linmemparser/linmemparser/internal/reader"
	"github.com/linmemparser/linmemparser/internal/translate"
)

// nonZeroWordCount reports how many 8-byte little-endian words in b are
// non-zero. Used by Stage A's "at least 3 of the first 10 words are
// non-zero" zero-page rejection.
func nonZeroWordCount(b []byte) int {
	n := 0
	for off := 0; off+8 <= len(b); off += 8 {
		nonZero := false
		for _, c := range b[off : off+8] {
			if c != 0 {
				nonZero = true
				break
			}
		}
		if nonZero {
			n++
		}
	}
	return n
}

func isPrintableASCII(c byte) bool {
	return c >= 0x20 && c < 0x7f
}

func isAlnumASCII(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func printableRatio(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if isPrintableASCII(s[i]) {
			n++
		}
	}
	return float64(n) / float64(len(s))
}

// validateInitTaskCandidate applies the four Stage A checks (spec.md
// §4.3) to the task structure believed to live at base.
func validateInitTaskCandidate(rd *reader.Reader, base int64, fo offsets.FieldOffsets) bool {
	if base < 0 {
		return false
	}
	first80, err := rd.ReadBytes(base, 80)
	if err != nil {
		return false
	}
	pid, err := rd.ReadI32(base + int64(fo.Pid))
	if err != nil || pid != 0 {
		return false
	}
	if nonZeroWordCount(first80) < 3 {
		return false
	}
	tasksNext, err := rd.ReadU64(base + int64(fo.Tasks))
	if err != nil || !translate.IsCanonicalKernelPointer(tasksNext) {
		return false
	}
	comm, err := rd.ReadFixedString(base+int64(fo.Comm), 16)
	if err != nil {
		return false
	}
	return strings.HasPrefix(comm, "swapper")
}
