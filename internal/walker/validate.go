package walker

// pidMaxLimit mirrors Linux's PID_MAX_LIMIT (spec.md §3).
const pidMaxLimit = 4_194_304

func isPrintableASCII(c byte) bool {
	return c >= 0x20 && c < 0x7f
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

// validateRecord applies spec.md §3's per-record invariants.
func validateRecord(p Process) bool {
	if p.Pid < 0 || int64(p.Pid) > pidMaxLimit {
		return false
	}
	if p.UID > 65535 || p.GID > 65535 {
		return false
	}
	if p.Pid == 0 {
		// The idle/swapper task: accepted unconditionally, since the
		// anchor it was read from already passed Stage A's non-zero
		// structure check.
		return true
	}
	threshold := 0.5
	if p.Pid < 300 {
		threshold = 0.3
	}
	if p.Comm == "" {
		return false
	}
	return printableRatio(p.Comm) >= threshold
}
