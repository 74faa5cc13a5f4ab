package walker

import (
	"strings"

	"github.com/linmemparser/linmemparser/internal/offsets"
	"github.com/linmemparser/linmemparser/internal/reader"
)

const maxCmdlineSpan = 4096

// extractRecord implements spec.md §4.5: read every field of the
// task_struct at base, dereferencing parent/cred/mm as needed, degrading
// to placeholders on failure rather than aborting the walk.
func extractRecord(rd *reader.Reader, base int64, fo offsets.FieldOffsets) (Process, error) {
	pid, err := rd.ReadI32(base + int64(fo.Pid))
	if err != nil {
		return Process{}, err
	}
	comm, err := rd.ReadFixedString(base+int64(fo.Comm), 16)
	if err != nil {
		return Process{}, err
	}
	startTime, err := rd.ReadU64(base + int64(fo.StartTime))
	if err != nil {
		return Process{}, err
	}
	stateRaw, err := rd.ReadI32(base + int64(fo.State))
	if err != nil {
		return Process{}, err
	}

	ppid := readPPid(rd, base, fo)
	uid, gid := readCred(rd, base, fo)

	return Process{
		Offset:    base,
		Pid:       pid,
		PPid:      ppid,
		Comm:      comm,
		StartTime: startTime,
		UID:       uid,
		GID:       gid,
		State:     mapState(stateRaw),
		Cmdline:   readCmdline(rd, base, fo),
	}, nil
}

// readPPid dereferences task_struct.parent and re-reads its pid. A zero
// pointer or failed translation yields ppid=0 — degraded, not fatal
// (spec.md §4.5, §4.7).
func readPPid(rd *reader.Reader, base int64, fo offsets.FieldOffsets) int32 {
	_, parentOff, ok := rd.ReadPtr(base + int64(fo.Parent))
	if !ok {
		return 0
	}
	ppid, err := rd.ReadI32(parentOff + int64(fo.Pid))
	if err != nil {
		return 0
	}
	return ppid
}

// readCred dereferences task_struct.cred and reads the fixed uid/gid
// offsets within the cred structure. Failure yields (0, 0).
func readCred(rd *reader.Reader, base int64, fo offsets.FieldOffsets) (uint32, uint32) {
	_, credOff, ok := rd.ReadPtr(base + int64(fo.Cred))
	if !ok {
		return 0, 0
	}
	uid, err := rd.ReadU32(credOff + int64(offsets.CredUIDOffset))
	if err != nil {
		return 0, 0
	}
	gid, err := rd.ReadU32(credOff + int64(offsets.CredGIDOffset))
	if err != nil {
		return 0, 0
	}
	return uid, gid
}

// readCmdline implements spec.md §4.5's command-line extraction,
// returning one of the five distinguishing placeholders on failure.
func readCmdline(rd *reader.Reader, base int64, fo offsets.FieldOffsets) string {
	_, mmOff, ok := rd.ReadPtr(base + int64(fo.Mm))
	if !ok {
		return "[kernel thread]"
	}

	argStart, err := rd.ReadU64(mmOff + int64(fo.ArgStart))
	if err != nil {
		return "[mm_struct not in memory]"
	}
	argEnd, err := rd.ReadU64(mmOff + int64(fo.ArgEnd))
	if err != nil {
		return "[mm_struct not in memory]"
	}

	if argEnd <= argStart {
		return "[invalid cmdline length]"
	}
	span := argEnd - argStart
	if span > maxCmdlineSpan {
		return "[invalid cmdline length]"
	}

	_, argStartOff, ok := rd.ReadPtr(mmOff + int64(fo.ArgStart))
	if !ok {
		return "[cmdline not in memory]"
	}
	raw, err := rd.ReadBytes(argStartOff, int(span))
	if err != nil {
		return "[cmdline not in memory]"
	}

	for i, b := range raw {
		if b == 0 {
			raw[i] = ' '
		}
	}
	cmdline := strings.TrimSpace(string(raw))
	if cmdline == "" {
		return "[cmdline not available]"
	}
	return cmdline
}
