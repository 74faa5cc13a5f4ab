// Package kernelver detects the kernel build version embedded in a
// memory capture by scanning for the "Linux version " banner every
// Linux kernel links into its text section.
package kernelver

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/linmemparser/linmemparser/internal/errs"
)

// Version is the parsed (major, minor, patch, extra) tuple.
type Version struct {
	Major, Minor, Patch int
	Extra                string
}

// Key returns the "major.minor" string internal/offsets keys its
// per-version fallback table on.
func (v Version) Key() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

func (v Version) String() string {
	s := strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
	if v.Extra != "" {
		s += "-" + v.Extra
	}
	return s
}

const banner = "Linux version "

// versionPattern captures "major.minor.patch" followed by an optional
// "-extra" token, stopping at the first whitespace or '(' the banner's
// free-form build string introduces.
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(-[^\s(]+)?`)

// Detect scans buf for the first "Linux version " banner and parses the
// version tuple that follows it.
func Detect(buf []byte) (Version, error) {
	idx := bytes.Index(buf, []byte(banner))
	if idx < 0 {
		return Version{}, errs.New(errs.ParseError, "no \"Linux version \" banner found in dump")
	}
	rest := buf[idx+len(banner):]
	// Banners are short; a 256-byte window is ample and keeps the regex
	// from running over megabytes of unrelated memory.
	window := rest
	if len(window) > 256 {
		window = window[:256]
	}
	m := versionPattern.FindSubmatch(window)
	if m == nil {
		return Version{}, errs.New(errs.ParseError, "malformed version string after \"Linux version \" banner")
	}
	major, _ := strconv.Atoi(string(m[1]))
	minor, _ := strconv.Atoi(string(m[2]))
	patch, _ := strconv.Atoi(string(m[3]))
	extra := ""
	if len(m[4]) > 1 {
		extra = string(m[4][1:])
	}
	return Version{Major: major, Minor: minor, Patch: patch, Extra: extra}, nil
}
