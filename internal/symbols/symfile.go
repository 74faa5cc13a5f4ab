package symbols

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/linmemparser/linmemparser/internal/errs"
)

// LoadSymbolFile reads a plain nm-style symbol listing, one record per
// line: "<hex-address> <one-letter-type> <name>". Addresses of zero and
// lines that don't match the three-token shape are silently ignored, per
// spec §6 — a symbol listing is noisy by nature (object files, local
// labels) and most of that noise is irrelevant to us.
func LoadSymbolFile(r io.Reader, c *Catalogue) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		addr, err := strconv.ParseUint(fields[0], 16, 64)
		if err != nil {
			continue
		}
		if addr == 0 {
			continue
		}
		name := fields[2]
		c.PutAddr(name, addr)
	}
	if err := sc.Err(); err != nil {
		return errs.Wrap(errs.IO, err, "reading symbol file")
	}
	return nil
}
