// Package reader implements bounds-checked, endian-aware primitive reads
// over a dump buffer (C4), plus a pointer-reading helper that composes a
// 64-bit read with virtual-to-file translation.
package reader

import (
	"bytes"
	"encoding/binary"

	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/linmemparser/linmemparser/internal/translate"
)

// Reader performs pure, side-effect-free reads from a borrowed byte
// slice. The system is specified for little-endian hosts analysing
// little-endian dumps (spec.md §4.2), so all multi-byte reads use
// binary.LittleEndian explicitly.
type Reader struct {
	buf []byte
	tr  *translate.Translator // nil if pointer-reading isn't needed
}

// New wraps buf for bounds-checked reads. tr may be nil if the caller
// never calls ReadPtr.
func New(buf []byte, tr *translate.Translator) *Reader {
	return &Reader{buf: buf, tr: tr}
}

// Len returns the size of the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

func (r *Reader) bounds(off int64, n int) error {
	if off < 0 || n < 0 || off+int64(n) > int64(len(r.buf)) {
		return errs.Newf(errs.InvalidStructure, "read of %d bytes at offset %d out of bounds (buffer length %d)", n, off, len(r.buf))
	}
	return nil
}

// ReadU8 reads an unsigned 8-bit integer at off.
func (r *Reader) ReadU8(off int64) (uint8, error) {
	if err := r.bounds(off, 1); err != nil {
		return 0, err
	}
	return r.buf[off], nil
}

// ReadU16 reads a little-endian unsigned 16-bit integer at off.
func (r *Reader) ReadU16(off int64) (uint16, error) {
	if err := r.bounds(off, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.buf[off:]), nil
}

// ReadU32 reads a little-endian unsigned 32-bit integer at off.
func (r *Reader) ReadU32(off int64) (uint32, error) {
	if err := r.bounds(off, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[off:]), nil
}

// ReadI32 reads a little-endian signed 32-bit integer at off.
func (r *Reader) ReadI32(off int64) (int32, error) {
	v, err := r.ReadU32(off)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ReadU64 reads a little-endian unsigned 64-bit integer at off.
func (r *Reader) ReadU64(off int64) (uint64, error) {
	if err := r.bounds(off, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.buf[off:]), nil
}

// ReadI64 reads a little-endian signed 64-bit integer at off.
func (r *Reader) ReadI64(off int64) (int64, error) {
	v, err := r.ReadU64(off)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// ReadBytes reads n raw bytes at off.
func (r *Reader) ReadBytes(off int64, n int) ([]byte, error) {
	if err := r.bounds(off, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[off:off+int64(n)])
	return out, nil
}

// ReadFixedString reads an n-byte window at off and truncates it at the
// first NUL byte, if any.
func (r *Reader) ReadFixedString(off int64, n int) (string, error) {
	b, err := r.ReadBytes(off, n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}

// ReadCString scans for a NUL-terminated string starting at off, up to
// end-of-buffer. If no NUL is found, the scan runs to the end of the
// buffer (spec.md §4.2).
func (r *Reader) ReadCString(off int64) (string, error) {
	if off < 0 || off > int64(len(r.buf)) {
		return "", errs.Newf(errs.InvalidStructure, "ReadCString offset %d out of bounds (buffer length %d)", off, len(r.buf))
	}
	rest := r.buf[off:]
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		return string(rest[:i]), nil
	}
	return string(rest), nil
}

// ReadPtr reads a 64-bit kernel virtual address at off and translates it
// to a dump buffer byte offset. It returns ok=false (not an error) when
// the pointer value itself can't be read, or when translation fails —
// both are the normal, expected outcomes spec.md §4.1 describes for a
// pointer that simply isn't resident or mapped.
func (r *Reader) ReadPtr(off int64) (value uint64, fileOffset int64, ok bool) {
	v, err := r.ReadU64(off)
	if err != nil {
		return 0, 0, false
	}
	if r.tr == nil {
		return v, 0, false
	}
	fo, translated := r.tr.Translate(v)
	if !translated {
		return v, 0, false
	}
	return v, fo, true
}

// Raw exposes the underlying buffer for scanning operations (e.g.
// bootstrap's byte-string search for "swapper" when symbol-guided
// lookups fail). Callers must treat it as read-only.
func (r *Reader) Raw() []byte {
	return r.buf
}
