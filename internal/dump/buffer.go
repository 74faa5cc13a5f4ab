package dump

import (
	"os"

	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// A Buffer is an immutable, randomly-accessible view of a captured
// memory image, together with the physical regions it contains.
//
// The teacher's internal/core/process.go left its own file-mapping path
// as a stub ("file mapping is not implemented yet"); Open below is that
// stub filled in with a real mmap.
type Buffer struct {
	data    []byte
	regions []Region
	f       *os.File // nil when backed by an in-memory slice (tests)
}

// Open maps path into memory read-only and classifies its contents as
// either a LiME-framed capture or a single raw region spanning the whole
// file.
func Open(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrapf(errs.IO, err, "opening dump %s", path)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.Wrapf(errs.IO, err, "statting dump %s", path)
	}
	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, errs.Newf(errs.IO, "dump %s is empty", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, errs.Wrapf(errs.IO, err, "mmap dump %s", path)
	}

	b, err := NewFromBytes(data)
	if err != nil {
		unix.Munmap(data)
		f.Close()
		return nil, err
	}
	b.f = f
	return b, nil
}

// NewFromBytes classifies an in-memory buffer the same way Open does,
// without touching the filesystem. Used directly by tests and by Open.
func NewFromBytes(data []byte) (*Buffer, error) {
	regions, err := parseLiME(data)
	if err != nil {
		return nil, err
	}
	if regions == nil {
		regions = []Region{{StartPhys: 0, EndPhys: uint64(len(data)) - 1, FileOffset: 0}}
	}
	for _, r := range regions {
		if err := r.validate(len(data)); err != nil {
			return nil, errs.Wrap(errs.ParseError, err, "validating dump regions")
		}
	}
	return &Buffer{data: data, regions: regions}, nil
}

// Close releases the memory mapping and underlying file, if any.
func (b *Buffer) Close() error {
	var err error
	if b.f != nil {
		if uerr := unix.Munmap(b.data); uerr != nil {
			err = errors.Wrap(uerr, "munmap dump")
		}
		if cerr := b.f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing dump file")
		}
	}
	return err
}

// Regions returns the physical regions recognized in the buffer, in
// file order.
func (b *Buffer) Regions() []Region {
	return b.regions
}

// Len returns the total size of the underlying buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the raw underlying buffer. Callers must not retain
// slices of it past the Buffer's Close.
func (b *Buffer) Bytes() []byte {
	return b.data
}
