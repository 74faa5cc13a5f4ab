package main

import (
	"io"
	"os"

	"github.com/linmemparser/linmemparser/internal/bootstrap"
	"github.com/linmemparser/linmemparser/internal/dump"
	"github.com/linmemparser/linmemparser/internal/errs"
	"github.com/linmemparser/linmemparser/internal/kernelver"
	"github.com/linmemparser/linmemparser/internal/reader"
	"github.com/linmemparser/linmemparser/internal/symbols"
	"github.com/linmemparser/linmemparser/internal/translate"
	"github.com/linmemparser/linmemparser/internal/walker"
	"github.com/sirupsen/logrus"
)

// session bundles everything the walker needs, assembled once per CLI
// invocation and handed to whichever plugin or shell runs next.
type session struct {
	buf  *dump.Buffer
	ctx  *bootstrap.Context
	rd   *reader.Reader
	log  *logrus.Logger
	path string
}

// openSession loads the dump, its symbol sources, detects the kernel
// version, and runs the boot-strap pipeline (C7), returning a frozen
// context ready for walker.Walk.
func openSession(f *flags, path string) (*session, error) {
	log := newLogger(f)

	buf, err := dump.Open(path)
	if err != nil {
		return nil, errs.Wrapf(errs.IO, err, "opening dump %q", path)
	}

	cat := symbols.New()
	if f.symbols != "" {
		if err := loadSymbolSource(f.symbols, cat, symbols.LoadSymbolFile); err != nil {
			buf.Close()
			return nil, err
		}
	}
	if f.debugInfo != "" {
		if err := loadSymbolSource(f.debugInfo, cat, symbols.LoadDebugInfo); err != nil {
			buf.Close()
			return nil, err
		}
	}

	version, err := kernelver.Detect(buf.Bytes())
	if err != nil {
		buf.Close()
		return nil, err
	}
	log.WithField("version", version.String()).Debug("detected kernel version")

	tr := translate.New(buf.Regions())
	rd := reader.New(buf.Bytes(), tr)

	ctx, err := bootstrap.Run(rd, tr, cat, version, log)
	if err != nil {
		buf.Close()
		return nil, err
	}

	return &session{buf: buf, ctx: ctx, rd: rd, log: log, path: path}, nil
}

func (s *session) Close() error {
	return s.buf.Close()
}

// walk runs the process walker (C8) over the session's bootstrap
// context.
func (s *session) walk() ([]walker.Process, error) {
	return walker.Walk(s.rd, s.ctx.Offsets, s.ctx.AnchorOffset, s.log)
}

func loadSymbolSource(path string, cat *symbols.Catalogue, load func(r io.Reader, c *symbols.Catalogue) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errs.Wrapf(errs.IO, err, "opening symbol source %q", path)
	}
	defer f.Close()
	return load(f, cat)
}
