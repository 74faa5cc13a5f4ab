// Package bootstrap implements C7, the four-stage routine that locates
// the initial task, resolves the physical load base, resolves the
// direct-map base, and hands a validated anchor to the walker. Every
// stage validates its own output before the next stage runs; failure at
// any stage is fatal (spec.md §4.3).
package bootstrap

import (
	"github.com/linmemparser/linmemparser/internal/kernelver"
	"github.com/linmemparser/linmemparser/internal/offsets"
	"github.com/linmemparser/linmemparser/internal/reader"
	"github.com/linmemparser/linmemparser/internal/symbols"
	"github.com/linmemparser/linmemparser/internal/translate"
	"github.com/sirupsen/logrus"
)

// Context is Stage D's output: everything the walker needs to start
// reading process records, with the translator frozen by convention
// (nothing after this point mutates it).
type Context struct {
	Reader       *reader.Reader
	Translator   *translate.Translator
	Catalogue    *symbols.Catalogue
	Offsets      offsets.FieldOffsets
	AnchorOffset int64
	KASLRShift   int
	Version      kernelver.Version
}

// Run executes Stages A through D and returns the published Context.
// log receives a decision-point trace regardless of level; callers that
// don't want it (no --debug) should set the logger's level above Debug.
func Run(rd *reader.Reader, tr *translate.Translator, cat *symbols.Catalogue, version kernelver.Version, log *logrus.Logger) (*Context, error) {
	fo := offsets.Resolve(cat, version)
	log.WithField("version", version.String()).Debug("bootstrap: resolved field offsets")

	anchorOffset, shift, err := StageA(rd, tr, cat, fo)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"anchor_offset": anchorOffset,
		"kaslr_shift_mib": shift,
	}).Debug("bootstrap: stage A located init_task")

	if err := StageB(rd, tr, cat, fo, anchorOffset, shift); err != nil {
		return nil, err
	}
	log.WithField("phys_base", tr.PhysBase()).Debug("bootstrap: stage B resolved phys_base")

	if err := StageC(rd, tr, fo, anchorOffset); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"page_offset_4level": tr.PageOffset4Level(),
		"page_offset_5level": tr.PageOffset5Level(),
	}).Debug("bootstrap: stage C resolved direct-map base")

	log.Debug("bootstrap: stage D publishing frozen context")
	return &Context{
		Reader:       rd,
		Translator:   tr,
		Catalogue:    cat,
		Offsets:      fo,
		AnchorOffset: anchorOffset,
		KASLRShift:   shift,
		Version:      version,
	}, nil
}
