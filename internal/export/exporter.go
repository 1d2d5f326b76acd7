package export

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/navinkumarg9/pro-resume-mentor/internal/rendering"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// Mode selects how the PDF is produced.
type Mode string

// Modes
const (
	// ModeRaster rasterizes the page and slices the image into A4 pages.
	ModeRaster Mode = "raster"
	// ModePrint lets the browser print the page to PDF.
	ModePrint Mode = "print"
)

// ParseMode parses a mode name. Empty selects ModeRaster.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRaster:
		return ModeRaster, nil
	case ModePrint:
		return ModePrint, nil
	}
	return "", ErrUnknownMode
}

// FallbackFileName is used when the resume has no full name.
const FallbackFileName = "Resume"

// AutoSaveFallbackName is the library name used after export when the resume has no full name.
const AutoSaveFallbackName = "My Resume"

// Result is a finished export.
type Result struct {
	PDF      []byte
	Pages    int
	FileName string
	Mode     Mode
	Duration time.Duration
}

// PhotoInliner rewrites a remote profile photo into something the browser can load offline.
type PhotoInliner interface {
	Inline(ctx context.Context, doc types.Resume) types.Resume
}

// Exporter renders a resume snapshot and turns it into a PDF. Only one export runs at a time.
type Exporter struct {
	rasterizer Rasterizer
	printer    Printer
	photos     PhotoInliner
	logger     *slog.Logger

	inFlight atomic.Bool
}

// NewExporter creates an exporter. Either collaborator may be nil, which disables that mode.
func NewExporter(r Rasterizer, p Printer, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{rasterizer: r, printer: p, logger: logger}
}

// WithPhotoInliner sets the inliner applied to every snapshot before rendering.
func (e *Exporter) WithPhotoInliner(p PhotoInliner) *Exporter {
	e.photos = p
	return e
}

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool {
	return e.inFlight.Load()
}

// Export produces a PDF of doc. A second call while one is running fails with
// ErrExportInProgress. doc is copied before use and never modified.
func (e *Exporter) Export(ctx context.Context, doc types.Resume, mode Mode) (*Result, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer e.inFlight.Store(false)

	start := time.Now()
	doc = doc.Clone()
	if e.photos != nil {
		doc = e.photos.Inline(ctx, doc)
	}

	html, err := rendering.RenderDocument(doc)
	if err != nil {
		return nil, &Error{Op: "render", Message: "failed to render resume", Cause: err}
	}

	var (
		pdf   []byte
		pages int
	)
	switch mode {
	case ModeRaster:
		pdf, pages, err = e.raster(ctx, html)
	case ModePrint:
		pdf, pages, err = e.print(ctx, html)
	default:
		err = &Error{Op: "export", Message: string(mode), Cause: ErrUnknownMode}
	}
	if err != nil {
		e.logger.Warn("export failed", "mode", mode, "error", err)
		return nil, err
	}

	res := &Result{
		PDF:      pdf,
		Pages:    pages,
		FileName: FileName(doc),
		Mode:     mode,
		Duration: time.Since(start),
	}
	e.logger.Info("resume exported",
		"mode", mode,
		"pages", pages,
		"bytes", len(pdf),
		"file", res.FileName,
		"duration", res.Duration)
	return res, nil
}

func (e *Exporter) raster(ctx context.Context, html string) ([]byte, int, error) {
	if e.rasterizer == nil {
		return nil, 0, &Error{Op: "rasterize", Message: "no rasterizer configured"}
	}
	img, err := e.rasterizer.Rasterize(ctx, html)
	if err != nil {
		return nil, 0, wrap("rasterize", "rasterization failed", err)
	}

	pdf, pages, err := RasterToPDF(img)
	if err != nil {
		return nil, 0, err
	}
	if err := verifyPages(pdf, pages); err != nil {
		return nil, 0, err
	}
	return pdf, pages, nil
}

func (e *Exporter) print(ctx context.Context, html string) ([]byte, int, error) {
	if e.printer == nil {
		return nil, 0, &Error{Op: "print", Message: "no printer configured"}
	}
	pdf, err := e.printer.Print(ctx, html)
	if err != nil {
		return nil, 0, wrap("print", "printing failed", err)
	}
	pages, err := CountPages(pdf)
	if err != nil {
		return nil, 0, err
	}
	return pdf, pages, nil
}

func verifyPages(pdf []byte, want int) error {
	got, err := CountPages(pdf)
	if err != nil {
		return err
	}
	if got != want {
		return &Error{Op: "verify", Message: "page count mismatch"}
	}
	return nil
}

// wrap keeps *Error values as they are and wraps anything else.
func wrap(op, msg string, err error) error {
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Op: op, Message: msg, Cause: err}
}

// FileName returns the download name for doc: the full name with path separators
// replaced, or "Resume", with a .pdf extension.
func FileName(doc types.Resume) string {
	name := strings.TrimSpace(doc.PersonalInfo.FullName)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '-'
		}
		return r
	}, name)
	if name == "" {
		name = FallbackFileName
	}
	return name + ".pdf"
}

// AutoSaveName returns the library name a resume is saved under after a download.
func AutoSaveName(doc types.Resume) string {
	if name := strings.TrimSpace(doc.PersonalInfo.FullName); name != "" {
		return name
	}
	return AutoSaveFallbackName
}
