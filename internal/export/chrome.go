package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultChromeTimeout bounds a single rasterize or print run, browser start included.
const DefaultChromeTimeout = 60 * time.Second

// Rasterizer turns an HTML page into a raster image at A4 width.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) (image.Image, error)
}

// Printer turns an HTML page into a PDF directly.
type Printer interface {
	Print(ctx context.Context, html string) ([]byte, error)
}

// ChromeOptions configures the headless browser.
type ChromeOptions struct {
	// ExecPath overrides the browser binary. Empty uses CHROME_PATH, then the chromedp lookup.
	ExecPath string
	Timeout  time.Duration
	Logger   *slog.Logger
}

func (o ChromeOptions) withDefaults() ChromeOptions {
	if o.ExecPath == "" {
		o.ExecPath = os.Getenv("CHROME_PATH")
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultChromeTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// ChromeRasterizer takes a full-page screenshot of the page at A4 CSS width and device scale 2.
type ChromeRasterizer struct {
	opts ChromeOptions
}

// NewChromeRasterizer creates a rasterizer backed by headless Chrome.
func NewChromeRasterizer(opts ChromeOptions) *ChromeRasterizer {
	return &ChromeRasterizer{opts: opts.withDefaults()}
}

// Rasterize implements Rasterizer.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, html string) (image.Image, error) {
	var shot []byte
	err := withPage(ctx, r.opts, html,
		chromedp.EmulateViewport(PageWidthCSS, PageHeightCSS, chromedp.EmulateScale(RasterScale)),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return nil, &Error{Op: "rasterize", Message: "browser screenshot failed", Cause: err}
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, &Error{Op: "rasterize", Message: "failed to decode screenshot", Cause: err}
	}
	r.opts.Logger.Debug("page rasterized", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// ChromePrinter prints the page to PDF on A4 paper.
type ChromePrinter struct {
	opts ChromeOptions
}

// NewChromePrinter creates a printer backed by headless Chrome.
func NewChromePrinter(opts ChromeOptions) *ChromePrinter {
	return &ChromePrinter{opts: opts.withDefaults()}
}

// Print implements Printer.
func (p *ChromePrinter) Print(ctx context.Context, html string) ([]byte, error) {
	var pdf []byte
	err := withPage(ctx, p.opts, html,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &Error{Op: "print", Message: "browser print failed", Cause: err}
	}
	p.opts.Logger.Debug("page printed", "bytes", len(pdf))
	return pdf, nil
}

// withPage starts a headless browser, loads html from a temporary file and runs actions.
func withPage(ctx context.Context, opts ChromeOptions, html string, actions ...chromedp.Action) error {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	all := append([]chromedp.Action{
		chromedp.Navigate("file://" + htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}, actions...)
	return chromedp.Run(browserCtx, all...)
}
