package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"golang.org/x/sync/errgroup"
)

// A4 page geometry.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
	// PageWidthCSS is the A4 width in CSS pixels at 96 dpi.
	PageWidthCSS = 794
	// PageHeightCSS is the A4 height in CSS pixels at 96 dpi.
	PageHeightCSS = 1123
	// RasterScale is the device scale factor used when rasterizing.
	RasterScale = 2
)

// importSpec places each image on its own A4 page, scaled to cover the page.
const importSpec = "formsize:A4, position:full"

// SliceHeight returns the height in pixels of one A4 page of a raster widthPx wide.
func SliceHeight(widthPx int) int {
	if widthPx <= 0 {
		return 0
	}
	return int(math.Round(float64(widthPx) * PageHeightMM / PageWidthMM))
}

// PageCount returns how many A4 pages a raster of the given size fills once scaled to A4 width.
// Content of one page or less is a single page.
func PageCount(widthPx, heightPx int) int {
	sh := SliceHeight(widthPx)
	if sh == 0 || heightPx <= sh {
		return 1
	}
	return (heightPx + sh - 1) / sh
}

// Slice cuts img into PageCount page-sized slices from top to bottom. The last slice is
// padded with white up to a full page.
func Slice(img image.Image) []image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	sh := SliceHeight(w)
	if sh == 0 {
		return nil
	}

	n := PageCount(w, h)
	slices := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		page := image.NewRGBA(image.Rect(0, 0, w, sh))
		draw.Draw(page, page.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

		top := b.Min.Y + i*sh
		src := image.Rect(b.Min.X, top, b.Max.X, min(top+sh, b.Max.Y))
		draw.Draw(page, image.Rect(0, 0, w, src.Dy()), img, src.Min, draw.Over)
		slices = append(slices, page)
	}
	return slices
}

// Assemble writes a PDF with one A4 page per slice to w.
func Assemble(slices []image.Image, w io.Writer) error {
	if len(slices) == 0 {
		return &Error{Op: "assemble", Message: "no pages to assemble"}
	}

	encoded := make([][]byte, len(slices))
	var g errgroup.Group
	for i, s := range slices {
		g.Go(func() error {
			var buf bytes.Buffer
			if err := png.Encode(&buf, s); err != nil {
				return fmt.Errorf("failed to encode page %d: %w", i+1, err)
			}
			encoded[i] = buf.Bytes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &Error{Op: "assemble", Message: "failed to encode pages", Cause: err}
	}

	imp, err := api.Import(importSpec, types.POINTS)
	if err != nil {
		return &Error{Op: "assemble", Message: "invalid import spec", Cause: err}
	}

	readers := make([]io.Reader, len(encoded))
	for i, b := range encoded {
		readers[i] = bytes.NewReader(b)
	}
	if err := api.ImportImages(nil, w, readers, imp, model.NewDefaultConfiguration()); err != nil {
		return &Error{Op: "assemble", Message: "failed to write pdf", Cause: err}
	}
	return nil
}

// CountPages returns the number of pages of a PDF document.
func CountPages(pdf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, &Error{Op: "verify", Message: "failed to read pdf", Cause: err}
	}
	return n, nil
}

// RasterToPDF slices img into A4 pages and assembles them into a PDF.
func RasterToPDF(img image.Image) ([]byte, int, error) {
	slices := Slice(img)
	var buf bytes.Buffer
	if err := Assemble(slices, &buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(slices), nil
}
