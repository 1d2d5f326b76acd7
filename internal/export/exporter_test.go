package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRasterizer struct {
	img     image.Image
	err     error
	gotHTML string
	block   chan struct{}
	started chan struct{}
}

func (f *fakeRasterizer) Rasterize(_ context.Context, html string) (image.Image, error) {
	f.gotHTML = html
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.img, f.err
}

type fakePrinter struct {
	pdf []byte
	err error
}

func (f *fakePrinter) Print(context.Context, string) ([]byte, error) {
	return f.pdf, f.err
}

func janeDoe() types.Resume {
	r := types.NewResume()
	r.PersonalInfo.FullName = "Jane Doe"
	r.TemplateID = "classic"
	return r
}

func TestExporter_Raster(t *testing.T) {
	raster := &fakeRasterizer{img: solid(210, 500, color.White)}
	e := NewExporter(raster, nil, nil)

	res, err := e.Export(context.Background(), janeDoe(), ModeRaster)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "Jane Doe.pdf", res.FileName)
	assert.Equal(t, ModeRaster, res.Mode)
	assert.Contains(t, raster.gotHTML, `data-template="classic"`)
	assert.False(t, e.Busy())
}

func TestExporter_ShortContentIsOnePage(t *testing.T) {
	e := NewExporter(&fakeRasterizer{img: solid(210, 50, color.White)}, nil, nil)

	res, err := e.Export(context.Background(), types.NewResume(), ModeRaster)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, "Resume.pdf", res.FileName)
}

func TestExporter_Print(t *testing.T) {
	pdf, _, err := RasterToPDF(solid(210, 297, color.White))
	require.NoError(t, err)

	e := NewExporter(nil, &fakePrinter{pdf: pdf}, nil)
	res, err := e.Export(context.Background(), janeDoe(), ModePrint)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, pdf, res.PDF)
}

func TestExporter_Failures(t *testing.T) {
	boom := errors.New("chrome crashed")

	tests := []struct {
		name   string
		e      *Exporter
		mode   Mode
		wantOp string
	}{
		{"rasterize error", NewExporter(&fakeRasterizer{err: boom}, nil, nil), ModeRaster, "rasterize"},
		{"no rasterizer", NewExporter(nil, nil, nil), ModeRaster, "rasterize"},
		{"print error", NewExporter(nil, &fakePrinter{err: boom}, nil), ModePrint, "print"},
		{"no printer", NewExporter(nil, nil, nil), ModePrint, "print"},
		{"garbage pdf", NewExporter(nil, &fakePrinter{pdf: []byte("nope")}, nil), ModePrint, "verify"},
		{"unknown mode", NewExporter(nil, nil, nil), Mode("fax"), "export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := janeDoe()
			before := doc.Clone()

			_, err := tt.e.Export(context.Background(), doc, tt.mode)

			var exportErr *Error
			require.ErrorAs(t, err, &exportErr)
			assert.Equal(t, tt.wantOp, exportErr.Op)
			assert.Equal(t, before, doc)
			assert.False(t, tt.e.Busy(), "flag must be released after failure")
		})
	}
}

func TestExporter_RejectsConcurrentExport(t *testing.T) {
	raster := &fakeRasterizer{
		img:     solid(210, 100, color.White),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	e := NewExporter(raster, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = e.Export(context.Background(), janeDoe(), ModeRaster)
	}()

	<-raster.started
	assert.True(t, e.Busy())

	_, err := e.Export(context.Background(), janeDoe(), ModeRaster)
	assert.ErrorIs(t, err, ErrExportInProgress)

	close(raster.block)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.False(t, e.Busy())
}

type fakeInliner struct{ ref string }

func (f fakeInliner) Inline(_ context.Context, doc types.Resume) types.Resume {
	doc.PersonalInfo.ProfilePhoto = f.ref
	return doc
}

func TestExporter_InlinesPhoto(t *testing.T) {
	raster := &fakeRasterizer{img: solid(210, 100, color.White)}
	e := NewExporter(raster, nil, nil).WithPhotoInliner(fakeInliner{ref: "data:image/png;base64,AAAA"})

	doc := janeDoe()
	doc.PersonalInfo.ProfilePhoto = "https://example.com/me.png"
	_, err := e.Export(context.Background(), doc, ModeRaster)
	require.NoError(t, err)

	assert.Contains(t, raster.gotHTML, "data:image/png;base64,AAAA")
	assert.NotContains(t, raster.gotHTML, "https://example.com/me.png")
	assert.Equal(t, "https://example.com/me.png", doc.PersonalInfo.ProfilePhoto)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeRaster, m)

	m, err = ParseMode(" PRINT ")
	require.NoError(t, err)
	assert.Equal(t, ModePrint, m)

	_, err = ParseMode("fax")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jane Doe", "Jane Doe.pdf"},
		{"", "Resume.pdf"},
		{"   ", "Resume.pdf"},
		{"AC/DC", "AC-DC.pdf"},
		{`..\evil`, "..-evil.pdf"},
	}
	for _, tt := range tests {
		r := types.NewResume()
		r.PersonalInfo.FullName = tt.name
		assert.Equal(t, tt.want, FileName(r), tt.name)
	}
}

func TestAutoSaveName(t *testing.T) {
	r := types.NewResume()
	assert.Equal(t, "My Resume", AutoSaveName(r))
	r.PersonalInfo.FullName = " Jane Doe "
	assert.Equal(t, "Jane Doe", AutoSaveName(r))
}

func TestError(t *testing.T) {
	err := &Error{Op: "print", Message: "printing failed", Cause: errors.New("boom")}
	assert.Equal(t, "export error (print): printing failed: boom", err.Error())
	assert.Equal(t, "export error (verify): page count mismatch", (&Error{Op: "verify", Message: "page count mismatch"}).Error())
}
