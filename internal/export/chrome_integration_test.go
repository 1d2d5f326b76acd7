//go:build integration

package export

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutChrome(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_CHROME") == "" {
		t.Skip("TEST_CHROME not set, skipping headless browser test")
	}
}

func TestChromeRasterizer_Integration(t *testing.T) {
	skipWithoutChrome(t)

	r := NewChromeRasterizer(ChromeOptions{Timeout: 90 * time.Second})
	img, err := r.Rasterize(context.Background(), `<html><body style="margin:0"><div style="height:3000px">tall</div></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, PageWidthCSS*RasterScale, img.Bounds().Dx())
	assert.Equal(t, 3, PageCount(img.Bounds().Dx(), img.Bounds().Dy()))
}

func TestExporter_Integration(t *testing.T) {
	skipWithoutChrome(t)

	opts := ChromeOptions{Timeout: 90 * time.Second}
	e := NewExporter(NewChromeRasterizer(opts), NewChromePrinter(opts), nil)

	doc := types.NewResume()
	doc.PersonalInfo.FullName = "Jane Doe"

	for _, mode := range []Mode{ModeRaster, ModePrint} {
		res, err := e.Export(context.Background(), doc, mode)
		require.NoError(t, err, mode)
		assert.GreaterOrEqual(t, res.Pages, 1)
		assert.Equal(t, "Jane Doe.pdf", res.FileName)
	}
}
