package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/navinkumarg9/pro-resume-mentor/internal/export"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// execute runs the root command in-process and returns what it wrote to stdout.
// Every flag is reset first because cobra keeps flag values between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RESUME_STORAGE_URL", "memory:")
	resetFlags(rootCmd)
	cfg = nil

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// writeResumeFile stores doc as JSON in a temp dir and returns the path.
func writeResumeFile(t *testing.T, doc types.Resume) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readResumeFile(t *testing.T, path string) types.Resume {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc types.Resume
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func janeDoe() types.Resume {
	doc := types.NewResume()
	doc.PersonalInfo.FullName = "Jane Doe"
	doc.PersonalInfo.Email = "jane@example.com"
	return doc
}

// whiteRasterizer returns a blank A4-proportioned page.
type whiteRasterizer struct{}

func (whiteRasterizer) Rasterize(context.Context, string) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 210, 297))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img, nil
}

// useFakeExporter swaps the Chrome exporter for one that needs no browser.
func useFakeExporter(t *testing.T) {
	t.Helper()
	orig := newExporter
	newExporter = func() *export.Exporter {
		return export.NewExporter(whiteRasterizer{}, nil, nil)
	}
	t.Cleanup(func() { newExporter = orig })
}
