package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/navinkumarg9/pro-resume-mentor/internal/export"
	"github.com/navinkumarg9/pro-resume-mentor/internal/fetch"
	"github.com/navinkumarg9/pro-resume-mentor/internal/library"
	"github.com/navinkumarg9/pro-resume-mentor/internal/storage"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// readResume loads a resume document from path, or a blank one when path is empty.
func readResume(path string) (types.Resume, error) {
	if path == "" {
		return newResume(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Resume{}, fmt.Errorf("failed to read resume file: %w", err)
	}
	var doc types.Resume
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Resume{}, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// newResume returns a blank document using the configured template.
func newResume() types.Resume {
	doc := types.NewResume()
	if cfg != nil && cfg.Template != "" {
		doc.TemplateID = cfg.Template
	}
	return doc
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	return writeOutput(w, path, data)
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// openLibrary opens the configured storage backend. The caller closes the returned KV.
func openLibrary(ctx context.Context) (*library.Library, storage.KV, error) {
	kv, err := storage.Open(ctx, cfg.StorageURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open library at %s: %w", storage.Redact(cfg.StorageURL), err)
	}
	return library.New(kv), kv, nil
}

// newExporter builds the PDF exporter. Tests replace it.
var newExporter = func() *export.Exporter {
	opts := export.ChromeOptions{
		ExecPath: cfg.Export.ChromePath,
		Timeout:  cfg.ExportTimeout(),
	}
	return export.NewExporter(export.NewChromeRasterizer(opts), export.NewChromePrinter(opts), nil).
		WithPhotoInliner(fetch.NewPhotoInliner(nil, nil))
}
