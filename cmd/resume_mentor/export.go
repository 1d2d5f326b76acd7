package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/navinkumarg9/pro-resume-mentor/internal/export"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume document as an A4 PDF",
	Long: `Renders the resume in headless Chrome and writes an A4 PDF.

Modes:
  raster  full-page screenshot sliced into A4 pages (default)
  print   the browser's own print-to-PDF

After a successful export the resume is saved to the library under its full name
("My Resume" when it has none) unless --auto-save=false.`,
	RunE: runExport,
}

var (
	exportResume   string
	exportMode     string
	exportOutput   string
	exportAutoSave bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportResume, "resume", "r", "", "Path to resume JSON file (required)")
	exportCmd.Flags().StringVarP(&exportMode, "mode", "m", "", "Export mode: raster or print (default from config)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output PDF (default: <full name>.pdf)")
	exportCmd.Flags().BoolVar(&exportAutoSave, "auto-save", true, "Save the resume to the library after export (default from config)")
	_ = exportCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	doc, err := readResume(exportResume)
	if err != nil {
		return err
	}

	modeName := cfg.Export.Mode
	if exportMode != "" {
		modeName = exportMode
	}
	mode, err := export.ParseMode(modeName)
	if err != nil {
		return fmt.Errorf("%w: %q", err, modeName)
	}

	res, err := newExporter().Export(cmd.Context(), doc, mode)
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = res.FileName
	}
	if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	printer(cmd).PrintExport(res, path)

	autoSave := cfg.Export.AutoSave
	if cmd.Flags().Changed("auto-save") {
		autoSave = exportAutoSave
	}
	if autoSave {
		saveAfterExport(cmd, doc)
	}
	return nil
}

// saveAfterExport stores doc in the library. The PDF is already written, so failures only warn.
func saveAfterExport(cmd *cobra.Command, doc types.Resume) {
	lib, kv, err := openLibrary(cmd.Context())
	if err != nil {
		slog.Warn("auto-save skipped", "error", err)
		return
	}
	defer func() { _ = kv.Close() }()

	entry, err := lib.Save(cmd.Context(), export.AutoSaveName(doc), doc)
	if err != nil {
		slog.Warn("auto-save failed", "error", err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved to library as %q (%s)\n", entry.Name, entry.ID)
}
