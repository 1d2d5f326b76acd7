package server

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/navinkumarg9/pro-resume-mentor/internal/export"
	"github.com/navinkumarg9/pro-resume-mentor/internal/rendering"
)

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, rendering.Templates())
}

// previewTemplate returns the ?template= override or the document's own template.
func previewTemplate(r *http.Request, fallback string) string {
	if id := r.URL.Query().Get("template"); id != "" {
		return id
	}
	return fallback
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Resume()
	html, err := rendering.RenderHTML(doc, previewTemplate(r, doc.TemplateID))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handlePreviewMarkdown(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Resume()
	md, err := rendering.RenderMarkdown(doc, previewTemplate(r, doc.TemplateID))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(md))
}

func (s *Server) handlePreviewLaTeX(w http.ResponseWriter, _ *http.Request) {
	tex, err := rendering.RenderLaTeX(s.store.Resume())
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-tex; charset=utf-8")
	_, _ = w.Write([]byte(tex))
}

// handleExport returns the PDF of the current document as an attachment. With auto-save on,
// the document is then saved to the library under the person's name.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.fail(w, &ErrUnavailable{Feature: "export"})
		return
	}
	mode, err := export.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		s.fail(w, err)
		return
	}

	doc := s.store.Resume()
	res, err := s.exporter.Export(r.Context(), doc, mode)
	if err != nil {
		s.fail(w, err)
		return
	}

	if s.cfg.AutoSave && s.library != nil {
		// A failed save does not fail the download.
		if entry, err := s.library.Save(r.Context(), export.AutoSaveName(doc), doc); err != nil {
			s.logger.Warn("auto-save after export failed", "error", err)
		} else {
			w.Header().Set("X-Library-Entry", entry.ID)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	w.Header().Set("X-Page-Count", strconv.Itoa(res.Pages))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}
