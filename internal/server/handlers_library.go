package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/navinkumarg9/pro-resume-mentor/internal/store"
)

// SaveRequest is the body of POST /library.
type SaveRequest struct {
	Name string `json:"name" validate:"required"`
}

func (s *Server) libraryAvailable(w http.ResponseWriter) bool {
	if s.library == nil {
		s.fail(w, &ErrUnavailable{Feature: "library"})
		return false
	}
	return true
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	if !s.libraryAvailable(w) {
		return
	}
	list, err := s.library.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, list)
}

// handleSaveLibrary saves the current document under the requested name.
func (s *Server) handleSaveLibrary(w http.ResponseWriter, r *http.Request) {
	if !s.libraryAvailable(w) {
		return
	}
	var req SaveRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.fail(w, err)
		return
	}
	entry, err := s.library.Save(r.Context(), req.Name, s.store.Resume())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, entry)
}

func (s *Server) handleGetLibraryEntry(w http.ResponseWriter, r *http.Request) {
	if !s.libraryAvailable(w) {
		return
	}
	entry, err := s.library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleLoadLibraryEntry replaces the live document with a saved one.
func (s *Server) handleLoadLibraryEntry(w http.ResponseWriter, r *http.Request) {
	if !s.libraryAvailable(w) {
		return
	}
	doc, err := s.library.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Dispatch(store.LoadResume{Resume: doc}))
}

func (s *Server) handleDeleteLibraryEntry(w http.ResponseWriter, r *http.Request) {
	if !s.libraryAvailable(w) {
		return
	}
	if err := s.library.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
