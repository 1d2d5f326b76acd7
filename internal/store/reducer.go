// Package store owns the live resume document and serialises every edit through a closed
// set of commands. Each command produces a new snapshot; nothing outside this package can
// mutate the document.
package store

import (
	"slices"

	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// State is one snapshot of the editor: the document and its derived analysis.
type State struct {
	Resume   types.Resume         `json:"resume"`
	Analysis types.AnalysisResult `json:"analysis"`
	// AnalysisStale is true from the first document change until a matching SetAnalysis.
	AnalysisStale bool `json:"analysisStale"`
	// Version counts every command applied, DocumentVersion only those that changed the document.
	Version         uint64 `json:"version"`
	DocumentVersion uint64 `json:"documentVersion"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Resume = s.Resume.Clone()
	out.Analysis = s.Analysis.Clone()
	return out
}

// InitialState returns the state of a fresh editor holding r.
// The analysis of a fresh editor has not been computed yet and is stale.
func InitialState(r types.Resume) State {
	r = r.Clone()
	r.Normalize()
	return State{
		Resume:          r,
		Analysis:        types.AnalysisResult{Suggestions: []string{}},
		AnalysisStale:   true,
		DocumentVersion: 1,
	}
}

// Reduce applies cmd to a copy of st and returns the next state. st is never modified.
// newID supplies identifiers for added entries that arrive without a usable one.
func Reduce(st State, cmd Command, newID func() string) State {
	next := st.Clone()
	next.Version++
	if cmd.apply(&next, newID) {
		next.DocumentVersion++
		next.AnalysisStale = true
	}
	return next
}

// assignID returns id when it is non-empty and unused in list, otherwise a fresh id.
func assignID[T any](id string, list []T, idOf func(T) string, newID func() string) string {
	for id == "" || containsID(list, id, idOf) {
		id = newID()
	}
	return id
}

func containsID[T any](list []T, id string, idOf func(T) string) bool {
	return slices.ContainsFunc(list, func(e T) bool { return idOf(e) == id })
}

// updateEntry patches the entry with the given id in place. The list is the working copy
// owned by the reducer. Unknown ids leave the list untouched.
func updateEntry[T any](list []T, id string, idOf func(T) string, patch func(T) T) bool {
	i := slices.IndexFunc(list, func(e T) bool { return idOf(e) == id })
	if i < 0 {
		return false
	}
	list[i] = patch(list[i])
	return true
}

// deleteEntry returns list without the entry with the given id.
func deleteEntry[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	i := slices.IndexFunc(list, func(e T) bool { return idOf(e) == id })
	if i < 0 {
		return list, false
	}
	return slices.Delete(list, i, i+1), true
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
