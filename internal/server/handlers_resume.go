package server

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/navinkumarg9/pro-resume-mentor/internal/scoring"
	"github.com/navinkumarg9/pro-resume-mentor/internal/store"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// maxCommandBody bounds POST /commands and PUT /resume bodies; profile photos are inlined.
const maxCommandBody = 16 << 20

// AnalysisResponse is the body of the analysis routes.
type AnalysisResponse struct {
	types.AnalysisResult
	Label           string `json:"label"`
	Stale           bool   `json:"stale"`
	DocumentVersion uint64 `json:"documentVersion"`
}

func analysisResponse(st store.State) AnalysisResponse {
	return AnalysisResponse{
		AnalysisResult:  st.Analysis,
		Label:           scoring.Label(st.Analysis.Score),
		Stale:           st.AnalysisStale,
		DocumentVersion: st.DocumentVersion,
	}
}

func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Snapshot())
}

// handlePutResume replaces the document wholesale.
func (s *Server) handlePutResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCommandBody)
	var doc types.Resume
	if err := s.decodeJSON(r, &doc); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.Dispatch(store.LoadResume{Resume: doc}))
}

func (s *Server) handleResetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Dispatch(store.ResetResume{}))
}

// handleCommands applies one command envelope or a JSON array of them, in order.
// A list is decoded completely before anything is applied.
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCommandBody))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	var cmds []store.Command
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		cmds, err = store.DecodeCommands(trimmed)
	} else {
		var cmd store.Command
		cmd, err = store.DecodeCommand(body)
		cmds = []store.Command{cmd}
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.store.DispatchAll(cmds))
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, analysisResponse(s.store.Snapshot()))
}

// handleAnalyze runs the analysis now instead of waiting for the quiet period.
func (s *Server) handleAnalyze(w http.ResponseWriter, _ *http.Request) {
	s.analyzer.AnalyzeNow()
	s.jsonResponse(w, http.StatusOK, analysisResponse(s.store.Snapshot()))
}

func (s *Server) handleBreakdown(w http.ResponseWriter, _ *http.Request) {
	rows := scoring.Breakdown(s.store.Resume())
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"categories": rows,
		"analysis":   scoring.Summarize(rows),
	})
}

// handleEvents streams a "document" event with the full state after every document change
// and an "analysis" event after every analysis. The current state is sent first.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Subscribers run on the dispatching goroutine, so sends never block. A slow client
	// misses intermediate states; every document event carries the whole state.
	events := make(chan store.Event, 16)
	cancel := s.store.Subscribe(func(ev store.Event) {
		select {
		case events <- ev:
		default:
			s.logger.Debug("event stream full, dropping event", "type", ev.Command.Type())
		}
	})
	defer cancel()

	if st := s.store.Snapshot(); sse.WriteEvent("document", st.Version, st) != nil {
		return
	}

	keepAlive := time.NewTicker(s.cfg.KeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if err := sse.WriteKeepAlive(); err != nil {
				return
			}
		case ev := <-events:
			if err := writeStoreEvent(sse, ev); err != nil {
				return
			}
		}
	}
}

func writeStoreEvent(sse *SSEWriter, ev store.Event) error {
	switch {
	case ev.DocumentChanged:
		return sse.WriteEvent("document", ev.State.Version, ev.State)
	case ev.Command.Type() == store.TypeSetAnalysis:
		return sse.WriteEvent("analysis", ev.State.Version, analysisResponse(ev.State))
	}
	return nil
}
