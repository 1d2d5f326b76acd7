package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navinkumarg9/pro-resume-mentor/internal/export"
	"github.com/navinkumarg9/pro-resume-mentor/internal/library"
	"github.com/navinkumarg9/pro-resume-mentor/internal/scoring"
	"github.com/navinkumarg9/pro-resume-mentor/internal/storage"
	"github.com/navinkumarg9/pro-resume-mentor/internal/store"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// whiteRasterizer returns a white page-sized raster for any HTML.
type whiteRasterizer struct{}

func (whiteRasterizer) Rasterize(context.Context, string) (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, 210, 297))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return img, nil
}

// busyExporter always reports an export in flight.
type busyExporter struct{}

func (busyExporter) Export(context.Context, types.Resume, export.Mode) (*export.Result, error) {
	return nil, export.ErrExportInProgress
}

type testServer struct {
	*Server
	lib *library.Library
}

func newTestServer(t *testing.T, opts ...func(*Config)) *testServer {
	t.Helper()
	cfg := Config{AnalysisDelay: 10 * time.Millisecond, AutoSave: true, KeepAlive: time.Hour}
	for _, opt := range opts {
		opt(&cfg)
	}
	lib := library.New(storage.NewMemory())
	s := New(cfg, store.New(), lib, export.NewExporter(whiteRasterizer{}, nil, nil))
	t.Cleanup(s.Close)
	return &testServer{Server: s, lib: lib}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) store.State {
	t.Helper()
	var st store.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st), w.Body.String())
	return st
}

const addExperience = `{"type": "ADD_EXPERIENCE", "payload": {
	"id": "", "company": "Acme", "position": "Engineer", "startDate": "2020-01",
	"endDate": "", "current": true, "description": "Billing", "achievements": ["Cut latency"]}}`

const setName = `{"type": "UPDATE_PERSONAL_INFO", "payload": {"fullName": "Jane Doe", "email": "jane@example.com"}}`

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetResume_Initial(t *testing.T) {
	s := newTestServer(t)
	st := decodeState(t, s.do(t, http.MethodGet, "/resume", ""))

	assert.Equal(t, types.DefaultTemplateID, st.Resume.TemplateID)
	assert.Empty(t, st.Resume.Experience)
	assert.Equal(t, uint64(0), st.Version)
}

func TestCommands_Single(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/commands", addExperience)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	st := decodeState(t, w)
	require.Len(t, st.Resume.Experience, 1)
	assert.NotEmpty(t, st.Resume.Experience[0].ID, "an id is assigned")
	assert.Equal(t, "Acme", st.Resume.Experience[0].Company)
	assert.True(t, st.AnalysisStale)
}

func TestCommands_List(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/commands", "["+setName+","+addExperience+`,{"type": "CHANGE_TEMPLATE", "payload": "executive"}]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	st := decodeState(t, w)
	assert.Equal(t, "Jane Doe", st.Resume.PersonalInfo.FullName)
	assert.Len(t, st.Resume.Experience, 1)
	assert.Equal(t, "executive", st.Resume.TemplateID)
	assert.Equal(t, uint64(3), st.Version)
}

func TestCommands_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown type", `{"type": "ADD_HOBBY", "payload": {}}`},
		{"bad payload", `{"type": "DELETE_SKILL", "payload": {"id": 3}}`},
		{"not json", `{nope`},
		{"bad entry in list", "[" + setName + `,{"type": "NOPE"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			w := s.do(t, http.MethodPost, "/commands", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")

			st := s.store.Snapshot()
			assert.Equal(t, uint64(0), st.Version, "nothing is applied")
		})
	}
}

func TestPutResumeAndReset(t *testing.T) {
	s := newTestServer(t)

	doc := types.NewResume()
	doc.PersonalInfo.FullName = "Loaded"
	doc.Skills = append(doc.Skills, types.SkillEntry{ID: "s1", Name: "Go", Level: types.SkillExpert, Category: types.CategoryTechnical})
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	st := decodeState(t, s.do(t, http.MethodPut, "/resume", string(body)))
	assert.Equal(t, "Loaded", st.Resume.PersonalInfo.FullName)
	assert.Len(t, st.Resume.Skills, 1)

	st = decodeState(t, s.do(t, http.MethodPost, "/resume/reset", ""))
	assert.Equal(t, types.NewResume(), st.Resume)

	w := s.do(t, http.MethodPut, "/resume", "[1, 2]")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeNow(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.AnalysisDelay = time.Hour })
	s.do(t, http.MethodPost, "/commands", "["+setName+","+addExperience+"]")

	w := s.do(t, http.MethodPost, "/analysis", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	want := scoring.Analyze(s.store.Resume())
	assert.Equal(t, want.Score, resp.Score)
	assert.Equal(t, want.Suggestions, resp.Suggestions)
	assert.Equal(t, scoring.Label(want.Score), resp.Label)
	assert.False(t, resp.Stale)
}

func TestAutomaticAnalysis(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/commands", setName)

	require.Eventually(t, func() bool {
		var resp AnalysisResponse
		w := s.do(t, http.MethodGet, "/analysis", "")
		return json.Unmarshal(w.Body.Bytes(), &resp) == nil && !resp.Stale && resp.Score == 10
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBreakdown(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/analysis/breakdown", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []scoring.CategoryScore `json:"categories"`
		Analysis   types.AnalysisResult    `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Categories, 13)
	assert.Equal(t, 0, resp.Analysis.Score)
	assert.Len(t, resp.Analysis.Suggestions, 4)
}

func TestTemplates(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/templates", "")

	var templates []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &templates))
	assert.Len(t, templates, 24)
	assert.Equal(t, "modern", templates[0]["id"])
}

func TestPreview(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/commands", "["+setName+","+addExperience+"]")

	tests := []struct {
		path string
		want string
	}{
		{"/preview", "modern"},
		{"/preview?template=classic", "classic"},
		{"/preview?template=unknown", "modern"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := s.do(t, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

			doc, err := goquery.NewDocumentFromReader(w.Body)
			require.NoError(t, err)
			tmpl, _ := doc.Find(".page").Attr("data-template")
			assert.Equal(t, tt.want, tmpl)
			assert.Equal(t, "Jane Doe", strings.TrimSpace(doc.Find("h1").First().Text()))
			assert.Contains(t, doc.Find("#experience").Text(), "Present")
		})
	}
}

func TestPreviewMarkdownAndLaTeX(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/commands", "["+setName+","+addExperience+"]")

	w := s.do(t, http.MethodGet, "/preview.md", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Body.String(), "Jane Doe")
	assert.Contains(t, w.Body.String(), "Acme")

	w = s.do(t, http.MethodGet, "/preview.tex", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `\documentclass`)
	assert.Contains(t, w.Body.String(), "Jane Doe")
}

func TestExport(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/commands", setName)

	w := s.do(t, http.MethodPost, "/export?mode=raster", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Jane Doe.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", w.Header().Get("X-Page-Count"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	list, err := s.lib.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jane Doe", list[0].Name)
	assert.Equal(t, list[0].ID, w.Header().Get("X-Library-Entry"))

	// a second export upserts the same entry
	s.do(t, http.MethodPost, "/export", "")
	list, err = s.lib.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestExport_AutoSaveFallbackName(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename=Resume.pdf`, w.Header().Get("Content-Disposition"))

	list, err := s.lib.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, export.AutoSaveFallbackName, list[0].Name)
}

func TestExport_NoAutoSave(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.AutoSave = false })

	w := s.do(t, http.MethodPost, "/export", "")
	require.Equal(t, http.StatusOK, w.Code)

	list, err := s.lib.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExport_Errors(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/export?mode=png", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/export?mode=print", "")
	assert.Equal(t, http.StatusBadGateway, w.Code, "no printer configured")

	busy := New(Config{}, store.New(), nil, busyExporter{})
	defer busy.Close()
	rec := httptest.NewRecorder()
	busy.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	none := New(Config{}, store.New(), nil, nil)
	defer none.Close()
	rec = httptest.NewRecorder()
	none.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	none.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLibraryRoutes(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/commands", "["+setName+","+addExperience+"]")

	w := s.do(t, http.MethodPost, "/library", `{"name": "Backend CV"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry library.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "Backend CV", entry.Name)

	w = s.do(t, http.MethodGet, "/library", "")
	var list []library.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Jane Doe", list[0].FullName)

	w = s.do(t, http.MethodGet, "/library/"+entry.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	s.do(t, http.MethodPost, "/resume/reset", "")
	st := decodeState(t, s.do(t, http.MethodPost, "/library/"+entry.ID+"/load", ""))
	assert.Equal(t, "Jane Doe", st.Resume.PersonalInfo.FullName)
	assert.Len(t, st.Resume.Experience, 1)

	w = s.do(t, http.MethodDelete, "/library/"+entry.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodDelete, "/library/"+entry.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code, "unknown ids are a no-op")

	w = s.do(t, http.MethodGet, "/library/"+entry.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodPost, "/library/missing/load", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveLibrary_InvalidName(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{`{}`, `{"name": ""}`, `{"name": "   "}`, `not json`} {
		w := s.do(t, http.MethodPost, "/library", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.CORSOrigins = []string{"http://localhost:5173"} })

	req := httptest.NewRequest(http.MethodOptions, "/commands", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

// readEvent reads one SSE event, skipping comments.
type sseEvent struct {
	name, id, data string
}

func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "id: "):
			ev.id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		case line == "" && ev.name != "":
			return ev
		}
	}
}

func TestEvents(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	ev := readEvent(t, r)
	assert.Equal(t, "document", ev.name)
	assert.Empty(t, ev.id, "a fresh store has applied no commands")

	s.store.Dispatch(store.UpdatePersonalInfo{Patch: types.PersonalInfoPatch{FullName: ptr("Jane Doe")}})

	ev = readEvent(t, r)
	assert.Equal(t, "document", ev.name)
	assert.Equal(t, "1", ev.id)
	var st store.State
	require.NoError(t, json.Unmarshal([]byte(ev.data), &st))
	assert.Equal(t, "Jane Doe", st.Resume.PersonalInfo.FullName)

	ev = readEvent(t, r)
	assert.Equal(t, "analysis", ev.name)
	assert.Equal(t, "2", ev.id)
	var analysis AnalysisResponse
	require.NoError(t, json.Unmarshal([]byte(ev.data), &analysis))
	assert.Equal(t, 5, analysis.Score)
	assert.False(t, analysis.Stale)
}

func ptr[T any](v T) *T { return &v }
