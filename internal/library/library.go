package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/navinkumarg9/pro-resume-mentor/internal/schemas"
	"github.com/navinkumarg9/pro-resume-mentor/internal/storage"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// StorageKey is the key the collection is stored under.
const StorageKey = "savedResumes"

// Entry is one saved resume.
type Entry struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Data      types.Resume `json:"data"`
}

// Summary describes a saved resume without its document.
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	FullName   string    `json:"fullName"`
	TemplateID string    `json:"templateId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (e Entry) summary() Summary {
	return Summary{
		ID:         e.ID,
		Name:       e.Name,
		FullName:   e.Data.PersonalInfo.FullName,
		TemplateID: e.Data.TemplateID,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ImportReport counts the outcome of an Import.
type ImportReport struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// Library reads and writes the saved-resume collection. Every operation is a
// read-modify-write of the whole collection under one mutex.
type Library struct {
	kv     storage.KV
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu sync.Mutex
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(lib *Library) {
		if l != nil {
			lib.logger = l
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(lib *Library) { lib.now = now }
}

// WithIDGenerator overrides the id source used for new entries.
func WithIDGenerator(newID func() string) Option {
	return func(lib *Library) { lib.newID = newID }
}

// New creates a library backed by kv.
func New(kv storage.KV, opts ...Option) *Library {
	lib := &Library{
		kv:     kv,
		logger: slog.Default(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  newEntryID,
	}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

func newEntryID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// Save stores doc under name, replacing the document of an existing entry with the same
// name. The name is trimmed; an empty name is rejected with ErrEmptyName.
func (l *Library) Save(ctx context.Context, name string, doc types.Resume) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrEmptyName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read(ctx)
	if err != nil {
		return Entry{}, err
	}

	doc = doc.Clone()
	doc.Normalize()
	now := l.now()

	var saved Entry
	if i := indexByName(entries, name); i >= 0 {
		entries[i].Data = doc
		entries[i].UpdatedAt = now
		saved = entries[i]
	} else {
		saved = Entry{ID: l.newID(), Name: name, CreatedAt: now, UpdatedAt: now, Data: doc}
		entries = append(entries, saved)
	}

	if err := l.write(ctx, entries); err != nil {
		return Entry{}, err
	}
	l.logger.Info("resume saved", "id", saved.ID, "name", saved.Name)
	return saved, nil
}

// List returns summaries of every saved resume in stored order.
func (l *Library) List(ctx context.Context) ([]Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, len(entries))
	for i, e := range entries {
		out[i] = e.summary()
	}
	return out, nil
}

// Get returns the entry with the given id.
func (l *Library) Get(ctx context.Context, id string) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Load returns the document of the entry with the given id, ready to be loaded into a store.
func (l *Library) Load(ctx context.Context, id string) (types.Resume, error) {
	e, err := l.Get(ctx, id)
	if err != nil {
		return types.Resume{}, err
	}
	doc := e.Data
	doc.Normalize()
	return doc, nil
}

// Delete removes the entry with the given id. An unknown id is a no-op.
func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read(ctx)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}
	if err := l.write(ctx, kept); err != nil {
		return err
	}
	l.logger.Info("resume deleted", "id", id)
	return nil
}

// Import merges a savedResumes array exported from the browser. Every document is validated
// first; if any entry is invalid nothing is written. Entries are matched by trimmed name:
// an existing entry gets the imported document, anything else is appended.
func (l *Library) Import(ctx context.Context, blob []byte) (ImportReport, error) {
	var raw []struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		CreatedAt time.Time       `json:"createdAt"`
		UpdatedAt time.Time       `json:"updatedAt"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(blob, &raw); err != nil {
		return ImportReport{}, &Error{Op: "import", Message: "invalid saved resume list", Cause: err}
	}

	incoming := make([]Entry, 0, len(raw))
	for i, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return ImportReport{}, &ImportError{Index: i, Cause: ErrEmptyName}
		}
		if err := schemas.ValidateResume(r.Data); err != nil {
			return ImportReport{}, &ImportError{Index: i, Name: name, Cause: err}
		}
		var doc types.Resume
		if err := json.Unmarshal(r.Data, &doc); err != nil {
			return ImportReport{}, &ImportError{Index: i, Name: name, Cause: err}
		}
		doc.Normalize()
		incoming = append(incoming, Entry{ID: r.ID, Name: name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt, Data: doc})
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read(ctx)
	if err != nil {
		return ImportReport{}, err
	}

	var report ImportReport
	now := l.now()
	for _, in := range incoming {
		if in.UpdatedAt.IsZero() {
			in.UpdatedAt = now
		}
		if i := indexByName(entries, in.Name); i >= 0 {
			entries[i].Data = in.Data
			entries[i].UpdatedAt = in.UpdatedAt
			report.Updated++
			continue
		}
		if in.ID == "" || indexByID(entries, in.ID) >= 0 {
			in.ID = l.newID()
		}
		if in.CreatedAt.IsZero() {
			in.CreatedAt = in.UpdatedAt
		}
		entries = append(entries, in)
		report.Added++
	}

	if err := l.write(ctx, entries); err != nil {
		return ImportReport{}, err
	}
	l.logger.Info("saved resumes imported", "added", report.Added, "updated", report.Updated)
	return report, nil
}

// Export returns the collection in the browser savedResumes layout.
func (l *Library) Export(ctx context.Context) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, &Error{Op: "export", Message: "failed to encode saved resumes", Cause: err}
	}
	return b, nil
}

func (l *Library) read(ctx context.Context) ([]Entry, error) {
	b, err := l.kv.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, &Error{Op: "read", Message: "failed to read saved resumes", Cause: err}
	}

	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, &Error{Op: "read", Message: "saved resumes are corrupt", Cause: err}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (l *Library) write(ctx context.Context, entries []Entry) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return &Error{Op: "write", Message: "failed to encode saved resumes", Cause: err}
	}
	if err := l.kv.Put(ctx, StorageKey, b); err != nil {
		return &Error{Op: "write", Message: fmt.Sprintf("failed to write %d saved resumes", len(entries)), Cause: err}
	}
	return nil
}

func indexByName(entries []Entry, name string) int {
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == name {
			return i
		}
	}
	return -1
}

func indexByID(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
