package scoring

import (
	"log/slog"
	"sync"
	"time"

	"github.com/navinkumarg9/pro-resume-mentor/internal/store"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

// DefaultDelay is the quiet period after the last document change before a rescore.
const DefaultDelay = 1000 * time.Millisecond

// AutoAnalyzer keeps the analysis of a Store up to date. Each document change (re)starts
// the delay timer; when it expires the current snapshot is scored once and the result is
// dispatched back as SetAnalysis.
type AutoAnalyzer struct {
	store  *store.Store
	delay  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	cancel  func()
	running bool
}

// AutoOption configures an AutoAnalyzer.
type AutoOption func(*AutoAnalyzer)

// WithDelay sets the quiet period. Non-positive values keep the default.
func WithDelay(d time.Duration) AutoOption {
	return func(a *AutoAnalyzer) {
		if d > 0 {
			a.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) AutoOption {
	return func(a *AutoAnalyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAutoAnalyzer creates an analyzer for s. Call Start to attach it.
func NewAutoAnalyzer(s *store.Store, opts ...AutoOption) *AutoAnalyzer {
	a := &AutoAnalyzer{
		store:  s,
		delay:  DefaultDelay,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start subscribes to the store. Calling Start twice is a no-op.
func (a *AutoAnalyzer) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return
	}
	a.running = true
	a.cancel = a.store.Subscribe(a.onEvent)
	a.logger.Debug("auto analyzer started", "delay", a.delay)
}

// Stop unsubscribes and drops a pending rescore.
func (a *AutoAnalyzer) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.running = false
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Pending reports whether a rescore is scheduled.
func (a *AutoAnalyzer) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}

// AnalyzeNow scores the current snapshot immediately and dispatches the result.
// It must not be called from a store subscriber.
func (a *AutoAnalyzer) AnalyzeNow() types.AnalysisResult {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()

	return a.analyze()
}

func (a *AutoAnalyzer) analyze() types.AnalysisResult {
	snap := a.store.Snapshot()
	res := Analyze(snap.Resume)
	a.store.Dispatch(store.SetAnalysis{Result: res, DocumentVersion: snap.DocumentVersion})

	a.logger.Debug("resume analyzed",
		"score", res.Score,
		"suggestions", len(res.Suggestions),
		"document_version", snap.DocumentVersion)
	return res
}

func (a *AutoAnalyzer) onEvent(ev store.Event) {
	if !ev.DocumentChanged {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return
	}
	if a.timer != nil {
		a.timer.Reset(a.delay)
		return
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
}

func (a *AutoAnalyzer) fire() {
	a.mu.Lock()
	if !a.running || a.timer == nil {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.mu.Unlock()

	a.analyze()
}
