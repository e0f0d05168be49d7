package controller

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/five82/trendintel/internal/trendapi"
)

var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID returns the 11-character video id embedded in a YouTube URL.
func ExtractVideoID(raw string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AnalysisState is the observable state of the analyzer.
type AnalysisState struct {
	URL        string
	Running    bool
	Result     *trendapi.AnalysisResult
	Err        error
	StartedAt  time.Time
	FinishedAt time.Time
	Generation uint64
}

// Analyzer submits single videos for on-demand analysis. Only one request
// runs at a time, and Reset discards the result of one still in flight.
type Analyzer struct {
	api trendapi.Service

	mu       sync.Mutex
	state    AnalysisState
	onChange func()
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(api trendapi.Service) *Analyzer {
	return &Analyzer{api: api}
}

// OnChange registers a callback for every state change.
func (a *Analyzer) OnChange(fn func()) {
	a.mu.Lock()
	a.onChange = fn
	a.mu.Unlock()
}

// State returns the current analysis state.
func (a *Analyzer) State() AnalysisState {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := a.state
	if st.Result != nil {
		r := *st.Result
		st.Result = &r
	}
	return st
}

// Analyze validates rawURL and requests its analysis. Empty input is a no-op
// returning (nil, nil). It returns ErrBusy while another analysis runs and
// ErrInvalidURL when no video id is present.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*trendapi.AnalysisResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, nil
	}
	id, ok := ExtractVideoID(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	a.mu.Lock()
	if a.state.Running {
		a.mu.Unlock()
		return nil, ErrBusy
	}
	gen := a.state.Generation + 1
	a.state = AnalysisState{URL: rawURL, Running: true, StartedAt: time.Now(), Generation: gen}
	fn := a.onChange
	a.mu.Unlock()
	notify(fn)

	slog.Info("analysis requested", "video_id", id)
	res, err := a.api.Analyze(ctx, rawURL)

	a.mu.Lock()
	if a.state.Generation != gen {
		a.mu.Unlock()
		slog.Debug("discarded analysis result", "video_id", id, "generation", gen)
		return nil, context.Canceled
	}
	a.state.Running = false
	a.state.FinishedAt = time.Now()
	a.state.Result = res
	a.state.Err = err
	fn = a.onChange
	a.mu.Unlock()
	notify(fn)

	if err != nil {
		slog.Warn("analysis failed", "video_id", id, "error", err)
		return nil, err
	}
	return res, nil
}

// Reset clears the state. A request still in flight is orphaned.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	a.state = AnalysisState{Generation: a.state.Generation + 1}
	fn := a.onChange
	a.mu.Unlock()
	notify(fn)
}
