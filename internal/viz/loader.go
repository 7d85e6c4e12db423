// Package viz drives the two visualization panels (sky shot and solar
// system) through their loading lifecycle. The panels are structurally
// identical, mutually independent pipelines: one's failure or latency never
// blocks or hides the other's result.
package viz

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"panchanga-desktop/internal/common"
	"panchanga-desktop/internal/panchanga"
)

// State of one visualization panel
type State string

const (
	// StateLoading is emitted when a load begins: section revealed, spinner
	// shown, title dimmed, image hidden
	StateLoading State = "loading"

	// StateLoaded is emitted on success with the title, image and caption
	StateLoaded State = "loaded"

	// StateHidden is emitted on failure; the whole section disappears
	// rather than leaving a half-populated panel visible
	StateHidden State = "hidden"
)

// Update is one panel state transition pushed to the UI
type Update struct {
	Panel       string `json:"panel"`
	DisplayName string `json:"displayName"` // section header text for the panel
	State       State  `json:"state"`
	Title       string `json:"title,omitempty"`
	Caption     string `json:"caption,omitempty"`
	ImageData   string `json:"imageData,omitempty"`
}

// Render resolves one visualization request into display content
type Render struct {
	Title     string
	Caption   string
	ImageData string
}

// Fetch produces the render for one request
type Fetch func(ctx context.Context, req panchanga.VisualizationRequest) (*Render, error)

// Loader runs one panel's pipeline. Loads may overlap when the user
// resubmits while a request is still in flight; a generation counter makes
// sure a slow earlier response cannot overwrite the state set by a newer
// load.
type Loader struct {
	panel string
	fetch Fetch
	emit  func(Update)
	gen   atomic.Uint64
	mu    sync.Mutex // serializes the generation check with the terminal emit
}

// NewLoader creates a loader for one panel
func NewLoader(panel string, fetch Fetch, emit func(Update)) *Loader {
	return &Loader{
		panel: panel,
		fetch: fetch,
		emit:  emit,
	}
}

// Load runs one pipeline pass: loading state, fetch, terminal state. The
// terminal state is emitted only if no newer load has started since; stale
// responses are discarded. Failures degrade to hiding the panel and are
// logged, never surfaced as alerts.
func (l *Loader) Load(ctx context.Context, req panchanga.VisualizationRequest) {
	gen := l.gen.Add(1)

	l.emit(l.update(Update{State: StateLoading}))

	render, err := l.fetch(ctx, req)

	// The staleness check and the terminal emit form one atomic step under
	// the lock; a load that passed the check alone could otherwise still
	// apply its result after a newer load had already finished
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.gen.Load() != gen {
		log.Printf("[Viz] %s: discarding stale response (generation %d)", l.panel, gen)
		return
	}

	if err != nil {
		log.Printf("[Viz] %s load failed: %v", l.panel, err)
		l.emit(l.update(Update{State: StateHidden}))
		return
	}

	l.emit(l.update(Update{
		State:     StateLoaded,
		Title:     render.Title,
		Caption:   render.Caption,
		ImageData: render.ImageData,
	}))
}

// update stamps the panel identity onto an outgoing state transition
func (l *Loader) update(u Update) Update {
	u.Panel = l.panel
	u.DisplayName = common.PanelDisplayName(l.panel)
	return u
}
