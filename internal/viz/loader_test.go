package viz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"panchanga-desktop/internal/panchanga"
)

// updateRecorder collects emitted updates safely across goroutines
type updateRecorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *updateRecorder) emit(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *updateRecorder) all() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Update, len(r.updates))
	copy(out, r.updates)
	return out
}

func sampleReq() panchanga.VisualizationRequest {
	return panchanga.VisualizationRequest{Date: "2024-04-09", Time: "06:30", Location: "Bengaluru", Title: "My Event"}
}

func TestLoaderSuccessSequence(t *testing.T) {
	rec := &updateRecorder{}
	loader := NewLoader("skyshot", func(ctx context.Context, req panchanga.VisualizationRequest) (*Render, error) {
		return &Render{Title: "Ashwini", Caption: "caption", ImageData: "data:image/png;base64,AAAA"}, nil
	}, rec.emit)

	loader.Load(context.Background(), sampleReq())

	updates := rec.all()
	require.Len(t, updates, 2)
	require.Equal(t, StateLoading, updates[0].State)
	require.Equal(t, "Sky Shot", updates[0].DisplayName)
	require.Equal(t, StateLoaded, updates[1].State)
	require.Equal(t, "Ashwini", updates[1].Title)
	require.Equal(t, "data:image/png;base64,AAAA", updates[1].ImageData)
	require.Equal(t, "Sky Shot", updates[1].DisplayName)
}

func TestLoaderFailureHidesPanel(t *testing.T) {
	rec := &updateRecorder{}
	loader := NewLoader("skyshot", func(ctx context.Context, req panchanga.VisualizationRequest) (*Render, error) {
		return nil, errors.New("render failed")
	}, rec.emit)

	loader.Load(context.Background(), sampleReq())

	updates := rec.all()
	require.Len(t, updates, 2)
	require.Equal(t, StateLoading, updates[0].State)

	// Failure hides the whole section; nothing half-populated stays visible
	require.Equal(t, StateHidden, updates[1].State)
	require.Empty(t, updates[1].Title)
	require.Empty(t, updates[1].ImageData)
}

func TestLoadersAreIndependent(t *testing.T) {
	skyRec := &updateRecorder{}
	solarRec := &updateRecorder{}

	// The sky loader stalls until released; the solar loader resolves first
	release := make(chan struct{})
	sky := NewLoader("skyshot", func(ctx context.Context, req panchanga.VisualizationRequest) (*Render, error) {
		<-release
		return &Render{Title: "Ashwini", ImageData: "sky"}, nil
	}, skyRec.emit)
	solar := NewLoader("solar_system", func(ctx context.Context, req panchanga.VisualizationRequest) (*Render, error) {
		return &Render{Title: "My Event", ImageData: "solar"}, nil
	}, solarRec.emit)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sky.Load(context.Background(), sampleReq())
	}()
	go func() {
		defer wg.Done()
		solar.Load(context.Background(), sampleReq())
	}()

	close(release)
	wg.Wait()

	// Both panels end fully populated regardless of completion order
	skyUpdates := skyRec.all()
	require.Equal(t, StateLoaded, skyUpdates[len(skyUpdates)-1].State)
	require.Equal(t, "sky", skyUpdates[len(skyUpdates)-1].ImageData)

	solarUpdates := solarRec.all()
	require.Equal(t, StateLoaded, solarUpdates[len(solarUpdates)-1].State)
	require.Equal(t, "solar", solarUpdates[len(solarUpdates)-1].ImageData)
}

func TestLoaderDiscardsStaleResponse(t *testing.T) {
	rec := &updateRecorder{}

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	loader := NewLoader("skyshot", func(ctx context.Context, req panchanga.VisualizationRequest) (*Render, error) {
		mu.Lock()
		calls++
		call := calls
		mu.Unlock()

		if call == 1 {
			close(firstStarted)
			<-releaseFirst
			return &Render{Title: "stale", ImageData: "stale"}, nil
		}
		return &Render{Title: "fresh", ImageData: "fresh"}, nil
	}, rec.emit)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loader.Load(context.Background(), sampleReq())
	}()

	<-firstStarted

	// Second load supersedes the first while it is still in flight
	loader.Load(context.Background(), sampleReq())

	close(releaseFirst)
	wg.Wait()

	// The slow first response must not overwrite the fresh one
	for _, u := range rec.all() {
		require.NotEqual(t, "stale", u.ImageData)
	}

	updates := rec.all()
	last := updates[len(updates)-1]
	require.Equal(t, StateLoaded, last.State)
	require.Equal(t, "fresh", last.ImageData)
}

func TestLoaderSupersededTerminalNeverLandsLast(t *testing.T) {
	rec := &updateRecorder{}

	// The first load's terminal emit is held mid-flight after it has begun
	// applying its result; a second load then runs to completion. The
	// second load's result must still end up as the final panel state.
	staleApplying := make(chan struct{})
	releaseStale := make(chan struct{})

	var loader *Loader
	emit := func(u Update) {
		if u.State == StateLoaded && u.ImageData == "stale" {
			close(staleApplying)
			<-releaseStale
		}
		rec.emit(u)
	}

	first := true
	loader = NewLoader("skyshot", func(ctx context.Context, req panchanga.VisualizationRequest) (*Render, error) {
		if first {
			first = false
			return &Render{Title: "old", ImageData: "stale"}, nil
		}
		return &Render{Title: "new", ImageData: "fresh"}, nil
	}, emit)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loader.Load(context.Background(), sampleReq())
	}()

	<-staleApplying

	wg.Add(1)
	go func() {
		defer wg.Done()
		loader.Load(context.Background(), sampleReq())
	}()

	// The second load announces itself (its loading update) before it can
	// apply anything
	require.Eventually(t, func() bool {
		return len(rec.all()) >= 2
	}, time.Second, 5*time.Millisecond)

	close(releaseStale)
	wg.Wait()

	updates := rec.all()
	last := updates[len(updates)-1]
	require.Equal(t, StateLoaded, last.State)
	require.Equal(t, "fresh", last.ImageData, "a superseded load must not finish after a newer one")
}
