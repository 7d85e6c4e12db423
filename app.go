package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	goruntime "runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"panchanga-desktop/internal/cache"
	"panchanga-desktop/internal/common"
	"panchanga-desktop/internal/config"
	"panchanga-desktop/internal/geoloc"
	"panchanga-desktop/internal/insights"
	"panchanga-desktop/internal/panchanga"
	"panchanga-desktop/internal/ratelimit"
	"panchanga-desktop/internal/store"
	"panchanga-desktop/internal/viewmodel"
	"panchanga-desktop/internal/viz"
)

// Linker flags
var (
	PostHogKey  string
	PostHogHost string
	AppVersion  string = "0.0.0-dev"
)

// Event names pushed to the frontend
const (
	// EventPanchangaLoading carries a bool: page-level loading indicator
	// shown while a calculation is in flight
	EventPanchangaLoading = "panchanga:loading"

	// EventVizUpdate carries a viz.Update: one panel state transition
	EventVizUpdate = "viz:update"

	// EventExportState carries an ExportState: the export control's
	// label/disabled mirror
	EventExportState = "export:state"

	// EventRateLimit carries a ratelimit.Event or clears on recovery
	EventRateLimit = "ratelimit:state"
)

// App struct
type App struct {
	ctx              context.Context
	client           *panchanga.Client
	locator          geoloc.Locator
	resultStore      *store.Store
	transfer         *insights.Transfer
	imageCache       *cache.ImageCache
	skyshot          *viz.Loader
	solarSystem      *viz.Loader
	rateLimitHandler *ratelimit.Handler
	settings         *config.UserSettings
	downloadPath     string
	mu               sync.Mutex
	devMode          bool // Enable verbose logging in dev mode only
	phClient         posthog.Client
}

// NewApp creates a new App application struct
func NewApp() *App {
	// Load user settings
	settings, err := config.LoadSettings()
	if err != nil {
		log.Printf("Failed to load settings, using defaults: %v", err)
		settings = config.DefaultSettings()
	}
	log.Printf("Settings loaded from: %s", config.GetSettingsPath())

	// Assign a per-install ID on first run; analytics stays anonymous but
	// distinct across installs
	if settings.InstallID == "" {
		settings.InstallID = uuid.NewString()
		if err := config.SaveSettings(settings); err != nil {
			log.Printf("Failed to persist install ID: %v", err)
		}
	}

	// Initialize visualization image cache with settings
	imageCache, err := cache.NewImageCache(cache.GetCacheDir(), settings.CacheMaxEntries)
	if err != nil {
		log.Printf("Failed to initialize image cache: %v", err)
		imageCache = nil // Continue without cache
	} else {
		log.Printf("Image cache initialized at %s (max %d entries)", cache.GetCacheDir(), settings.CacheMaxEntries)
	}

	// Initialize calculation service client with rate limit tracking
	client := panchanga.NewClient(settings.ServiceURL)
	rateLimitHandler := ratelimit.NewHandler(nil)
	rateLimitHandler.SetAutoRetry(settings.AutoRetryOnRateLimit)
	client.SetRateLimitHandler(rateLimitHandler)

	// Dual-channel result store: data dir file first, session memory behind it
	resultStore := store.New(
		store.NewFileChannel(filepath.Join(config.GetDataDir(), "results")),
		store.NewSessionChannel(),
	)

	// Initialize PostHog
	var phClient posthog.Client
	if PostHogKey != "" {
		phConfig := posthog.Config{
			Endpoint: PostHogHost,
		}
		client, err := posthog.NewWithConfig(PostHogKey, phConfig)
		if err != nil {
			log.Printf("Failed to initialize PostHog: %v", err)
		} else {
			phClient = client
		}
	}

	app := &App{
		client:           client,
		locator:          geoloc.NewIPLocator(""),
		resultStore:      resultStore,
		transfer:         insights.NewTransfer(resultStore, client),
		imageCache:       imageCache,
		rateLimitHandler: rateLimitHandler,
		settings:         settings,
		downloadPath:     settings.DownloadPath,
		phClient:         phClient,
	}

	// The two panels are independent pipelines; each gets its own loader
	app.skyshot = viz.NewSkyshotLoader(client, imageCache, app.emitVizUpdate)
	app.solarSystem = viz.NewSolarSystemLoader(client, imageCache, app.emitVizUpdate)

	return app
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	// Create download directory if it doesn't exist
	os.MkdirAll(a.downloadPath, 0755)

	// Forward rate limit state to the frontend
	a.rateLimitHandler.SetOnRateLimit(func(event ratelimit.Event) {
		wailsRuntime.EventsEmit(ctx, EventRateLimit, event)
	})
	a.rateLimitHandler.SetOnRetry(func(event ratelimit.Event) {
		wailsRuntime.EventsEmit(ctx, EventRateLimit, event)
	})
	a.rateLimitHandler.SetOnRecovered(func(service string) {
		wailsRuntime.EventsEmit(ctx, EventRateLimit, map[string]interface{}{
			"service":   service,
			"recovered": true,
		})
	})

	// Track app start
	a.TrackEvent("app_started", map[string]interface{}{
		"version": a.GetAppVersion(),
		"os":      goruntime.GOOS,
		"arch":    goruntime.GOARCH,
	})
}

// TrackEvent sends an event to PostHog
func (a *App) TrackEvent(event string, props map[string]interface{}) {
	// SaveSettings swaps the settings pointer under the lock; read it the
	// same way
	a.mu.Lock()
	distinctID := a.settings.InstallID
	a.mu.Unlock()

	if a.phClient != nil {
		a.phClient.Enqueue(posthog.Capture{
			DistinctId: distinctID,
			Event:      event,
			Properties: props,
		})
	}
}

// Shutdown cleans up resources
func (a *App) Shutdown(ctx context.Context) {
	if a.rateLimitHandler != nil {
		a.rateLimitHandler.Close()
	}
	if a.phClient != nil {
		a.phClient.Close()
	}
}

// GetAppVersion returns the current application version
func (a *App) GetAppVersion() string {
	return AppVersion
}

// emitLog sends a log message to the frontend (only in dev mode)
func (a *App) emitLog(message string) {
	if a.devMode {
		wailsRuntime.EventsEmit(a.ctx, "log", message)
	}
}

// emitVizUpdate pushes one panel state transition to the frontend
func (a *App) emitVizUpdate(update viz.Update) {
	wailsRuntime.EventsEmit(a.ctx, EventVizUpdate, update)
}

// EventInputDefaults prefills the event form: current date and time plus the
// user's saved defaults
type EventInputDefaults struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Lang     string `json:"lang"`
}

// DefaultEventInput returns form prefill values
func (a *App) DefaultEventInput() EventInputDefaults {
	a.mu.Lock()
	defer a.mu.Unlock()

	return EventInputDefaults{
		Title:    a.settings.DefaultTitle,
		Date:     common.CurrentDateISO8601(),
		Time:     common.CurrentClockTime(),
		Location: a.settings.DefaultLocation,
		Lang:     a.settings.Language,
	}
}

// SubmitPanchanga submits one event record to the calculation service and
// returns the display-ready render update. The frontend constructs the
// record fresh from current form values on every call.
//
// While the request is in flight the page-level loading indicator event is
// raised; it is lowered on every exit path. On success the result is
// persisted for the insights handoff and both visualization panels are
// kicked off concurrently, neither blocking this return nor each other.
func (a *App) SubmitPanchanga(record panchanga.RequestRecord) (*viewmodel.RenderUpdate, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	wailsRuntime.EventsEmit(a.ctx, EventPanchangaLoading, true)
	defer wailsRuntime.EventsEmit(a.ctx, EventPanchangaLoading, false)

	parsed, _ := common.ParseISO8601(record.Date)
	a.emitLog("Computing panchanga for " + common.FormatDisplay(parsed))

	a.TrackEvent("panchanga_submitted", map[string]interface{}{
		"lang":         record.Lang,
		"has_title":    record.Title != "",
		"has_location": record.Location != "",
	})

	result, err := a.client.Submit(a.ctx, record)
	if err != nil {
		var svcErr *panchanga.ServiceError
		if errors.As(err, &svcErr) {
			// The service completed the request and reported why it failed;
			// its message goes to the user verbatim
			log.Printf("Panchanga calculation failed: %s", svcErr.Message)
			return nil, svcErr
		}
		log.Printf("Panchanga request failed: %v", err)
		return nil, fmt.Errorf("an error occurred while fetching panchanga data")
	}

	update := viewmodel.BuildRenderUpdate(result, record.Title)

	// Persist for the insights handoff. Best effort: a storage failure is
	// logged and never undoes the rendering that already happened.
	if payload, err := insights.NewPayload(*result, record); err != nil {
		log.Printf("Failed to build insight payload: %v", err)
	} else if err := a.resultStore.Persist(store.Key, payload); err != nil {
		log.Printf("Failed to persist insight payload: %v", err)
	}

	// Fan out to both panels without waiting on either; completion order is
	// indeterminate and does not matter
	vizReq := record.VisualizationRequest()
	go a.skyshot.Load(a.ctx, vizReq)
	go a.solarSystem.Load(a.ctx, vizReq)

	a.emitLog("Panchanga result rendered")

	return &update, nil
}

// AcquireLocation resolves the device position once and returns the
// formatted "latitude, longitude" string for the location field. On failure
// the field is left for the frontend to keep untouched; the error message is
// what the user sees.
func (a *App) AcquireLocation() (string, error) {
	pos, err := a.locator.Acquire(a.ctx)
	if err != nil {
		log.Printf("Geolocation failed: %v", err)
		return "", fmt.Errorf("unable to retrieve your location")
	}

	a.emitLog("Acquired location: " + pos.Format())

	return pos.Format(), nil
}

// OpenInsights hands the last persisted result off to the insights page and
// returns the page document for the frontend to navigate into
func (a *App) OpenInsights() (string, error) {
	a.TrackEvent("insights_opened", nil)

	page, err := a.transfer.Open(a.ctx)
	if err != nil {
		log.Printf("Insights handoff failed: %v", err)
		return "", err
	}

	return string(page), nil
}
