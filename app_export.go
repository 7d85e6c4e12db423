package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"panchanga-desktop/internal/panchanga"
	"panchanga-desktop/internal/utils/naming"
)

// Export control labels mirrored to the frontend
const (
	exportIdleLabel = "Download 20-Year iCal (.ics)"
	exportBusyLabel = "Generating..."
)

// ExportState mirrors the export control's disabled flag and label
type ExportState struct {
	Busy  bool   `json:"busy"`
	Label string `json:"label"`
}

// ExportICal generates the recurrence calendar for an event and saves it to
// the download directory, returning the saved file path. The export control
// state is restored on every outcome, success or failure.
func (a *App) ExportICal(record panchanga.RequestRecord) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}

	wailsRuntime.EventsEmit(a.ctx, EventExportState, ExportState{Busy: true, Label: exportBusyLabel})
	defer wailsRuntime.EventsEmit(a.ctx, EventExportState, ExportState{Busy: false, Label: exportIdleLabel})

	a.TrackEvent("ical_export_started", map[string]interface{}{
		"has_title": record.Title != "",
	})

	data, err := a.client.GenerateICal(a.ctx, record)
	if err != nil {
		var svcErr *panchanga.ServiceError
		if errors.As(err, &svcErr) {
			log.Printf("iCal generation failed: %s", svcErr.Message)
			return "", fmt.Errorf("error generating iCal: %s", svcErr.Message)
		}
		log.Printf("iCal request failed: %v", err)
		return "", fmt.Errorf("failed to generate iCal file")
	}

	// The body is an opaque calendar artifact; save it under the derived name
	filename := naming.ICalFilename(record.Title)
	outPath := filepath.Join(a.GetDownloadPath(), filename)

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save iCal file: %w", err)
	}

	log.Printf("Saved: %s", outPath)
	a.emitLog("Saved calendar to " + outPath)

	a.TrackEvent("ical_export_complete", map[string]interface{}{
		"bytes": len(data),
	})

	// Auto-open download folder
	if a.autoOpenDownloads() {
		if err := a.OpenDownloadFolder(); err != nil {
			log.Printf("Failed to open download folder: %v", err)
		}
	}

	return outPath, nil
}

// autoOpenDownloads reads the auto-open preference under the lock; settings
// saves replace the settings pointer concurrently
func (a *App) autoOpenDownloads() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings.AutoOpenDownloadDir
}

// SetDownloadPath sets the download directory
func (a *App) SetDownloadPath(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}

	a.downloadPath = path
	return nil
}

// GetDownloadPath returns the current download directory
func (a *App) GetDownloadPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.downloadPath
}

// SelectDownloadFolder opens a folder picker dialog
func (a *App) SelectDownloadFolder() (string, error) {
	path, err := wailsRuntime.OpenDirectoryDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title:            "Select Download Folder",
		DefaultDirectory: a.GetDownloadPath(),
	})
	if err != nil {
		return "", err
	}

	if path != "" {
		a.SetDownloadPath(path)
	}

	return path, nil
}

// OpenDownloadFolder opens the download folder in the system file manager
func (a *App) OpenDownloadFolder() error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", a.GetDownloadPath())
	case "windows":
		cmd = exec.Command("explorer", a.GetDownloadPath())
	default: // Linux and others
		cmd = exec.Command("xdg-open", a.GetDownloadPath())
	}
	return cmd.Start()
}
