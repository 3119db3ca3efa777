package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"time"
)

type clientCounter interface {
	Len() int
}

type HealthHandler struct {
	clients   clientCounter
	exportDir string
	version   string
}

func NewHealthHandler(clients clientCounter, exportDir string) *HealthHandler {
	return &HealthHandler{clients: clients, exportDir: exportDir, version: buildVersion()}
}

// buildVersion is the main module version stamped by the go tool, "devel"
// for builds outside a tagged module.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "devel"
	}
	return info.Main.Version
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Readiness reports down while the export directory is missing, since every
// snapshot would fail until it exists.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	exportStatus := "ok"
	httpStatus := http.StatusOK

	if err := checkDir(h.exportDir); err != nil {
		slog.Warn("readiness check failed: export directory unusable", "error", err, "dir", h.exportDir)
		exportStatus = "down"
		httpStatus = http.StatusServiceUnavailable
	}

	overallStatus := "ok"
	if httpStatus != http.StatusOK {
		overallStatus = "down"
	}

	RespondJSON(w, httpStatus, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"clients":   h.clients.Len(),
		"checks": map[string]string{
			"export_dir": exportStatus,
		},
	})
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
