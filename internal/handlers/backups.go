package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/benvon/quest-planner/internal/backup"
)

// ListBackups lists the retained backups, newest first
func (h *PlannerHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListBackups(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to list backups")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// CreateBackup stores a backup of the current state
func (h *PlannerHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.CreateBackup(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to create backup")
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

// GetBackup returns a single backup
func (h *PlannerHandler) GetBackup(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetBackup(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		h.fail(w, r, err, "Failed to load backup")
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// RestoreBackup replaces the current state with a stored backup
func (h *PlannerHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.RestoreBackup(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		h.fail(w, r, err, "Failed to restore backup")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"restored": b.Key})
}

// DeleteBackup removes a backup
func (h *PlannerHandler) DeleteBackup(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBackup(r.Context(), mux.Vars(r)["key"]); err != nil {
		h.fail(w, r, err, "Failed to delete backup")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export downloads the current state as a JSON file
func (h *PlannerHandler) Export(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(h.svc.Location())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.ExportFileName(now)))
	if err := backup.Export(w, h.svc.Snapshot(r.Context()), now); err != nil {
		h.fail(w, r, err, "Failed to export data")
	}
}

// Import replaces the current state with an uploaded export file
func (h *PlannerHandler) Import(w http.ResponseWriter, r *http.Request) {
	snap, err := backup.Import(r.Body)
	if err != nil {
		h.fail(w, r, err, "Failed to read import file")
		return
	}
	if err := h.svc.Restore(r.Context(), snap); err != nil {
		h.fail(w, r, err, "Failed to import data")
		return
	}
	respondJSON(w, http.StatusOK, h.svc.Profile(r.Context()))
}

// ClearAll deletes all data including backups. It requires ?confirm=true.
func (h *PlannerHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Clearing all data requires confirm=true")
		return
	}
	if err := h.svc.ClearAll(r.Context()); err != nil {
		h.fail(w, r, err, "Failed to clear data")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
