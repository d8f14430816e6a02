package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/logger"
	"github.com/benvon/quest-planner/internal/planner"
)

// PlannerHandler exposes the planner service over HTTP
type PlannerHandler struct {
	svc    *planner.Service
	logger *zap.Logger
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(svc *planner.Service, log *zap.Logger) *PlannerHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlannerHandler{svc: svc, logger: log}
}

// RegisterRoutes registers planner routes on the given router.
// The router should already carry the API prefix (e.g. /api/v1).
func (h *PlannerHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/state", h.GetState).Methods("GET")

	r.HandleFunc("/tasks", h.ListTasks).Methods("GET")
	r.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	r.HandleFunc("/tasks/completed", h.ClearCompleted).Methods("DELETE")
	r.HandleFunc("/tasks/{id}/complete", h.CompleteTask).Methods("POST")
	r.HandleFunc("/tasks/{id}", h.DeleteTask).Methods("DELETE")
	r.HandleFunc("/templates", h.ListTemplates).Methods("GET")
	r.HandleFunc("/templates/{id}", h.ApplyTemplate).Methods("POST")

	r.HandleFunc("/dictionary", h.ListWords).Methods("GET")
	r.HandleFunc("/dictionary", h.CreateWord).Methods("POST")
	r.HandleFunc("/dictionary/import", h.ImportWords).Methods("POST")
	r.HandleFunc("/dictionary/export", h.ExportWords).Methods("GET")
	r.HandleFunc("/dictionary/{id}", h.DeleteWord).Methods("DELETE")

	r.HandleFunc("/quests", h.ListQuests).Methods("GET")
	r.HandleFunc("/quests/{id}/claim", h.ClaimQuest).Methods("POST")
	r.HandleFunc("/profile", h.GetProfile).Methods("GET")
	r.HandleFunc("/profile/dark-mode", h.ToggleDarkMode).Methods("POST")
	r.HandleFunc("/skills", h.ListSkills).Methods("GET")
	r.HandleFunc("/skills/{id}/unlock", h.UnlockSkill).Methods("POST")
	r.HandleFunc("/plan", h.GetPlan).Methods("GET")

	r.HandleFunc("/backups", h.ListBackups).Methods("GET")
	r.HandleFunc("/backups", h.CreateBackup).Methods("POST")
	r.HandleFunc("/backups/{key}", h.GetBackup).Methods("GET")
	r.HandleFunc("/backups/{key}/restore", h.RestoreBackup).Methods("POST")
	r.HandleFunc("/backups/{key}", h.DeleteBackup).Methods("DELETE")
	r.HandleFunc("/export", h.Export).Methods("GET")
	r.HandleFunc("/import", h.Import).Methods("POST")
	r.HandleFunc("/data", h.ClearAll).Methods("DELETE")
}

// fail writes the response for a service error, logging anything unexpected
func (h *PlannerHandler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, known := statusFor(err)
	if known {
		respondJSONError(w, status, http.StatusText(status), err.Error())
		return
	}
	h.logger.Error("request_failed",
		zap.String("method", r.Method),
		zap.String("path", logger.SanitizePath(r.URL.Path)),
		zap.String("error", logger.SanitizeError(err)),
	)
	respondJSONError(w, status, http.StatusText(status), fallback)
}

// GetState returns the profile, collections, quests and plan in one response
func (h *PlannerHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.State(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load state")
		return
	}
	respondJSON(w, http.StatusOK, state)
}
