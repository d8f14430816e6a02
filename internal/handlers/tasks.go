package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/benvon/quest-planner/internal/models"
	"github.com/benvon/quest-planner/internal/planner"
	"github.com/benvon/quest-planner/internal/store"
	"github.com/benvon/quest-planner/internal/validation"
)

// CreateTaskRequest represents a create task request
type CreateTaskRequest struct {
	Title     string              `json:"title" validate:"required,notblank,max=500"`
	XP        int                 `json:"xp" validate:"omitempty,min=1,max=1000"`
	Category  models.TaskCategory `json:"category" validate:"task_category"`
	Important bool                `json:"important"`
	Urgent    bool                `json:"urgent"`
}

// ListTasks lists every task, newest first
func (h *PlannerHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Tasks(r.Context()))
}

// CreateTask creates a new task
func (h *PlannerHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	task, ok, err := h.svc.AddTask(r.Context(), store.NewTask{
		Title:     validation.SanitizeText(req.Title),
		XP:        req.XP,
		Category:  req.Category,
		Important: req.Important,
		Urgent:    req.Urgent,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to create task")
		return
	}
	if !ok {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Title is required and cannot be empty after sanitization")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// CompleteTask marks a task as completed and reports the xp awarded
func (h *PlannerHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.svc.CompleteTask(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to complete task")
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// DeleteTask deletes a task
func (h *PlannerHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearCompleted removes all completed tasks
func (h *PlannerHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.ClearCompleted(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to clear completed tasks")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"removed": n})
}

// ListTemplates lists the routine templates
func (h *PlannerHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, planner.Templates())
}

// ApplyTemplate adds the tasks of a routine template
func (h *PlannerHandler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	added, err := h.svc.ApplyTemplate(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err, "Failed to apply template")
		return
	}
	respondJSON(w, http.StatusCreated, added)
}

// GetPlan returns the today/backlog sections, matrix, timeline and suggestions
func (h *PlannerHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Plan(r.Context()))
}
