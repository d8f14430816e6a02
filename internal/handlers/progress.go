package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ListQuests returns every quest re-evaluated against the current time
func (h *PlannerHandler) ListQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.svc.Quests(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load quests")
		return
	}
	respondJSON(w, http.StatusOK, quests)
}

// ClaimQuest collects the reward of a completed quest
func (h *PlannerHandler) ClaimQuest(w http.ResponseWriter, r *http.Request) {
	claim, err := h.svc.ClaimQuest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err, "Failed to claim quest")
		return
	}
	respondJSON(w, http.StatusOK, claim)
}

// GetProfile returns level, xp and skill point totals
func (h *PlannerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Profile(r.Context()))
}

// ToggleDarkMode flips the theme preference
func (h *PlannerHandler) ToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	dark, err := h.svc.ToggleDarkMode(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to save preference")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"dark_mode": dark})
}

// ListSkills returns the skill tree
func (h *PlannerHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Skills(r.Context()))
}

// UnlockSkill spends a skill point
func (h *PlannerHandler) UnlockSkill(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.UnlockSkill(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err, "Failed to unlock skill")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
