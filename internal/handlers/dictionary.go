package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/benvon/quest-planner/internal/importer"
	"github.com/benvon/quest-planner/internal/store"
	"github.com/benvon/quest-planner/internal/validation"
)

// maxUploadSize bounds spreadsheet uploads held in memory
const maxUploadSize = 10 << 20

// CreateWordRequest represents a create dictionary entry request
type CreateWordRequest struct {
	German  string `json:"german" validate:"required,notblank,max=200"`
	English string `json:"english" validate:"required,notblank,max=200"`
	Example string `json:"example" validate:"max=1000"`
}

// ImportWordsResponse reports a spreadsheet import
type ImportWordsResponse struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ListWords lists every dictionary entry
func (h *PlannerHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Dictionary(r.Context()))
}

// CreateWord adds a dictionary entry
func (h *PlannerHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req CreateWordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, ok, err := h.svc.AddWord(r.Context(), store.NewEntry{
		German:  validation.SanitizeText(req.German),
		English: validation.SanitizeText(req.English),
		Example: validation.SanitizeText(req.Example),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to add word")
		return
	}
	if !ok {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "German and English are required")
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// DeleteWord removes a dictionary entry
func (h *PlannerHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteWord(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete word")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportWords reads an uploaded .xlsx or .csv file from the "file" form field
func (h *PlannerHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Expected a multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Missing file field")
		return
	}
	defer file.Close()

	format, err := importer.FormatFor(header.Filename)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	res, err := importer.Read(file, format, importer.DefaultConfig())
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	added, err := h.svc.ImportWords(r.Context(), res.Entries)
	if err != nil {
		h.fail(w, r, err, "Failed to import words")
		return
	}
	h.logger.Info("dictionary_imported",
		zap.String("format", string(format)),
		zap.Int("added", len(added)),
		zap.Int("row_errors", len(res.Errors)),
	)
	respondJSON(w, http.StatusOK, ImportWordsResponse{
		Added:   len(added),
		Skipped: res.Skipped + len(res.Entries) - len(added),
		Errors:  res.Errors,
	})
}

// ExportWords downloads the dictionary as an xlsx workbook
func (h *PlannerHandler) ExportWords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="dictionary.xlsx"`)
	if err := importer.ExportWords(w, h.svc.Dictionary(r.Context())); err != nil {
		h.logger.Error("dictionary_export_failed", zap.Error(err))
	}
}
