// Package validation holds the shared request validator and text sanitizing.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/benvon/quest-planner/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("task_category", validateTaskCategory); err != nil {
		panic(fmt.Sprintf("failed to register task_category validator: %v", err))
	}
	if err := Validate.RegisterValidation("quest_status", validateQuestStatus); err != nil {
		panic(fmt.Sprintf("failed to register quest_status validator: %v", err))
	}
	if err := Validate.RegisterValidation("notblank", validateNotBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validator: %v", err))
	}
}

// validateTaskCategory accepts an empty value so the default category applies
func validateTaskCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.TaskCategory(value).IsValid()
}

func validateQuestStatus(fl validator.FieldLevel) bool {
	return models.QuestStatus(fl.Field().String()).IsValid()
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateTaskCategory validates a TaskCategory string value
func ValidateTaskCategory(value string) error {
	if value == "" || models.TaskCategory(value).IsValid() {
		return nil
	}
	return fmt.Errorf("invalid category: %s (must be General, Health, Work, Learning or Routine)", value)
}

// FieldErrors flattens validator errors into "field: rule" messages
func FieldErrors(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return out
}
