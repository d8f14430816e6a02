package logger

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"empty", "", 10, ""},
		{"plain", "Vokabeln lernen", 0, "Vokabeln lernen"},
		{"strips newlines", "line1\nline2\r\x00", 0, "line1line2"},
		{"invalid utf8", "ok\xffok", 0, "okok"},
		{"truncates", "abcdefghij", 4, "abcd..."},
		{"keeps runes whole", "Größe", 3, "Gr..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SanitizeString(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("SanitizeString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("result %q is not valid UTF-8", got)
			}
		})
	}
}

func TestSanitizeHelpers(t *testing.T) {
	t.Parallel()

	if got := SanitizeTitle(strings.Repeat("x", 200)); len(got) != MaxTitleLength+3 {
		t.Errorf("SanitizeTitle() len = %d", len(got))
	}
	if got := SanitizePath("/api/v1/tasks\n"); got != "/api/v1/tasks" {
		t.Errorf("SanitizePath() = %q", got)
	}
	if got := SanitizeError(nil); got != "" {
		t.Errorf("SanitizeError(nil) = %q", got)
	}
	if got := SanitizeError(errors.New("boom\x07")); got != "boom" {
		t.Errorf("SanitizeError() = %q", got)
	}
}

func TestLoggers(t *testing.T) {
	t.Parallel()

	for _, debug := range []bool{true, false} {
		l, err := NewProductionLogger(debug)
		if err != nil {
			t.Fatalf("NewProductionLogger(%v) error = %v", debug, err)
		}
		if l.Core().Enabled(-1) != debug {
			t.Errorf("debug level enabled = %v, want %v", !debug, debug)
		}
		d, err := NewDevelopmentLogger(debug)
		if err != nil {
			t.Fatalf("NewDevelopmentLogger(%v) error = %v", debug, err)
		}
		_ = d
	}
	if err := Sync(nil); err != nil {
		t.Errorf("Sync(nil) error = %v", err)
	}
}
