package errors

import (
	"strings"
	"testing"
)

func TestValidateItemID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "widget-1", false},
		{"uuid style", "3f2a9c1e-5b4d-4e8f-9a6b-7c1d2e3f4a5b", false},
		{"unicode", "gráfico", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"max length ok", strings.Repeat("a", 128), false},
		{"control character", "a\x01b", true},
		{"newline", "a\nb", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"traversal", "..secret", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItemID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItemID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidItem {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidItem)
			}
		})
	}
}

func TestValidateLayoutName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "dashboard", false},
		{"with dash and digits", "home-v2", false},
		{"empty", "", true},
		{"too long", strings.Repeat("n", 129), true},
		{"path separator", "a/b", true},
		{"windows separator", `a\b`, true},
		{"traversal", "a..b", true},
		{"hidden file", ".profile", true},
		{"control character", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayoutName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayoutName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidName {
				t.Errorf("code = %s, want %s", GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}
