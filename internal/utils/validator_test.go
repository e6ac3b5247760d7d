package utils

import (
	"strings"
	"testing"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
		errType string
	}{
		{
			name:    "valid http URL",
			url:     "http://example.com",
			wantErr: false,
		},
		{
			name:    "valid https URL",
			url:     "https://google.com/search?q=test",
			wantErr: false,
		},
		{
			name:    "valid URL with path and query",
			url:     "https://api.github.com/repos/user/repo?sort=updated",
			wantErr: false,
		},
		{
			name:    "empty URL",
			url:     "",
			wantErr: true,
			errType: "validation",
		},
		{
			name:    "URL without scheme",
			url:     "example.com",
			wantErr: true,
			errType: "validation",
		},
		{
			name:    "URL with invalid scheme",
			url:     "ftp://example.com",
			wantErr: true,
			errType: "validation",
		},
		{
			name:    "URL without host",
			url:     "https://",
			wantErr: true,
			errType: "validation",
		},
		{
			name:    "invalid URL format",
			url:     "not-a-url",
			wantErr: true,
			errType: "validation",
		},
		{
			name:    "URL too long",
			url:     "https://example.com/" + strings.Repeat("a", 2100),
			wantErr: true,
			errType: "validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			
			if tt.wantErr {
				if err == nil {
					t.Errorf("ValidateURL() expected error, got nil")
					return
				}
				
				if tt.errType == "validation" && apperrors.GetValidationError(err) == nil {
					t.Errorf("ValidateURL() expected validation error, got %T", err)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateURL() unexpected error = %v", err)
				}
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "https://example.com",
			expected: "https://example.com",
		},
		{
			name:     "string with spaces",
			input:    "  https://example.com  ",
			expected: "https://example.com",
		},
		{
			name:     "string with control characters",
			input:    "https://example.com\x00\x01\x02",
			expected: "https://example.com",
		},
		{
			name:     "string with tabs and newlines",
			input:    "https://example.com\t\n\r",
			expected: "https://example.com",
		},
		{
			name:     "string with DEL",
			input:    "Mozilla/5.0\x7f",
			expected: "Mozilla/5.0",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only spaces",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeInput(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeInput() = %q, want %q", result, tt.expected)
			}
		})
	}
}
func TestValidateShortCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "generated code", code: "abc123", wantErr: false},
		{name: "custom alias", code: "spring-sale_2026", wantErr: false},
		{name: "max length", code: strings.Repeat("a", MaxShortCodeLength), wantErr: false},
		{name: "empty", code: "", wantErr: true},
		{name: "too long", code: strings.Repeat("a", MaxShortCodeLength+1), wantErr: true},
		{name: "dotted code", code: "a.b", wantErr: false},
		{name: "unicode", code: "ссылка", wantErr: false},
		{name: "unicode max length", code: strings.Repeat("я", MaxShortCodeLength), wantErr: false},
		{name: "path traversal", code: "../etc", wantErr: true},
		{name: "backslash", code: `a\b`, wantErr: true},
		{name: "space", code: "abc 123", wantErr: true},
		{name: "control char", code: "abc\x00", wantErr: true},
		{name: "invalid utf8", code: "abc\xff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShortCode(tt.code)
			if tt.wantErr {
				if apperrors.GetValidationError(err) == nil {
					t.Errorf("ValidateShortCode(%q) expected validation error, got %v", tt.code, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateShortCode(%q) unexpected error = %v", tt.code, err)
			}
		})
	}
}
