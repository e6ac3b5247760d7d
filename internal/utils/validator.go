package utils

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/Kosench/linkpulse/internal/errors"
)

const MaxShortCodeLength = 64

// ValidateURL проверяет, что цель редиректа - абсолютный http(s) URL
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return apperrors.NewValidationError("url", "URL cannot be empty")
	}

	if len(rawURL) > 2048 {
		return apperrors.NewValidationError("url", "URL is too long (max 2048 characters)")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return apperrors.NewValidationError("url", fmt.Sprintf("invalid URL format: %v", err))
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return apperrors.NewValidationError("url", "URL must start with http:// or https://")
	}

	if parsedURL.Host == "" {
		return apperrors.NewValidationError("url", "URL must contain a valid host")
	}

	return nil
}

// ValidateShortCode - непустой сегмент пути не длиннее MaxShortCodeLength символов,
// без '/', '\\', пробелов и управляющих символов
func ValidateShortCode(code string) error {
	if code == "" {
		return apperrors.NewValidationError("short_code", "short code cannot be empty")
	}

	if utf8.RuneCountInString(code) > MaxShortCodeLength {
		return apperrors.NewValidationError("short_code", fmt.Sprintf("short code is too long (max %d characters)", MaxShortCodeLength))
	}

	for _, r := range code {
		if r == '/' || r == '\\' || r == utf8.RuneError || unicode.IsSpace(r) || unicode.IsControl(r) {
			return apperrors.NewValidationError("short_code", fmt.Sprintf("short code contains invalid character %q", r))
		}
	}

	return nil
}

func SanitizeInput(input string) string {
	// Удаляем управляющие символы и обрезаем пробелы
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		if r == 0x7f {
			return -1
		}
		return r
	}, input)

	return strings.TrimSpace(result)
}
