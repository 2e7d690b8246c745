package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyPassword пароль не задан
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrInvalidEncoding пароль не является корректной UTF-8 строкой
	ErrInvalidEncoding = errors.New("password must be valid UTF-8")
)

// ValidatePassword проверяет, что пароль можно однозначно захешировать:
// непустая строка в UTF-8. Требования к сложности пароля не проверяются.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}

	if !utf8.ValidString(password) {
		return ErrInvalidEncoding
	}

	return nil
}

// ValidateBaseURL проверяет base URL range endpoint
// Допускаются только абсолютные http(s) URL без query и fragment
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https scheme, got %q", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if u.RawQuery != "" || u.Fragment != "" || strings.Contains(raw, "?") {
		return fmt.Errorf("base URL must not contain query or fragment")
	}

	return nil
}
