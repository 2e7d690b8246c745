package breach

import (
	"crypto/sha1" //nolint:gosec // SHA-1 задан протоколом range API, не используется для защиты
	"encoding/hex"
	"strings"
)

const (
	// PrefixLen длина префикса хеша, который уходит в сеть
	PrefixLen = 5

	// DigestLen длина SHA-1 в hex-представлении
	DigestLen = sha1.Size * 2

	// SuffixLen длина суффикса, который сравнивается только локально
	SuffixLen = DigestLen - PrefixLen
)

// Hash вычисляет SHA-1 от UTF-8 байтов пароля и возвращает его
// в виде hex-строки в верхнем регистре (40 символов).
// Алгоритм фиксирован индексом удаленного сервиса и не может быть заменен.
func Hash(password string) string {
	sum := sha1.Sum([]byte(password)) //nolint:gosec
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Split делит digest на префикс (первые 5 символов) и суффикс (остальное).
// Гарантирует prefix+suffix == digest.
func Split(digest string) (prefix, suffix string) {
	if len(digest) <= PrefixLen {
		return digest, ""
	}
	return digest[:PrefixLen], digest[PrefixLen:]
}

// IsPrefix проверяет, что строка является корректным префиксом диапазона
func IsPrefix(s string) bool {
	return len(s) == PrefixLen && isHex(s)
}

// IsSuffix проверяет, что строка является корректным суффиксом
func IsSuffix(s string) bool {
	return len(s) == SuffixLen && isHex(s)
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'F':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
