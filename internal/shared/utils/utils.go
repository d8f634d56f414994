package utils

import (
	"strconv"
	"strings"

	"book-catalog/internal/shared/apperror"
)

// ParseID parses a path identifier, rejecting anything that is not a positive integer
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Invalid("id", "must be a positive integer")
	}
	return id, nil
}

// ContainsPattern builds an ILIKE pattern matching text anywhere, with
// the LIKE metacharacters escaped so they match literally
func ContainsPattern(text string) string {
	return "%" + EscapeLike(text) + "%"
}

func EscapeLike(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(text)
}

// StringOrEmpty dereferences optional strings for logging and mapping
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NilIfBlank turns "" and whitespace-only strings into nil
func NilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
