package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ClampLimit applies the default for missing or non-positive values and caps the rest.
func ClampLimit(value string, defaultValue, maxValue int) int {
	limit := ParseInt(value, defaultValue)
	if limit > maxValue {
		return maxValue
	}
	return limit
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func StringToPointer(s string) *string {
	return &s
}

func IntToPointer(i int) *int {
	return &i
}
