package patch

import "strings"

// Coalesce returns *ptr, or fallback when ptr is nil.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Trimmed is the whitespace-trimmed value of an optional string field.
func Trimmed(ptr *string) string {
	return strings.TrimSpace(Coalesce(ptr, ""))
}

// NonBlank treats a nil or blank optional string as absent.
func NonBlank(ptr *string, fallback string) string {
	if v := Trimmed(ptr); v != "" {
		return v
	}
	return fallback
}
