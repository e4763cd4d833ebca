// Package validation contains small helpers for optional fields and partial
// update payloads.
package validation

import "time"

func StringPtr(s string) *string {
	return &s
}

func StringPtrValue(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}

// StringPtrIfNotEmpty returns a pointer to s when non-empty, otherwise nil.
func StringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func IntPtr(i int) *int {
	return &i
}

func BoolPtr(b bool) *bool {
	return &b
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

// GetTimeOrEmpty dereferences t, returning the zero time for nil.
func GetTimeOrEmpty(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
