package utils

import "strconv"

// ParseID parses a decimal row id, as found in paths and form fields.
func ParseID(raw string) (uint64, error) {
	return strconv.ParseUint(raw, 10, 64)
}

// FormatID renders a row id the way ParseID reads it.
func FormatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
