package validate

import "strings"

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// MaxLen counts bytes, matching how message columns are sized.
func MaxLen(value string, limit int) bool {
	return len(value) <= limit
}
