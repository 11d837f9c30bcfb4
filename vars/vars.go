package vars

import "strings"

// FirstNonZero returns the first value that is not the zero value.
// Settings are layered as FirstNonZero(flag, config, default).
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}

// StrToBool parses a command line switch value. Unrecognized values are false.
func StrToBool(str string) bool {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "on", "1":
		return true
	}
	return false
}
