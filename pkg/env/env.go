// Package env reads process environment variables with defaults.
package env

import "os"

// Get looks up key in the process environment. Unset or empty variables
// yield fallback.
func Get(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
