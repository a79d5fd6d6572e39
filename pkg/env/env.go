// Package env reads raw environment variables for the bootstrap paths
// that run before the typed config layer is loaded.
package env

import "os"

// Get returns the variable's value, or fallback when it is unset or
// empty.
func Get(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
