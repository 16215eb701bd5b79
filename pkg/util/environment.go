package util

import (
	"os"
	"strings"
)

// GetEnvironmentVariables snapshots the process environment into a map, so
// callers can pull several TRANSITCHAT_ settings without repeated os.Getenv
// calls.
func GetEnvironmentVariables() map[string]string {
	env := map[string]string{}

	for _, entry := range os.Environ() {
		if name, value, found := strings.Cut(entry, "="); found {
			env[name] = value
		}
	}

	return env
}
