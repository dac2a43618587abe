package instance

import "os"

// GetID returns the identifier of this api instance, falling back to a
// stable default for local runs.
func GetID() string {
	if id := os.Getenv("TECHFINDER_INSTANCE_ID"); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	return "local"
}
