// Package config loads the library configuration from the environment.
//
// Configuration is assembled from a .env file (when present) and environment
// variables, with defaults taken from `default` struct tags on the partial
// Config structs each package defines. Nested keys map to underscore-joined
// variables, e.g. STORAGE_BUCKET, OUTPUT_DIR, LOG_LEVEL.
//
// The host service loads one Config at startup and constructs the storage
// client, logger, and output service from its sections; nothing in this
// module reads the environment after that point.
package config
