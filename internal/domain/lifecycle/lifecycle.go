// Package lifecycle holds timeouts shared by fx start and stop hooks.
package lifecycle

import "time"

const (
	// DefaultTimeout bounds a single start or stop hook.
	DefaultTimeout = 10 * time.Second

	// DrainTimeout bounds how long background writers may keep flushing on shutdown.
	DrainTimeout = 5 * time.Second
)
