// Package lifecycle holds shared constants for application lifecycle management.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown operations (DB ping, HTTP drain).
const DefaultTimeout = 15 * time.Second
