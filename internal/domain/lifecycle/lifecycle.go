// Package lifecycle holds process-wide lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds start hooks (pings, migrations) and graceful shutdown.
const DefaultTimeout = 15 * time.Second
