package main

import "time"

// Default limits for CLI commands.
const (
	DefaultAuditLimit = 50
	ShutdownTimeout   = 10 * time.Second
)
