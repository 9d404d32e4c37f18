// internal/config/upstream.go
package config

import (
	"time"
)

func (u *UpstreamConfig) RequestTimeout() time.Duration {
	if u.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(u.Timeout) * time.Second
}

func (h *HousekeepingConfig) IdleWindow() time.Duration {
	return time.Duration(h.WorkspaceIdle) * time.Minute
}
