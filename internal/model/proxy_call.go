package model

import "time"

// ProxyCall is one request relayed by the proxy function, kept for audit.
type ProxyCall struct {
	ID         int64         `json:"id"`
	Method     string        `json:"method"`
	Endpoint   string        `json:"endpoint"`
	Status     int           `json:"status"`
	Duration   time.Duration `json:"duration_ns"`
	Error      string        `json:"error,omitempty"`
	RemoteAddr string        `json:"remote_addr,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
