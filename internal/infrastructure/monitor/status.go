package monitor

import "time"

type Status struct {
	SQLite    bool      `json:"sqlite"`
	Error     string    `json:"error,omitempty"`
	LastCheck time.Time `json:"last_check"`
}
