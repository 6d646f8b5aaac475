package state

import (
	"time"

	"trr/report"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:        time.Now(),
		Now:          time.Now,
		DefaultStyle: report.DefaultStylesheet(),
	}
}
