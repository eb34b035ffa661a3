package scanner

import "time"

const (
	defaultInterval      = time.Minute
	defaultFlushSize     = 100
	defaultFlushInterval = 5 * time.Second
)
