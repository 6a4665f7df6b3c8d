package utils

import "time"

// Clock отдаёт текущее время. В тестах подменяется фиксированными часами.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
