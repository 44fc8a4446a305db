package utils

import (
	"fmt"
	"time"
)

// RunIDLayout formats the id shared by all journal entries of one run.
const RunIDLayout = "20060102T150405Z"

// RunID returns the run id for a run started at t.
func RunID(t time.Time) string {
	return t.UTC().Format(RunIDLayout)
}

// OrDash returns s, or "-" if s is empty.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Plural formats a count with its noun, e.g. "1 region", "3 regions".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
