package server

import (
	"time"

	"github.com/nestlog/nestlog/internal/timeparse"
)

// Display layouts used by the list and detail views. Canonical forms stay in
// the engine and store; formatting happens only here.
const (
	displayDateLayout = "01-02-2006"
	displayTimeLayout = "03:04:05 PM"
)

func displayDate(canonical string) string {
	t, err := time.Parse(timeparse.DateLayout, canonical)
	if err != nil {
		return canonical
	}
	return t.Format(displayDateLayout)
}

func displayTime(canonical string) string {
	t, err := time.Parse(timeparse.TimeLayout, canonical)
	if err != nil {
		return canonical
	}
	return t.Format(displayTimeLayout)
}
