package domain

import (
	"context"

	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
)

// Results carry an explicit ok flag instead of an error return: callers
// always receive a structurally valid, empty-but-labeled value when the
// store is unavailable, never a raw store error.

// DayCounts maps event type to count for one date. Types with no events on
// that date are absent from the map.
type DayCounts struct {
	OK     bool                     `json:"ok"`
	Reason string                   `json:"reason,omitempty"`
	Date   string                   `json:"date"`
	Counts map[eventdomain.Type]int `json:"event_counts"`
}

// PivotRow summarizes one date's counts across all event types observed on
// that date. Dates with zero events never produce a row.
type PivotRow struct {
	Date   string                   `json:"date"`
	Counts map[eventdomain.Type]int `json:"counts"`
}

type DayWiseCounts struct {
	OK     bool       `json:"ok"`
	Reason string     `json:"reason,omitempty"`
	Rows   []PivotRow `json:"day_wise_counts"`
}

// DetailEntry identifies one event of the requested type on the requested
// date, in canonical date and time forms.
type DetailEntry struct {
	ID   string `json:"event_id"`
	Date string `json:"event_date"`
	Time string `json:"event_time"`
}

type DayDetails struct {
	OK     bool             `json:"ok"`
	Reason string           `json:"reason,omitempty"`
	Date   string           `json:"date"`
	Type   eventdomain.Type `json:"event_type"`
	Events []DetailEntry    `json:"events"`
}

type Service interface {
	// DayCounts groups the given date's events by type. Empty date means
	// today.
	DayCounts(ctx context.Context, date string) DayCounts
	// DayWiseCounts pivots the whole log into one row per date that has
	// events, ordered by date descending.
	DayWiseCounts(ctx context.Context) DayWiseCounts
	// DayEventDetails lists events of one type on one date, most recent
	// first. Empty date means today; an invalid type defaults to Feeding.
	DayEventDetails(ctx context.Context, date string, t eventdomain.Type) DayDetails
}
