package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Type enumerates the event kinds. Stored as text but never free-form.
type Type string

const (
	TypeFeeding     Type = "Feeding"
	TypeWetDiaper   Type = "Wet Diaper"
	TypeDirtyDiaper Type = "Dirty Diaper"
)

// Types lists the known event types in alphabetical order.
func Types() []Type {
	return []Type{TypeDirtyDiaper, TypeFeeding, TypeWetDiaper}
}

func (t Type) Valid() bool {
	switch t {
	case TypeFeeding, TypeWetDiaper, TypeDirtyDiaper:
		return true
	default:
		return false
	}
}

// ParseType accepts either the stored display name or the URL slug form
// (feeding, wet-diaper, dirty-diaper).
func ParseType(raw string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "feeding":
		return TypeFeeding, true
	case "wet diaper", "wet-diaper":
		return TypeWetDiaper, true
	case "dirty diaper", "dirty-diaper":
		return TypeDirtyDiaper, true
	default:
		return "", false
	}
}

// Event is the sole persisted entity: one care event attributed to a logical
// day. Date and Time hold the canonical stored forms (YYYY-MM-DD and
// zero-padded HH:MM:SS.fffffffff) so text ordering matches chronology.
type Event struct {
	ID              snowflake.ID `json:"id" gorm:"primaryKey"`
	CreatedAt       time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	Date            string       `json:"event_date" gorm:"column:event_date;type:text;not null;index:ix_baby_events_date"`
	Time            string       `json:"event_time" gorm:"column:event_time;type:text;not null"`
	Type            Type         `json:"event_type" gorm:"column:event_type;type:text;not null"`
	DurationMinutes int          `json:"event_duration" gorm:"column:event_duration;not null;default:0"`
}

// TableName sets the database table name.
func (Event) TableName() string { return "baby_events" }

// SubmitRequest carries a raw submission before normalization. The three
// indicators mirror the form buttons; Duration, Date, and Time are raw user
// input and may be absent or malformed.
type SubmitRequest struct {
	Feeding     bool
	WetDiaper   bool
	DirtyDiaper bool
	Duration    string
	Date        string
	Time        string
}

type UpdateTypeRequest struct {
	ID   string
	Type string
}

type Response struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Date            string    `json:"event_date"`
	Time            string    `json:"event_time"`
	Type            Type      `json:"event_type"`
	DurationMinutes int       `json:"event_duration"`
}

var (
	ErrMissingType = errors.New("missing_event_type")
	ErrInvalidType = errors.New("invalid_event_type")
	ErrInvalidID   = errors.New("invalid_id")
	ErrDuplicateID = errors.New("duplicate_id")
	ErrNotFound    = errors.New("not_found")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
