package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// TypeCount is one grouped row of the per-day count query.
type TypeCount struct {
	Type  Type `gorm:"column:event_type"`
	Count int  `gorm:"column:count"`
}

// DateTypeCount is one grouped row of the all-days count query.
type DateTypeCount struct {
	Date  string `gorm:"column:event_date"`
	Type  Type   `gorm:"column:event_type"`
	Count int    `gorm:"column:count"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, event *Event) error
	// UpdateType reports false when no row with the given id exists.
	UpdateType(ctx context.Context, db *gorm.DB, id snowflake.ID, t Type) (bool, error)
	// Delete reports false when no row with the given id exists.
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Event, error)
	// ListAll returns every event ordered by date desc, time desc.
	ListAll(ctx context.Context, db *gorm.DB) ([]Event, error)
	ListByDate(ctx context.Context, db *gorm.DB, date string) ([]Event, error)
	// ListByDateAndType returns matching events ordered by time desc.
	ListByDateAndType(ctx context.Context, db *gorm.DB, date string, t Type) ([]Event, error)
	CountByTypeOnDate(ctx context.Context, db *gorm.DB, date string) ([]TypeCount, error)
	// CountByDateAndType groups the whole log by (date, type), ordered by
	// date desc then type alphabetically.
	CountByDateAndType(ctx context.Context, db *gorm.DB) ([]DateTypeCount, error)
}
