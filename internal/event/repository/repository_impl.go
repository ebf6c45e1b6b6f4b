package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() eventdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, e *eventdomain.Event) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO baby_events (id, created_at, event_date, event_time, event_type, event_duration)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.CreatedAt,
		e.Date,
		e.Time,
		e.Type,
		e.DurationMinutes,
	).Error
}

func (r *repo) UpdateType(ctx context.Context, db *gorm.DB, id snowflake.ID, t eventdomain.Type) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE baby_events SET event_type = ? WHERE id = ?`,
		t,
		id,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM baby_events WHERE id = ?`,
		id,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*eventdomain.Event, error) {
	var event eventdomain.Event
	err := db.WithContext(ctx).Raw(
		`SELECT id, created_at, event_date, event_time, event_type, event_duration
		 FROM baby_events WHERE id = ?`,
		id,
	).Scan(&event).Error
	if err != nil {
		return nil, err
	}
	if event.ID == 0 {
		return nil, nil
	}
	return &event, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]eventdomain.Event, error) {
	var events []eventdomain.Event
	err := db.WithContext(ctx).Raw(
		`SELECT id, created_at, event_date, event_time, event_type, event_duration
		 FROM baby_events ORDER BY event_date DESC, event_time DESC`,
	).Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repo) ListByDate(ctx context.Context, db *gorm.DB, date string) ([]eventdomain.Event, error) {
	var events []eventdomain.Event
	err := db.WithContext(ctx).Raw(
		`SELECT id, created_at, event_date, event_time, event_type, event_duration
		 FROM baby_events WHERE event_date = ? ORDER BY event_time DESC`,
		date,
	).Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repo) ListByDateAndType(ctx context.Context, db *gorm.DB, date string, t eventdomain.Type) ([]eventdomain.Event, error) {
	var events []eventdomain.Event
	err := db.WithContext(ctx).Raw(
		`SELECT id, created_at, event_date, event_time, event_type, event_duration
		 FROM baby_events WHERE event_date = ? AND event_type = ?
		 ORDER BY event_time DESC`,
		date,
		t,
	).Scan(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *repo) CountByTypeOnDate(ctx context.Context, db *gorm.DB, date string) ([]eventdomain.TypeCount, error) {
	var counts []eventdomain.TypeCount
	err := db.WithContext(ctx).Raw(
		`SELECT event_type, COUNT(id) AS count
		 FROM baby_events WHERE event_date = ?
		 GROUP BY event_type`,
		date,
	).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *repo) CountByDateAndType(ctx context.Context, db *gorm.DB) ([]eventdomain.DateTypeCount, error) {
	var counts []eventdomain.DateTypeCount
	err := db.WithContext(ctx).Raw(
		`SELECT event_date, event_type, COUNT(id) AS count
		 FROM baby_events
		 GROUP BY event_date, event_type
		 ORDER BY event_date DESC, event_type ASC`,
	).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
