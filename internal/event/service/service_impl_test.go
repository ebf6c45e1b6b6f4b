package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nestlog/nestlog/internal/clock"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	"github.com/nestlog/nestlog/internal/event/repository"
	"github.com/nestlog/nestlog/internal/timeparse"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestSubmitRejectsMissingType(t *testing.T) {
	svc, db := setupEventService(t, time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))

	_, err := svc.Submit(context.Background(), eventdomain.SubmitRequest{
		Duration: "15",
		Date:     "2026-03-14",
		Time:     "09:15:30",
	})
	if !errors.Is(err, eventdomain.ErrMissingType) {
		t.Fatalf("expected ErrMissingType, got %v", err)
	}

	if count := countEvents(t, db); count != 0 {
		t.Fatalf("expected no stored events after rejection, got %d", count)
	}
}

func TestSubmitFeedingTakesPrecedence(t *testing.T) {
	svc, _ := setupEventService(t, time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))

	resp, err := svc.Submit(context.Background(), eventdomain.SubmitRequest{
		Feeding:     true,
		WetDiaper:   true,
		DirtyDiaper: true,
		Duration:    "25",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if resp.Type != eventdomain.TypeFeeding {
		t.Fatalf("expected Feeding, got %s", resp.Type)
	}
	if resp.DurationMinutes != 25 {
		t.Fatalf("expected duration 25, got %d", resp.DurationMinutes)
	}
}

func TestSubmitDurationOnlyAppliesToFeeding(t *testing.T) {
	svc, _ := setupEventService(t, time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))

	resp, err := svc.Submit(context.Background(), eventdomain.SubmitRequest{
		WetDiaper: true,
		Duration:  "25",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if resp.Type != eventdomain.TypeWetDiaper {
		t.Fatalf("expected Wet Diaper, got %s", resp.Type)
	}
	if resp.DurationMinutes != 0 {
		t.Fatalf("expected duration 0 for non-feeding event, got %d", resp.DurationMinutes)
	}
}

func TestSubmitMalformedDurationDefaultsToZero(t *testing.T) {
	svc, _ := setupEventService(t, time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))

	for _, raw := range []string{"abc", "-5", "1.5", ""} {
		resp, err := svc.Submit(context.Background(), eventdomain.SubmitRequest{
			Feeding:  true,
			Duration: raw,
		})
		if err != nil {
			t.Fatalf("submit duration %q: %v", raw, err)
		}
		if resp.DurationMinutes != 0 {
			t.Fatalf("duration %q: expected 0, got %d", raw, resp.DurationMinutes)
		}
	}
}

func TestSubmitNormalizesDateAndTime(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 15, 30, 123456789, time.UTC)
	svc, _ := setupEventService(t, now)

	// Minute-precision time gains zero seconds; blank date falls back to
	// the current day.
	resp, err := svc.Submit(context.Background(), eventdomain.SubmitRequest{
		Feeding: true,
		Time:    "21:30",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.Time != "21:30:00.000000000" {
		t.Fatalf("expected normalized time, got %q", resp.Time)
	}
	if resp.Date != "2026-03-14" {
		t.Fatalf("expected today, got %q", resp.Date)
	}

	// Unparseable time falls back to the clock.
	resp, err = svc.Submit(context.Background(), eventdomain.SubmitRequest{
		Feeding: true,
		Time:    "quarter past nine",
		Date:    "03/14/2026",
	})
	if err != nil {
		t.Fatalf("submit fallback: %v", err)
	}
	if resp.Time != "09:15:30.123456789" {
		t.Fatalf("expected clock time, got %q", resp.Time)
	}
	if resp.Date != "2026-03-14" {
		t.Fatalf("expected today for malformed date, got %q", resp.Date)
	}
}

func TestGetByID(t *testing.T) {
	svc, _ := setupEventService(t, time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))

	created, err := svc.Submit(context.Background(), eventdomain.SubmitRequest{DirtyDiaper: true})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Type != eventdomain.TypeDirtyDiaper {
		t.Fatalf("expected Dirty Diaper, got %s", got.Type)
	}

	if _, err := svc.GetByID(context.Background(), "not-a-number"); !errors.Is(err, eventdomain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "123456789"); !errors.Is(err, eventdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateType(t *testing.T) {
	svc, _ := setupEventService(t, time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))

	created, err := svc.Submit(context.Background(), eventdomain.SubmitRequest{WetDiaper: true})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	updated, err := svc.UpdateType(context.Background(), eventdomain.UpdateTypeRequest{
		ID:   created.ID,
		Type: "dirty-diaper",
	})
	if err != nil {
		t.Fatalf("update type: %v", err)
	}
	if updated.Type != eventdomain.TypeDirtyDiaper {
		t.Fatalf("expected Dirty Diaper, got %s", updated.Type)
	}
	if updated.Time != created.Time || updated.Date != created.Date {
		t.Fatalf("expected timestamps unchanged, got %s %s", updated.Date, updated.Time)
	}

	_, err = svc.UpdateType(context.Background(), eventdomain.UpdateTypeRequest{
		ID:   created.ID,
		Type: "nap",
	})
	if !errors.Is(err, eventdomain.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}

	_, err = svc.UpdateType(context.Background(), eventdomain.UpdateTypeRequest{
		ID:   "123456789",
		Type: "feeding",
	})
	if !errors.Is(err, eventdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, db := setupEventService(t, time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))

	created, err := svc.Submit(context.Background(), eventdomain.SubmitRequest{Feeding: true})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if count := countEvents(t, db); count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, eventdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListOrdering(t *testing.T) {
	svc, _ := setupEventService(t, time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))
	ctx := context.Background()

	submissions := []eventdomain.SubmitRequest{
		{Feeding: true, Date: "2026-03-13", Time: "22:00:00"},
		{WetDiaper: true, Date: "2026-03-14", Time: "06:30:00"},
		{DirtyDiaper: true, Date: "2026-03-14", Time: "08:45:00"},
	}
	for _, req := range submissions {
		if _, err := svc.Submit(ctx, req); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 events, got %d", len(items))
	}
	// Newest date first, newest time first within a date.
	if items[0].Time != "08:45:00.000000000" || items[1].Time != "06:30:00.000000000" {
		t.Fatalf("unexpected ordering: %s, %s", items[0].Time, items[1].Time)
	}
	if items[2].Date != "2026-03-13" {
		t.Fatalf("expected oldest date last, got %s", items[2].Date)
	}

	byDate, err := svc.ListByDate(ctx, "2026-03-14")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(byDate) != 2 {
		t.Fatalf("expected 2 events on 2026-03-14, got %d", len(byDate))
	}
}

func TestSubmitMapsDuplicateKeyToDomainError(t *testing.T) {
	_, db := setupEventService(t, time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	clk := clock.NewFakeClock(time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))

	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clk,
		Parser: timeparse.New(clk, zap.NewNop()),
		Repo:   &collidingRepo{},
	})

	_, err = svc.Submit(context.Background(), eventdomain.SubmitRequest{Feeding: true})
	if !errors.Is(err, eventdomain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

// collidingRepo fails every insert the way sqlite reports a primary key
// collision.
type collidingRepo struct{}

func (r *collidingRepo) Insert(ctx context.Context, db *gorm.DB, e *eventdomain.Event) error {
	return errors.New("constraint failed: UNIQUE constraint failed: baby_events.id (1555)")
}

func (r *collidingRepo) UpdateType(ctx context.Context, db *gorm.DB, id snowflake.ID, t eventdomain.Type) (bool, error) {
	return false, nil
}

func (r *collidingRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	return false, nil
}

func (r *collidingRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*eventdomain.Event, error) {
	return nil, nil
}

func (r *collidingRepo) ListAll(ctx context.Context, db *gorm.DB) ([]eventdomain.Event, error) {
	return nil, nil
}

func (r *collidingRepo) ListByDate(ctx context.Context, db *gorm.DB, date string) ([]eventdomain.Event, error) {
	return nil, nil
}

func (r *collidingRepo) ListByDateAndType(ctx context.Context, db *gorm.DB, date string, t eventdomain.Type) ([]eventdomain.Event, error) {
	return nil, nil
}

func (r *collidingRepo) CountByTypeOnDate(ctx context.Context, db *gorm.DB, date string) ([]eventdomain.TypeCount, error) {
	return nil, nil
}

func (r *collidingRepo) CountByDateAndType(ctx context.Context, db *gorm.DB) ([]eventdomain.DateTypeCount, error) {
	return nil, nil
}

func setupEventService(t *testing.T, now time.Time) (eventdomain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if err := db.AutoMigrate(&eventdomain.Event{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	clk := clock.NewFakeClock(now)

	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clk,
		Parser: timeparse.New(clk, zap.NewNop()),
		Repo:   repository.Provide(),
	})

	return svc, db
}

func countEvents(t *testing.T, db *gorm.DB) int {
	t.Helper()
	var count int
	if err := db.Raw(`SELECT COUNT(id) FROM baby_events`).Scan(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	return count
}
