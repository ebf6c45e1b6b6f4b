package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/nestlog/nestlog/internal/clock"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	"github.com/nestlog/nestlog/internal/event/repository"
	reportdomain "github.com/nestlog/nestlog/internal/report/domain"
	"github.com/nestlog/nestlog/internal/timeparse"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestDayCounts(t *testing.T) {
	svc, fixture := setupReportService(t)
	ctx := context.Background()

	fixture.add(t, "2026-03-14", "06:00:00", eventdomain.TypeFeeding)
	fixture.add(t, "2026-03-14", "09:30:00", eventdomain.TypeFeeding)
	fixture.add(t, "2026-03-14", "07:15:00", eventdomain.TypeWetDiaper)
	fixture.add(t, "2026-03-13", "22:00:00", eventdomain.TypeDirtyDiaper)

	result := svc.DayCounts(ctx, "2026-03-14")
	if !result.OK {
		t.Fatalf("expected ok result, reason=%s", result.Reason)
	}
	if result.Date != "2026-03-14" {
		t.Fatalf("expected date echoed back, got %s", result.Date)
	}
	if result.Counts[eventdomain.TypeFeeding] != 2 {
		t.Fatalf("expected 2 feedings, got %d", result.Counts[eventdomain.TypeFeeding])
	}
	if result.Counts[eventdomain.TypeWetDiaper] != 1 {
		t.Fatalf("expected 1 wet diaper, got %d", result.Counts[eventdomain.TypeWetDiaper])
	}
	// Types with no events that day stay absent.
	if _, present := result.Counts[eventdomain.TypeDirtyDiaper]; present {
		t.Fatalf("expected no dirty diaper entry for 2026-03-14")
	}
}

func TestDayCountsDefaultsToToday(t *testing.T) {
	svc, fixture := setupReportService(t)

	today := fixture.clk.Now().Format(timeparse.DateLayout)
	fixture.add(t, today, "08:00:00", eventdomain.TypeFeeding)

	result := svc.DayCounts(context.Background(), "")
	if !result.OK {
		t.Fatalf("expected ok result, reason=%s", result.Reason)
	}
	if result.Date != today {
		t.Fatalf("expected today %s, got %s", today, result.Date)
	}
	if result.Counts[eventdomain.TypeFeeding] != 1 {
		t.Fatalf("expected 1 feeding today, got %d", result.Counts[eventdomain.TypeFeeding])
	}
}

func TestDayWiseCountsPivot(t *testing.T) {
	svc, fixture := setupReportService(t)

	fixture.add(t, "2026-03-12", "10:00:00", eventdomain.TypeFeeding)
	fixture.add(t, "2026-03-14", "06:00:00", eventdomain.TypeFeeding)
	fixture.add(t, "2026-03-14", "07:00:00", eventdomain.TypeWetDiaper)
	fixture.add(t, "2026-03-14", "08:00:00", eventdomain.TypeWetDiaper)
	fixture.add(t, "2026-03-13", "21:00:00", eventdomain.TypeDirtyDiaper)

	result := svc.DayWiseCounts(context.Background())
	if !result.OK {
		t.Fatalf("expected ok result, reason=%s", result.Reason)
	}
	if len(result.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(result.Rows))
	}

	// One row per date, newest first.
	wantDates := []string{"2026-03-14", "2026-03-13", "2026-03-12"}
	for i, want := range wantDates {
		if result.Rows[i].Date != want {
			t.Fatalf("row %d: expected %s, got %s", i, want, result.Rows[i].Date)
		}
	}

	top := result.Rows[0].Counts
	if top[eventdomain.TypeFeeding] != 1 || top[eventdomain.TypeWetDiaper] != 2 {
		t.Fatalf("unexpected counts for 2026-03-14: %v", top)
	}
	if _, present := top[eventdomain.TypeDirtyDiaper]; present {
		t.Fatalf("expected no dirty diaper count for 2026-03-14")
	}
}

func TestDayWiseCountsEmptyStore(t *testing.T) {
	svc, _ := setupReportService(t)

	result := svc.DayWiseCounts(context.Background())
	if !result.OK {
		t.Fatalf("expected ok result, reason=%s", result.Reason)
	}
	if len(result.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(result.Rows))
	}
}

func TestDayEventDetails(t *testing.T) {
	svc, fixture := setupReportService(t)

	fixture.add(t, "2026-03-14", "06:00:00", eventdomain.TypeFeeding)
	fixture.add(t, "2026-03-14", "12:30:00", eventdomain.TypeFeeding)
	fixture.add(t, "2026-03-14", "09:00:00", eventdomain.TypeWetDiaper)
	fixture.add(t, "2026-03-13", "06:00:00", eventdomain.TypeFeeding)

	result := svc.DayEventDetails(context.Background(), "2026-03-14", eventdomain.TypeFeeding)
	if !result.OK {
		t.Fatalf("expected ok result, reason=%s", result.Reason)
	}
	if len(result.Events) != 2 {
		t.Fatalf("expected 2 feeding events, got %d", len(result.Events))
	}
	// Most recent first within the day.
	if result.Events[0].Time != "12:30:00.000000000" || result.Events[1].Time != "06:00:00.000000000" {
		t.Fatalf("unexpected ordering: %s, %s", result.Events[0].Time, result.Events[1].Time)
	}
}

func TestDayEventDetailsInvalidTypeDefaultsToFeeding(t *testing.T) {
	svc, fixture := setupReportService(t)

	fixture.add(t, "2026-03-14", "06:00:00", eventdomain.TypeFeeding)

	result := svc.DayEventDetails(context.Background(), "2026-03-14", eventdomain.Type("Nap"))
	if !result.OK {
		t.Fatalf("expected ok result, reason=%s", result.Reason)
	}
	if result.Type != eventdomain.TypeFeeding {
		t.Fatalf("expected Feeding fallback, got %s", result.Type)
	}
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Events))
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	svc, fixture := setupReportService(t)
	ctx := context.Background()

	fixture.add(t, "2026-03-14", "06:00:00", eventdomain.TypeFeeding)
	fixture.add(t, "2026-03-14", "07:00:00", eventdomain.TypeWetDiaper)
	fixture.add(t, "2026-03-13", "21:00:00", eventdomain.TypeDirtyDiaper)

	// Repeated reads with no intervening writes return identical results.
	if first, second := svc.DayCounts(ctx, "2026-03-14"), svc.DayCounts(ctx, "2026-03-14"); !reflect.DeepEqual(first, second) {
		t.Fatalf("day counts diverged: %+v vs %+v", first, second)
	}
	if first, second := svc.DayWiseCounts(ctx), svc.DayWiseCounts(ctx); !reflect.DeepEqual(first, second) {
		t.Fatalf("day wise counts diverged: %+v vs %+v", first, second)
	}
	first := svc.DayEventDetails(ctx, "2026-03-14", eventdomain.TypeFeeding)
	second := svc.DayEventDetails(ctx, "2026-03-14", eventdomain.TypeFeeding)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("day details diverged: %+v vs %+v", first, second)
	}
}

func TestStoreFailureYieldsEmptyLabeledResults(t *testing.T) {
	svc, fixture := setupReportService(t)

	// Dropping the table makes every query fail; results must stay
	// structurally valid with the failure labeled.
	if err := fixture.db.Exec(`DROP TABLE baby_events`).Error; err != nil {
		t.Fatalf("drop table: %v", err)
	}
	ctx := context.Background()

	counts := svc.DayCounts(ctx, "2026-03-14")
	if counts.OK || counts.Reason == "" {
		t.Fatalf("expected labeled failure, got ok=%v reason=%q", counts.OK, counts.Reason)
	}
	if counts.Counts == nil || len(counts.Counts) != 0 {
		t.Fatalf("expected empty counts map, got %v", counts.Counts)
	}

	dayWise := svc.DayWiseCounts(ctx)
	if dayWise.OK || dayWise.Rows == nil || len(dayWise.Rows) != 0 {
		t.Fatalf("expected labeled empty rows, got ok=%v rows=%v", dayWise.OK, dayWise.Rows)
	}

	details := svc.DayEventDetails(ctx, "2026-03-14", eventdomain.TypeFeeding)
	if details.OK || details.Events == nil || len(details.Events) != 0 {
		t.Fatalf("expected labeled empty events, got ok=%v events=%v", details.OK, details.Events)
	}
}

type reportFixture struct {
	db   *gorm.DB
	node *snowflake.Node
	clk  *clock.FakeClock
}

func (f *reportFixture) add(t *testing.T, date, clockTime string, eventType eventdomain.Type) {
	t.Helper()

	parsed, err := time.Parse("15:04:05", clockTime)
	if err != nil {
		t.Fatalf("parse fixture time: %v", err)
	}
	err = repository.Provide().Insert(context.Background(), f.db, &eventdomain.Event{
		ID:        f.node.Generate(),
		CreatedAt: f.clk.Now().UTC(),
		Date:      date,
		Time:      parsed.Format(timeparse.TimeLayout),
		Type:      eventType,
	})
	if err != nil {
		t.Fatalf("insert fixture event: %v", err)
	}
}

func setupReportService(t *testing.T) (reportdomain.Service, *reportFixture) {
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
	clk := clock.NewFakeClock(time.Date(2026, 3, 14, 9, 15, 30, 0, time.UTC))

	svc := New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		Parser: timeparse.New(clk, zap.NewNop()),
		Repo:   repository.Provide(),
	})

	return svc, &reportFixture{db: db, node: node, clk: clk}
}
