package service

import (
	"context"

	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	reportdomain "github.com/nestlog/nestlog/internal/report/domain"
	"github.com/nestlog/nestlog/internal/timeparse"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reasonStoreError = "store_error"

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Parser *timeparse.Parser
	Repo   eventdomain.Repository
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	parser *timeparse.Parser
	repo   eventdomain.Repository
}

func New(p Params) reportdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("report.service"),
		parser: p.Parser,
		repo:   p.Repo,
	}
}

func (s *Service) DayCounts(ctx context.Context, date string) reportdomain.DayCounts {
	filterDate := s.parser.Date(date)

	groups, err := s.repo.CountByTypeOnDate(ctx, s.db, filterDate)
	if err != nil {
		s.log.Error("day counts query failed", zap.String("date", filterDate), zap.Error(err))
		return reportdomain.DayCounts{
			Reason: reasonStoreError,
			Date:   filterDate,
			Counts: map[eventdomain.Type]int{},
		}
	}

	counts := make(map[eventdomain.Type]int, len(groups))
	for _, g := range groups {
		counts[g.Type] = g.Count
	}

	return reportdomain.DayCounts{OK: true, Date: filterDate, Counts: counts}
}

func (s *Service) DayWiseCounts(ctx context.Context) reportdomain.DayWiseCounts {
	groups, err := s.repo.CountByDateAndType(ctx, s.db)
	if err != nil {
		s.log.Error("day-wise counts query failed", zap.Error(err))
		return reportdomain.DayWiseCounts{
			Reason: reasonStoreError,
			Rows:   []reportdomain.PivotRow{},
		}
	}

	// Single grouping pass: the rows arrive ordered by date desc, type asc,
	// so appending on first sight of a date preserves the date ordering.
	rows := make([]reportdomain.PivotRow, 0, len(groups))
	index := make(map[string]int, len(groups))
	for _, g := range groups {
		i, seen := index[g.Date]
		if !seen {
			rows = append(rows, reportdomain.PivotRow{
				Date:   g.Date,
				Counts: map[eventdomain.Type]int{},
			})
			i = len(rows) - 1
			index[g.Date] = i
		}
		rows[i].Counts[g.Type] = g.Count
	}

	return reportdomain.DayWiseCounts{OK: true, Rows: rows}
}

func (s *Service) DayEventDetails(ctx context.Context, date string, t eventdomain.Type) reportdomain.DayDetails {
	filterDate := s.parser.Date(date)
	if !t.Valid() {
		t = eventdomain.TypeFeeding
	}

	items, err := s.repo.ListByDateAndType(ctx, s.db, filterDate, t)
	if err != nil {
		s.log.Error("day details query failed",
			zap.String("date", filterDate),
			zap.String("event_type", string(t)),
			zap.Error(err),
		)
		return reportdomain.DayDetails{
			Reason: reasonStoreError,
			Date:   filterDate,
			Type:   t,
			Events: []reportdomain.DetailEntry{},
		}
	}

	events := make([]reportdomain.DetailEntry, 0, len(items))
	for i := range items {
		events = append(events, reportdomain.DetailEntry{
			ID:   items[i].ID.String(),
			Date: items[i].Date,
			Time: items[i].Time,
		})
	}

	return reportdomain.DayDetails{OK: true, Date: filterDate, Type: t, Events: events}
}
