package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/nestlog/nestlog/internal/clock"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	"github.com/nestlog/nestlog/internal/timeparse"
	"github.com/nestlog/nestlog/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Parser *timeparse.Parser
	Repo   eventdomain.Repository
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clk    clock.Clock
	parser *timeparse.Parser
	repo   eventdomain.Repository
}

func New(p Params) eventdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("event.service"),
		genID:  p.GenID,
		clk:    p.Clock,
		parser: p.Parser,
		repo:   p.Repo,
	}
}

// Submit normalizes the raw submission into a well-formed record and stores
// it. Indicator precedence is fixed: feeding, then wet diaper, then dirty
// diaper. Duration only applies to feeding and defaults to zero when absent
// or non-numeric.
func (s *Service) Submit(ctx context.Context, req eventdomain.SubmitRequest) (*eventdomain.Response, error) {
	var eventType eventdomain.Type
	duration := 0

	switch {
	case req.Feeding:
		eventType = eventdomain.TypeFeeding
		duration = parseDuration(req.Duration)
	case req.WetDiaper:
		eventType = eventdomain.TypeWetDiaper
	case req.DirtyDiaper:
		eventType = eventdomain.TypeDirtyDiaper
	default:
		return nil, eventdomain.ErrMissingType
	}

	event := &eventdomain.Event{
		ID:              s.genID.Generate(),
		CreatedAt:       s.clk.Now().UTC(),
		Date:            s.parser.Date(req.Date),
		Time:            s.parser.Time(req.Time),
		Type:            eventType,
		DurationMinutes: duration,
	}

	if err := s.repo.Insert(ctx, s.db, event); err != nil {
		if db.IsDuplicateKeyErr(err) {
			s.log.Warn("event id collision", zap.String("id", event.ID.String()), zap.Error(err))
			return nil, eventdomain.ErrDuplicateID
		}
		s.log.Error("insert event failed", zap.Error(err))
		return nil, err
	}

	s.log.Info("event recorded",
		zap.String("id", event.ID.String()),
		zap.String("event_type", string(event.Type)),
		zap.String("event_date", event.Date),
	)

	return toResponse(event), nil
}

func (s *Service) List(ctx context.Context) ([]eventdomain.Response, error) {
	items, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) ListByDate(ctx context.Context, date string) ([]eventdomain.Response, error) {
	items, err := s.repo.ListByDate(ctx, s.db, s.parser.Date(date))
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*eventdomain.Response, error) {
	eventID, err := eventdomain.ParseID(id)
	if err != nil {
		return nil, eventdomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, eventID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, eventdomain.ErrNotFound
	}

	return toResponse(item), nil
}

func (s *Service) UpdateType(ctx context.Context, req eventdomain.UpdateTypeRequest) (*eventdomain.Response, error) {
	eventID, err := eventdomain.ParseID(req.ID)
	if err != nil {
		return nil, eventdomain.ErrInvalidID
	}

	eventType, ok := eventdomain.ParseType(req.Type)
	if !ok {
		return nil, eventdomain.ErrInvalidType
	}

	updated, err := s.repo.UpdateType(ctx, s.db, eventID, eventType)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, eventdomain.ErrNotFound
	}

	item, err := s.repo.FindByID(ctx, s.db, eventID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, eventdomain.ErrNotFound
	}

	return toResponse(item), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	eventID, err := eventdomain.ParseID(id)
	if err != nil {
		return eventdomain.ErrInvalidID
	}

	deleted, err := s.repo.Delete(ctx, s.db, eventID)
	if err != nil {
		return err
	}
	if !deleted {
		return eventdomain.ErrNotFound
	}

	return nil
}

func parseDuration(raw string) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	minutes, err := strconv.Atoi(trimmed)
	if err != nil || minutes < 0 {
		return 0
	}
	return minutes
}

func toResponse(e *eventdomain.Event) *eventdomain.Response {
	return &eventdomain.Response{
		ID:              e.ID.String(),
		CreatedAt:       e.CreatedAt,
		Date:            e.Date,
		Time:            e.Time,
		Type:            e.Type,
		DurationMinutes: e.DurationMinutes,
	}
}

func toResponses(items []eventdomain.Event) []eventdomain.Response {
	resp := make([]eventdomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp
}
