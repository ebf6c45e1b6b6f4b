package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	reportdomain "github.com/nestlog/nestlog/internal/report/domain"
	"go.uber.org/zap"
)

// indexData feeds index.html: today's counts, the all-time pivot, and the
// per-type detail lists for today.
type indexData struct {
	Message       string
	Date          string
	Counts        map[eventdomain.Type]int
	DayWiseRows   []pivotRowView
	DetailsByType []typeDetails
}

type pivotRowView struct {
	Date   string
	Counts map[eventdomain.Type]int
}

type typeDetails struct {
	Type   eventdomain.Type
	Events []detailView
}

type eventsPageData struct {
	Message string
	Events  []eventView
}

func (s *Server) IndexPage(c *gin.Context) {
	s.renderIndex(c, "")
}

func (s *Server) IndexSubmit(c *gin.Context) {
	req := eventdomain.SubmitRequest{
		Feeding:     c.PostForm("feeding") != "",
		WetDiaper:   c.PostForm("wet-diaper") != "",
		DirtyDiaper: c.PostForm("dirty-diaper") != "",
		Duration:    c.PostForm("duration-time"),
		Date:        c.PostForm("event-date"),
		Time:        c.PostForm("event-time"),
	}

	resp, err := s.eventSvc.Submit(c.Request.Context(), req)
	switch {
	case errors.Is(err, eventdomain.ErrMissingType):
		s.renderIndex(c, "please select an event type")
		return
	case err != nil:
		s.log.Error("submit event", zap.Error(err))
		s.renderIndex(c, "error recording event")
		return
	}

	s.metrics.RecordEvent(string(resp.Type))
	s.renderIndex(c, "event recorded")
}

func (s *Server) renderIndex(c *gin.Context, message string) {
	ctx := c.Request.Context()

	counts := s.reportSvc.DayCounts(ctx, "")
	dayWise := s.reportSvc.DayWiseCounts(ctx)

	details := make([]typeDetails, 0, len(eventdomain.Types()))
	for _, t := range eventdomain.Types() {
		result := s.reportSvc.DayEventDetails(ctx, "", t)
		details = append(details, typeDetails{
			Type:   t,
			Events: toDetailViews(result.Events),
		})
	}

	if message == "" && !counts.OK {
		message = "error getting events"
	}

	c.HTML(http.StatusOK, "index.html", indexData{
		Message:       message,
		Date:          displayDate(counts.Date),
		Counts:        counts.Counts,
		DayWiseRows:   toPivotRowViews(dayWise.Rows),
		DetailsByType: details,
	})
}

func (s *Server) EventsPage(c *gin.Context) {
	s.renderEvents(c, "")
}

func (s *Server) EventsPageDelete(c *gin.Context) {
	err := s.eventSvc.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		s.renderEvents(c, "event deleted")
	case errors.Is(err, eventdomain.ErrNotFound), errors.Is(err, eventdomain.ErrInvalidID):
		s.renderEvents(c, "event not found")
	default:
		s.log.Error("delete event", zap.Error(err))
		s.renderEvents(c, "error deleting event")
	}
}

func (s *Server) renderEvents(c *gin.Context, message string) {
	events, err := s.eventSvc.List(c.Request.Context())
	if err != nil {
		s.log.Error("list events", zap.Error(err))
		if message == "" {
			message = "error getting events"
		}
		events = nil
	}

	c.HTML(http.StatusOK, "events.html", eventsPageData{
		Message: message,
		Events:  toEventViews(events),
	})
}

func toPivotRowViews(rows []reportdomain.PivotRow) []pivotRowView {
	views := make([]pivotRowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, pivotRowView{
			Date:   displayDate(row.Date),
			Counts: row.Counts,
		})
	}
	return views
}
