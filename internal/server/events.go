package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
)

type addEventRequest struct {
	EventType string        `json:"event_type"`
	Duration  durationValue `json:"duration"`
	EventDate string        `json:"event_date"`
	EventTime string        `json:"event_time"`
}

// durationValue accepts the duration as either a JSON number or a string.
// API clients send plain numbers; the form surface sends strings. Whatever
// arrives is passed through as raw text for the normalizer to interpret.
type durationValue string

func (d *durationValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	raw = strings.Trim(raw, `"`)
	if raw == "null" {
		raw = ""
	}
	*d = durationValue(raw)
	return nil
}

type updateEventRequest struct {
	EventType string `json:"event_type"`
}

// eventView is the list/detail rendering of an event with display formats.
type eventView struct {
	ID            string           `json:"id"`
	EventDate     string           `json:"event_date"`
	EventTime     string           `json:"event_time"`
	EventType     eventdomain.Type `json:"event_type"`
	EventDuration int              `json:"event_duration"`
}

func (s *Server) AddEvent(c *gin.Context) {
	var req addEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	submit := eventdomain.SubmitRequest{
		Duration: string(req.Duration),
		Date:     req.EventDate,
		Time:     req.EventTime,
	}
	if t, ok := eventdomain.ParseType(req.EventType); ok {
		switch t {
		case eventdomain.TypeFeeding:
			submit.Feeding = true
		case eventdomain.TypeWetDiaper:
			submit.WetDiaper = true
		case eventdomain.TypeDirtyDiaper:
			submit.DirtyDiaper = true
		}
	}

	resp, err := s.eventSvc.Submit(c.Request.Context(), submit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordEvent(string(resp.Type))
	c.JSON(http.StatusOK, gin.H{"message": "event added successfully", "event": resp})
}

func (s *Server) ListEvents(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))

	var (
		items []eventdomain.Response
		err   error
	)
	if date != "" {
		items, err = s.eventSvc.ListByDate(c.Request.Context(), date)
	} else {
		items, err = s.eventSvc.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "error getting events",
			"events":  []eventView{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "", "events": toEventViews(items)})
}

func (s *Server) GetEvent(c *gin.Context) {
	resp, err := s.eventSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": resp})
}

func (s *Server) UpdateEventType(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.eventSvc.UpdateType(c.Request.Context(), eventdomain.UpdateTypeRequest{
		ID:   c.Param("id"),
		Type: req.EventType,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event updated", "event": resp})
}

func (s *Server) DeleteEvent(c *gin.Context) {
	if err := s.eventSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func toEventViews(items []eventdomain.Response) []eventView {
	views := make([]eventView, 0, len(items))
	for _, item := range items {
		views = append(views, eventView{
			ID:            item.ID,
			EventDate:     displayDate(item.Date),
			EventTime:     displayTime(item.Time),
			EventType:     item.Type,
			EventDuration: item.DurationMinutes,
		})
	}
	return views
}
