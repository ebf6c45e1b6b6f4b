package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	eventdomain "github.com/nestlog/nestlog/internal/event/domain"
	reportdomain "github.com/nestlog/nestlog/internal/report/domain"
)

// detailView renders one detail entry with display formats.
type detailView struct {
	EventID   string `json:"event_id"`
	EventDate string `json:"event_date"`
	EventTime string `json:"event_time"`
}

func (s *Server) DayCounts(c *gin.Context) {
	result := s.reportSvc.DayCounts(c.Request.Context(), c.Param("date"))
	if !result.OK {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":      "error getting day event counts",
			"event_counts": result.Counts,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "",
		"date":         result.Date,
		"event_counts": result.Counts,
	})
}

func (s *Server) DayWiseCounts(c *gin.Context) {
	result := s.reportSvc.DayWiseCounts(c.Request.Context())
	if !result.OK {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":         "error getting day wise counts",
			"day_wise_counts": result.Rows,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "",
		"day_wise_counts": result.Rows,
	})
}

func (s *Server) DayEventDetails(c *gin.Context) {
	eventType := eventdomain.TypeFeeding
	if raw := c.Param("type"); raw != "" {
		if t, ok := eventdomain.ParseType(raw); ok {
			eventType = t
		}
	}

	result := s.reportSvc.DayEventDetails(c.Request.Context(), c.Param("date"), eventType)
	if !result.OK {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "error getting events",
			"events":  []detailView{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "",
		"date":    result.Date,
		"events":  toDetailViews(result.Events),
	})
}

func toDetailViews(entries []reportdomain.DetailEntry) []detailView {
	views := make([]detailView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, detailView{
			EventID:   entry.ID,
			EventDate: displayDate(entry.Date),
			EventTime: displayTime(entry.Time),
		})
	}
	return views
}
