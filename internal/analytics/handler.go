package analytics

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/aevon-lab/caliper-gateway/internal/auth"
	httperr "github.com/aevon-lab/caliper-gateway/internal/core/errors"
	"github.com/aevon-lab/caliper-gateway/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidQuery  = "Invalid query parameters"
	msgEventNotFound = "Event not found"
	msgQueryFailed   = "Failed to query events"
)

// RegisterRoutes registers the analytics reads on a group that already runs
// the auth middleware.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/events", s.HandleQueryEvents)
	r.GET("/events/:eventId", s.HandleGetEvent)
	r.GET("/analytics/summary", s.HandleSummary)
}

// queryParams are the filters shared by the event list and the summary.
type queryParams struct {
	ActorID   string `form:"actorId"`
	ObjectID  string `form:"objectId"`
	EventType string `form:"eventType"`
	StartTime string `form:"startTime"`
	EndTime   string `form:"endTime"`
	Limit     string `form:"limit"`
	Offset    string `form:"offset"`
}

// HandleQueryEvents handles GET /events.
// Query parameters: actorId, objectId, eventType, startTime, endTime, limit, offset
func (s *Service) HandleQueryEvents(c *gin.Context) {
	q, err := bindQuery(c)
	if err != nil {
		writeInvalidQuery(c, err)
		return
	}

	page, err := s.QueryEvents(c.Request.Context(), q)
	if err != nil {
		s.writeReadError(c, err)
		return
	}

	setPaginationHeaders(c, page)
	c.JSON(http.StatusOK, page)
}

// HandleGetEvent handles GET /events/:eventId.
func (s *Service) HandleGetEvent(c *gin.Context) {
	evt, err := s.GetEvent(c.Request.Context(), auth.SensorID(c), c.Param("eventId"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpNotFoundError,
				Message:   msgEventNotFound,
			})
			return
		}
		s.writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, evt)
}

// HandleSummary handles GET /analytics/summary. It takes the same filters as
// the event list; paging parameters are ignored.
func (s *Service) HandleSummary(c *gin.Context) {
	q, err := bindQuery(c)
	if err != nil {
		writeInvalidQuery(c, err)
		return
	}

	summary, err := s.Summary(c.Request.Context(), q)
	if err != nil {
		s.writeReadError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// bindQuery maps query parameters onto an EventQuery scoped to the
// authenticated sensor. Limit is clamped later; only malformed values fail here.
func bindQuery(c *gin.Context) (v1.EventQuery, error) {
	var params queryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return v1.EventQuery{}, err
	}

	q := v1.EventQuery{
		SensorID:  auth.SensorID(c),
		ActorID:   params.ActorID,
		ObjectID:  params.ObjectID,
		EventType: params.EventType,
	}

	var err error
	if q.Start, err = parseTimeParam("startTime", params.StartTime); err != nil {
		return q, err
	}
	if q.End, err = parseTimeParam("endTime", params.EndTime); err != nil {
		return q, err
	}
	if params.Limit != "" {
		n, err := parseCount("limit", params.Limit)
		if err != nil {
			return q, err
		}
		q.Limit = max(n, 1)
	}
	if params.Offset != "" {
		if q.Offset, err = parseCount("offset", params.Offset); err != nil {
			return q, err
		}
	}
	return q, nil
}

func parseTimeParam(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, invalidQueryf("%s must be an RFC 3339 datetime", name)
	}
	return t.UTC(), nil
}

func parseCount(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, invalidQueryf("%s must be a non-negative integer", name)
	}
	return n, nil
}

func writeInvalidQuery(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
		ErrorType: httperr.HttpInvalidQueryError,
		Message:   msgInvalidQuery,
		Details:   err.Error(),
	})
}

func (s *Service) writeReadError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidQuery) {
		writeInvalidQuery(c, err)
		return
	}
	slog.Error("[Analytics] Read failed",
		"sensor_id", auth.SensorID(c),
		"path", c.FullPath(),
		"error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   msgQueryFailed,
	})
}
