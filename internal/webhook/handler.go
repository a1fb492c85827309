package webhook

import (
	"errors"
	"log/slog"
	"net/http"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/aevon-lab/caliper-gateway/internal/auth"
	httperr "github.com/aevon-lab/caliper-gateway/internal/core/errors"
	"github.com/aevon-lab/caliper-gateway/internal/core/storage"
	"github.com/gin-gonic/gin"
)

const msgWebhookNotFound = "Webhook not found"

// apiError carries the structured HTTP error shape from a helper back to the handler.
type apiError struct {
	statusCode int
	errorType  string
	message    string
}

func (e *apiError) Error() string {
	return e.message
}

// RegisterRoutes registers webhook CRUD on a group that already runs the
// auth middleware.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/webhooks", s.CreateHandler)
	r.GET("/webhooks", s.ListHandler)
	r.GET("/webhooks/:id", s.GetHandler)
	r.PATCH("/webhooks/:id", s.UpdateHandler)
	r.DELETE("/webhooks/:id", s.DeleteHandler)
}

// CreateHandler returns the new webhook including its secret, the only
// response that ever does.
func (s *Service) CreateHandler(c *gin.Context) {
	var req v1.CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &apiError{http.StatusBadRequest, httperr.HttpInvalidJsonError, "Invalid JSON body"})
		return
	}

	hook, err := s.Create(c.Request.Context(), auth.SensorID(c), &req)
	if err != nil {
		writeError(c, toAPIError(err, "create"))
		return
	}

	slog.Info("[Webhook] Created", "webhook_id", hook.WebhookID, "sensor_id", hook.SensorID, "target_url", hook.TargetURL)
	c.JSON(http.StatusCreated, hook)
}

func (s *Service) ListHandler(c *gin.Context) {
	hooks, err := s.List(c.Request.Context(), auth.SensorID(c))
	if err != nil {
		writeError(c, toAPIError(err, "list"))
		return
	}

	out := make([]v1.Webhook, len(hooks))
	for i, h := range hooks {
		out[i] = h.Redacted()
	}
	c.JSON(http.StatusOK, gin.H{"webhooks": out, "count": len(out)})
}

func (s *Service) GetHandler(c *gin.Context) {
	hook, err := s.Get(c.Request.Context(), auth.SensorID(c), c.Param("id"))
	if err != nil {
		writeError(c, toAPIError(err, "get"))
		return
	}
	c.JSON(http.StatusOK, hook.Redacted())
}

func (s *Service) UpdateHandler(c *gin.Context) {
	var req v1.UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &apiError{http.StatusBadRequest, httperr.HttpInvalidJsonError, "Invalid JSON body"})
		return
	}

	hook, err := s.Update(c.Request.Context(), auth.SensorID(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, toAPIError(err, "update"))
		return
	}
	c.JSON(http.StatusOK, hook.Redacted())
}

func (s *Service) DeleteHandler(c *gin.Context) {
	if err := s.Delete(c.Request.Context(), auth.SensorID(c), c.Param("id")); err != nil {
		writeError(c, toAPIError(err, "delete"))
		return
	}
	c.Status(http.StatusNoContent)
}

func toAPIError(err error, op string) *apiError {
	switch {
	case errors.Is(err, ErrInvalidWebhook):
		return &apiError{http.StatusBadRequest, httperr.HttpValidationError, err.Error()}
	case errors.Is(err, storage.ErrNotFound):
		return &apiError{http.StatusNotFound, httperr.HttpNotFoundError, msgWebhookNotFound}
	default:
		slog.Error("[Webhook] Store operation failed", "op", op, "error", err)
		return &apiError{http.StatusInternalServerError, httperr.HttpInternalError, "Failed to " + op + " webhook"}
	}
}

// writeError serializes an apiError as the JSON HTTP response.
func writeError(c *gin.Context, err *apiError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
	})
}
