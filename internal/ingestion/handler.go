package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aevon-lab/caliper-gateway/internal/auth"
	httperr "github.com/aevon-lab/caliper-gateway/internal/core/errors"
	"github.com/aevon-lab/caliper-gateway/internal/schema"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/gin-gonic/gin"
)

const (
	msgReadBodyFailed   = "Failed to read request body"
	msgBodyTooLarge     = "Request body exceeds maximum allowed size"
	msgInvalidEnvelope  = "Invalid Caliper envelope"
	msgStoreFailed      = "Failed to store events"
	msgEventsStoredTmpl = "%d events stored successfully"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// StoreResponse is the body of a successful POST /events.
type StoreResponse struct {
	Success      bool   `json:"success"`
	EventsStored int    `json:"eventsStored"`
	Message      string `json:"message"`
}

// ValidateHandler reports every validation issue in the envelope without
// storing anything: 200 with {valid, eventCount} or 400 with {valid, errors}.
func (s *Service) ValidateHandler(c *gin.Context) {
	body, ierr := s.readBody(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	result := s.validator.ValidateEnvelope(body)
	if !result.Valid {
		validationsTotal.WithLabelValues(outcomeInvalid).Inc()
		slog.Warn("[Ingestion] Envelope failed validation",
			"issues", len(result.Errors),
			"payload_size", len(body))
		c.JSON(http.StatusBadRequest, result)
		return
	}

	validationsTotal.WithLabelValues(outcomeValid).Inc()
	c.JSON(http.StatusOK, result)
}

// StoreHandler validates, stores, archives and dispatches one envelope.
// Authentication has already run; only storage failures fail the request.
func (s *Service) StoreHandler(c *gin.Context) {
	sensorID := auth.SensorID(c)

	body, ierr := s.readBody(c)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	env, ierr := s.validateEnvelope(body)
	if ierr != nil {
		writeError(c, ierr)
		return
	}

	records := buildRecords(sensorID, env, s.now().UTC(), s.opts.Retention)

	slog.Info("[Ingestion] Received envelope",
		"sensor_id", sensorID,
		"events", len(records),
		"payload_size", len(body))

	ctx := c.Request.Context()
	if ierr := s.persist(ctx, sensorID, records); ierr != nil {
		writeError(c, ierr)
		return
	}

	s.archive(ctx, sensorID, records)

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, sensorID, env)
	}

	c.JSON(http.StatusOK, StoreResponse{
		Success:      true,
		EventsStored: len(records),
		Message:      fmt.Sprintf(msgEventsStoredTmpl, len(records)),
	})
}

// readBody reads the request body up to the configured limit.
func (s *Service) readBody(c *gin.Context) ([]byte, *ingestionError) {
	maxBytes := int64(s.opts.MaxBodySizeMB) * 1024 * 1024
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	body, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("[Ingestion] Failed to read request body", "error", err)
		return nil, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(body)) > maxBytes {
		slog.Warn("[Ingestion] Request body exceeds maximum size", "size", len(body), "max", maxBytes)
		return nil, &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLargeError,
			message:    msgBodyTooLarge,
			details: map[string]interface{}{
				"max_size_mb": s.opts.MaxBodySizeMB,
			},
		}
	}

	return body, nil
}

// validateEnvelope runs full envelope validation and decodes the result.
// Every issue is returned in details so the sensor can fix them in one pass.
func (s *Service) validateEnvelope(body []byte) (*v1.Envelope, *ingestionError) {
	result := s.validator.ValidateEnvelope(body)
	if !result.Valid {
		validationsTotal.WithLabelValues(outcomeInvalid).Inc()

		errorType := httperr.HttpValidationError
		if len(result.Errors) == 1 && result.Errors[0].Code == schema.CodeInvalidJSON {
			errorType = httperr.HttpInvalidJsonError
		}
		slog.Warn("[Ingestion] Rejected invalid envelope", "issues", len(result.Errors))
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  errorType,
			message:    msgInvalidEnvelope,
			details:    result.Errors,
		}
	}
	validationsTotal.WithLabelValues(outcomeValid).Inc()

	env, err := schema.ParseEnvelope(body)
	if err != nil {
		slog.Error("[Ingestion] Validated envelope failed to decode", "error", err)
		return nil, &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidEnvelope,
		}
	}
	return env, nil
}

// persist writes records in chunks, one chunk at a time. A failed chunk
// stops the request; earlier chunks stay stored and a resubmission skips them.
func (s *Service) persist(ctx context.Context, sensorID string, records []*v1.StoredEvent) *ingestionError {
	for i, batch := range chunk(records, s.opts.BatchSize) {
		if err := s.store.SaveBatch(ctx, batch); err != nil {
			slog.Error("[Ingestion] Failed to persist events",
				"sensor_id", sensorID,
				"chunk", i,
				"chunk_size", len(batch),
				"error", err)
			return &ingestionError{
				statusCode: http.StatusInternalServerError,
				errorType:  httperr.HttpInternalError,
				message:    msgStoreFailed,
			}
		}
		eventsStored.Add(float64(len(batch)))
	}
	return nil
}

// archive hands records to the archival log. Failures are logged and counted
// only: the events are already stored.
func (s *Service) archive(ctx context.Context, sensorID string, records []*v1.StoredEvent) {
	if err := s.publisher.Publish(ctx, sensorID, records); err != nil {
		archiveFailures.Inc()
		slog.Error("[Ingestion] Failed to archive events",
			"sensor_id", sensorID,
			"events", len(records),
			"error", err)
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
