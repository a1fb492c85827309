package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/caliper-gateway/internal/core/errors"
	"github.com/aevon-lab/caliper-gateway/internal/schema"
	"github.com/gin-gonic/gin"
)

const maxEntityBodyBytes = 1 << 20

// Handler handles catalog HTTP requests.
type Handler struct {
	registry *schema.Registry
}

// NewHandler creates a new catalog API handler.
func NewHandler(reg *schema.Registry) *Handler {
	return &Handler{registry: reg}
}

// UnionInfo lists the kinds one union accepts.
type UnionInfo struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Tags    []string `json:"tags"`
}

// EntitiesResponse is the body of GET /schemas/entities.
type EntitiesResponse struct {
	Context string             `json:"context"`
	Kinds   []schema.ShapeInfo `json:"kinds"`
	Unions  []UnionInfo        `json:"unions"`
}

// EventsResponse is the body of GET /schemas/events.
type EventsResponse struct {
	Context string             `json:"context"`
	Events  []schema.ShapeInfo `json:"events"`
}

// HandleListEvents handles GET /schemas/events. ?format=yaml renders YAML.
func (h *Handler) HandleListEvents(c *gin.Context) {
	resp := EventsResponse{Context: h.registry.Context()}
	for _, t := range h.registry.EventTypes() {
		shape, _ := h.registry.Event(t)
		resp.Events = append(resp.Events, shape.Describe())
	}
	render(c, resp)
}

// HandleGetEvent handles GET /schemas/events/{type}.
func (h *Handler) HandleGetEvent(c *gin.Context) {
	shape, ok := h.registry.Event(c.Param("type"))
	if !ok {
		notFound(c, "Unknown event type")
		return
	}
	render(c, shape.Describe())
}

// HandleListEntities handles GET /schemas/entities.
func (h *Handler) HandleListEntities(c *gin.Context) {
	resp := EntitiesResponse{Context: h.registry.Context()}
	for _, k := range h.registry.Kinds() {
		shape, _ := h.registry.Kind(k)
		resp.Kinds = append(resp.Kinds, shape.Describe())
	}
	for _, name := range h.registry.Unions() {
		u, _ := h.registry.Union(name)
		info := UnionInfo{Name: u.Name, Tags: u.Tags()}
		for _, m := range u.Members {
			info.Members = append(info.Members, m.Name)
		}
		resp.Unions = append(resp.Unions, info)
	}
	render(c, resp)
}

// HandleGetEntity handles GET /schemas/entities/{kind}.
func (h *Handler) HandleGetEntity(c *gin.Context) {
	shape, ok := h.registry.Kind(c.Param("kind"))
	if !ok {
		notFound(c, "Unknown entity kind")
		return
	}
	render(c, shape.Describe())
}

// HandleValidateEntity handles POST /schemas/entities/{kind}/validate (dry-run).
// The kind may also name a union, which resolves to its closest member.
func (h *Handler) HandleValidateEntity(c *gin.Context) {
	kind := c.Param("kind")

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEntityBodyBytes))
	if err != nil {
		slog.Error("[Schema] Failed to read request body", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to read request body",
		})
		return
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   schema.MsgInvalidJSON,
		})
		return
	}

	issues, err := h.registry.ValidateEntity(kind, doc)
	if err != nil {
		notFound(c, "Unknown entity kind")
		return
	}
	if len(issues) > 0 {
		c.JSON(http.StatusBadRequest, schema.Result{Errors: issues})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"kind":  kind,
	})
}

func render(c *gin.Context, body any) {
	if c.Query("format") == "yaml" {
		c.YAML(http.StatusOK, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, httperr.ErrorResponse{
		ErrorType: httperr.HttpNotFoundError,
		Message:   msg,
	})
}
