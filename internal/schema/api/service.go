package api

import (
	"github.com/aevon-lab/caliper-gateway/internal/schema"
	"github.com/gin-gonic/gin"
)

// Service exposes the compiled entity and event catalog read-only.
type Service struct {
	registry *schema.Registry
}

// NewService creates a new catalog API service.
func NewService(reg *schema.Registry) *Service {
	return &Service{registry: reg}
}

// RegisterRoutes registers the catalog routes. None of them need auth.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	handler := NewHandler(s.registry)

	schemas := r.Group("/schemas")
	{
		schemas.GET("/events", handler.HandleListEvents)
		schemas.GET("/events/:type", handler.HandleGetEvent)
		schemas.GET("/entities", handler.HandleListEntities)
		schemas.GET("/entities/:kind", handler.HandleGetEntity)
		schemas.POST("/entities/:kind/validate", handler.HandleValidateEntity)
	}
}
