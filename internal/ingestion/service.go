package ingestion

import (
	"context"
	"time"

	v1 "github.com/aevon-lab/caliper-gateway/internal/api/v1"
	"github.com/aevon-lab/caliper-gateway/internal/archive"
	"github.com/aevon-lab/caliper-gateway/internal/core/storage"
	"github.com/aevon-lab/caliper-gateway/internal/schema"
	"github.com/aevon-lab/caliper-gateway/internal/webhook"
	"github.com/gin-gonic/gin"
)

const (
	defaultMaxBodySizeMB = 1
	defaultRetention     = 90 * 24 * time.Hour
)

// Dispatcher fans stored events out to webhooks. Dispatch must return
// without waiting for deliveries.
type Dispatcher interface {
	Dispatch(ctx context.Context, sensorID string, env *v1.Envelope) *webhook.Batch
}

// Options tunes request limits and record layout.
type Options struct {
	MaxBodySizeMB int
	// BatchSize is the number of events per SaveBatch call, at most storage.MaxBatchSize.
	BatchSize int
	// Retention sets each record's ttl relative to its storage time.
	Retention time.Duration
}

func (o Options) normalized() Options {
	n := o
	if n.MaxBodySizeMB <= 0 {
		n.MaxBodySizeMB = defaultMaxBodySizeMB
	}
	if n.BatchSize <= 0 || n.BatchSize > storage.MaxBatchSize {
		n.BatchSize = storage.MaxBatchSize
	}
	if n.Retention <= 0 {
		n.Retention = defaultRetention
	}
	return n
}

type Service struct {
	validator  *schema.Validator
	store      storage.EventStore
	publisher  archive.Publisher
	dispatcher Dispatcher
	opts       Options
	now        func() time.Time
}

func NewService(val *schema.Validator, repo storage.EventStore, pub archive.Publisher, disp Dispatcher, opts Options) *Service {
	if val == nil {
		panic("ingestion: validator must not be nil")
	}
	if repo == nil {
		panic("ingestion: store must not be nil")
	}
	if pub == nil {
		pub = archive.NopPublisher{}
	}
	return &Service{
		validator:  val,
		store:      repo,
		publisher:  pub,
		dispatcher: disp,
		opts:       opts.normalized(),
		now:        time.Now,
	}
}

// RegisterRoutes registers the public validation endpoint on public and the
// storing endpoint on protected, which must already run the auth middleware.
func (s *Service) RegisterRoutes(public, protected gin.IRouter) {
	public.POST("/events/validate", s.ValidateHandler)
	protected.POST("/events", s.StoreHandler)
}
