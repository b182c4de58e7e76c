package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"blinds-orders/internal/allocator"
	"blinds-orders/internal/metrics"
	"blinds-orders/internal/models"
	"blinds-orders/internal/store"
)

// Created is the result of CreateOrder. Warning is set when the order number
// could not be allocated sequentially.
type Created struct {
	Order   models.Order `json:"order"`
	Warning string       `json:"warning,omitempty"`
}

type Order interface {
	CreateOrder(ctx context.Context, d models.Draft, actor string) (Created, error)
	EditOrder(ctx context.Context, id string, e models.OrderEdit, actor string) (models.Order, error)
	AdvanceOrder(ctx context.Context, id, actor string) (models.Order, bool, error)
	SetOrderStatus(ctx context.Context, id string, status models.Status, actor string) (models.Order, error)

	GetOrder(ctx context.Context, id string) (models.Order, error)
	ListOrders(ctx context.Context) []models.Order
	ProductionQueue(ctx context.Context) []models.Order
	Subscribe(ctx context.Context) <-chan store.Snapshot
	PreviewWoodenSpec(width, height float64, base models.BaseSize) (models.WoodenSpec, error)

	WarmUp(ctx context.Context) error
	HandleMessage(ctx context.Context, payload []byte) error
}

// Records is the order record store as seen by the use cases.
type Records interface {
	Replace(ctx context.Context, event string, o models.Order) error
	Get(ctx context.Context, id string) (models.Order, error)
	List() []models.Order
	Subscribe(ctx context.Context) <-chan store.Snapshot
	Warm(ctx context.Context) error
}

type Option func(*Service)

func WithMetrics(m *metrics.Registry) Option { return func(s *Service) { s.metrics = m } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

type Service struct {
	records Records
	alloc   allocator.Allocator
	metrics *metrics.Registry
	v       *validator.Validate
	now     func() time.Time
}

func NewService(records Records, alloc allocator.Allocator, opts ...Option) *Service {
	s := &Service{
		records: records,
		alloc:   alloc,
		v:       validator.New(validator.WithRequiredStructEnabled()),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ Order = (*Service)(nil)
