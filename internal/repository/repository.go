package repository

import (
	"context"
	"errors"

	"blinds-orders/internal/models"
	"blinds-orders/internal/repository/cache"
)

var ErrNotFound = errors.New("order not found")

// OrderStorage is the durable backend. Replace writes the whole record,
// inserting it when the id is new.
type OrderStorage interface {
	Replace(ctx context.Context, o models.Order) error
	Get(ctx context.Context, id string) (models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
}

type OrderCache interface {
	PutOrder(o models.Order)
	GetOrder(id string) (models.Order, bool)
	GetAllOrders() []models.Order
	Load(orders []models.Order)
}

type Repository struct {
	OrderStorage
	OrderCache
}

func NewRepository(storage OrderStorage) *Repository {
	return &Repository{
		OrderStorage: storage,
		OrderCache:   cache.NewOrderCache(),
	}
}
