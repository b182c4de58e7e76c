package postgres

import (
	"context"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"

	"blinds-orders/internal/models"
	"blinds-orders/internal/repository"
)

type OrderPostgresRepo struct {
	db *gorm.DB
}

func NewOrderPostgres(db *gorm.DB) *OrderPostgresRepo {
	return &OrderPostgresRepo{db: db}
}

// Replace upserts the whole row. The audit timestamps are written as given.
func (r *OrderPostgresRepo) Replace(ctx context.Context, o models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.
		Set("gorm:update_column", true).
		Save(&o).Error
	return errors.Wrapf(err, "replace order %s", o.ID)
}

func (r *OrderPostgresRepo) Get(ctx context.Context, id string) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	var o models.Order
	err := r.db.Where("id = ?", id).First(&o).Error
	if gorm.IsRecordNotFoundError(err) {
		return models.Order{}, repository.ErrNotFound
	}
	return o, errors.Wrapf(err, "get order %s", id)
}

func (r *OrderPostgresRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []models.Order
	if err := r.db.Order("created_at").Find(&out).Error; err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return out, nil
}
