// Package pebble stores order records in an embedded pebble database,
// for single-shop installs that run without postgres.
package pebble

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"

	"blinds-orders/internal/models"
	"blinds-orders/internal/repository"
)

var (
	keyPrefix = []byte("order/")
	keyUpper  = []byte("order0") // '0' follows '/'
)

type OrderPebbleRepo struct {
	db *pebble.DB
}

func Open(dir string) (*OrderPebbleRepo, error) {
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "pebble open")
	}
	return &OrderPebbleRepo{db: db}, nil
}

func (r *OrderPebbleRepo) Close() error { return r.db.Close() }

func orderKey(id string) []byte {
	return append(append([]byte(nil), keyPrefix...), id...)
}

func (r *OrderPebbleRepo) Replace(ctx context.Context, o models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(o)
	if err != nil {
		return errors.Wrapf(err, "encode order %s", o.ID)
	}
	return errors.Wrapf(r.db.Set(orderKey(o.ID), b, pebble.Sync), "replace order %s", o.ID)
}

func (r *OrderPebbleRepo) Get(ctx context.Context, id string) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	v, closer, err := r.db.Get(orderKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return models.Order{}, repository.ErrNotFound
	}
	if err != nil {
		return models.Order{}, errors.Wrapf(err, "get order %s", id)
	}
	defer closer.Close()

	var o models.Order
	if err := json.Unmarshal(v, &o); err != nil {
		return models.Order{}, errors.Wrapf(err, "decode order %s", id)
	}
	return o, nil
}

func (r *OrderPebbleRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	it, err := r.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: keyUpper})
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	defer it.Close()

	out := make([]models.Order, 0)
	for it.First(); it.Valid(); it.Next() {
		var o models.Order
		if err := json.Unmarshal(it.Value(), &o); err != nil {
			return nil, errors.Wrapf(err, "decode %s", it.Key())
		}
		out = append(out, o)
	}
	return out, errors.Wrap(it.Error(), "list orders")
}

var _ repository.OrderStorage = (*OrderPebbleRepo)(nil)
