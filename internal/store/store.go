// Package store is the order record store: the cache the consoles read,
// the durable backend behind it, and the snapshot feed.
package store

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"blinds-orders/internal/metrics"
	"blinds-orders/internal/models"
	"blinds-orders/internal/repository"
)

// Notifier receives every successfully written record. Its errors are logged only.
type Notifier interface {
	Notify(ctx context.Context, event string, o models.Order) error
}

type Option func(*Store)

func WithNotifier(n Notifier) Option { return func(s *Store) { s.notifier = n } }

func WithMetrics(m *metrics.Registry) Option { return func(s *Store) { s.metrics = m } }

type Store struct {
	repo     *repository.Repository
	hub      *hub
	notifier Notifier
	metrics  *metrics.Registry

	// mu orders writes so broadcasts follow write order
	mu sync.Mutex
}

func New(repo *repository.Repository, opts ...Option) *Store {
	s := &Store{repo: repo}
	for _, o := range opts {
		o(s)
	}
	s.hub = newHub(s.metrics.Subscribers)
	return s
}

// Warm loads every stored record into the cache and broadcasts the result.
func (s *Store) Warm(ctx context.Context) error {
	orders, err := s.repo.GetAll(ctx)
	if err != nil {
		return errors.Wrap(err, "warm cache")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo.Load(orders)
	s.hub.publish(s.snapshot())
	logrus.WithField("orders", len(orders)).Info("order cache warmed")
	return nil
}

// Replace writes the whole record. When the backend write fails nothing else
// changes and the error is returned.
func (s *Store) Replace(ctx context.Context, event string, o models.Order) error {
	s.mu.Lock()
	if err := s.repo.Replace(ctx, o); err != nil {
		s.mu.Unlock()
		s.metrics.WriteFailed()
		return err
	}
	s.repo.PutOrder(o)
	s.hub.publish(s.snapshot())
	s.mu.Unlock()

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, event, o); err != nil {
			s.metrics.PublishFailed()
			logrus.WithError(err).WithFields(logrus.Fields{
				"order_id": o.ID,
				"event":    event,
			}).Error("change feed publish failed")
		}
	}
	return nil
}

func (s *Store) Get(_ context.Context, id string) (models.Order, error) {
	o, ok := s.repo.GetOrder(id)
	if !ok {
		return models.Order{}, repository.ErrNotFound
	}
	return o, nil
}

// List returns the cached collection sorted by order number.
func (s *Store) List() []models.Order {
	return s.snapshot()
}

// Fetch reads the authoritative record set from the backend.
func (s *Store) Fetch(ctx context.Context) ([]models.Order, error) {
	return s.repo.GetAll(ctx)
}

// Subscribe returns a channel that first carries the current collection and
// then a fresh one after every write. It is closed when ctx is done.
func (s *Store) Subscribe(ctx context.Context) <-chan Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hub.subscribe(ctx, s.snapshot())
}

// Close ends every open subscription.
func (s *Store) Close() {
	s.hub.closeAll()
}

func (s *Store) snapshot() Snapshot {
	orders := s.repo.GetAllOrders()
	SortByNumber(orders)
	return orders
}

// SortByNumber orders records by the numeric part of the order number,
// ids break ties. Numbers without one sort last.
func SortByNumber(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, aok := numericPart(orders[i].OrderNumber)
		b, bok := numericPart(orders[j].OrderNumber)
		switch {
		case aok && bok && a != b:
			return a < b
		case aok != bok:
			return aok
		}
		return orders[i].ID < orders[j].ID
	})
}

func numericPart(number string) (int64, bool) {
	i := strings.LastIndexByte(number, '-')
	n, err := strconv.ParseInt(number[i+1:], 10, 64)
	return n, err == nil
}
