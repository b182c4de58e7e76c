// Package cache keeps the in-memory copy of every order record that the
// consoles read from. It holds no TTL: the store writes through it.
package cache

import (
	"hash/fnv"
	"sync"

	"blinds-orders/internal/models"
)

const defaultShards = 16

type shard struct {
	mu   sync.RWMutex
	data map[string]models.Order
}

type OrderCache struct {
	shards []shard
}

type Option func(*OrderCache)

// WithShards sets the shard count, rounded up to a power of two.
func WithShards(n int) Option {
	return func(c *OrderCache) {
		if n <= 0 {
			n = defaultShards
		}
		size := 1
		for size < n {
			size <<= 1
		}
		c.shards = make([]shard, size)
		for i := range c.shards {
			c.shards[i] = shard{data: make(map[string]models.Order)}
		}
	}
}

func NewOrderCache(opts ...Option) *OrderCache {
	c := &OrderCache{}
	WithShards(defaultShards)(c)
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *OrderCache) shardFor(id string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &c.shards[int(h.Sum32())&(len(c.shards)-1)]
}

// PutOrder stores a private copy of o.
func (c *OrderCache) PutOrder(o models.Order) {
	s := c.shardFor(o.ID)
	s.mu.Lock()
	s.data[o.ID] = o.Clone()
	s.mu.Unlock()
}

func (c *OrderCache) GetOrder(id string) (models.Order, bool) {
	s := c.shardFor(id)
	s.mu.RLock()
	o, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return models.Order{}, false
	}
	return o.Clone(), true
}

// GetAllOrders returns copies in no particular order.
func (c *OrderCache) GetAllOrders() []models.Order {
	out := make([]models.Order, 0, c.Len())
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		for _, o := range s.data {
			out = append(out, o.Clone())
		}
		s.mu.RUnlock()
	}
	return out
}

// Load replaces the whole content with orders.
func (c *OrderCache) Load(orders []models.Order) {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.data = make(map[string]models.Order)
		s.mu.Unlock()
	}
	for _, o := range orders {
		c.PutOrder(o)
	}
}

func (c *OrderCache) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.data)
		s.mu.RUnlock()
	}
	return n
}
