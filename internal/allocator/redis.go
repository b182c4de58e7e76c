package allocator

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// raiseScript sets the counter to ARGV[1] unless it already holds more.
	raiseScript = `
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
local floor = tonumber(ARGV[1])
if cur < floor then
	redis.call('SET', KEYS[1], floor)
	return 1
end
return 0`

	// incrScript increments a counter that must already exist, lifting it to
	// ARGV[1] first. A missing key returns -1 instead of restarting at 1.
	incrScript = `
local cur = redis.call('GET', KEYS[1])
if not cur then
	return -1
end
local floor = tonumber(ARGV[1])
if tonumber(cur) < floor then
	redis.call('SET', KEYS[1], floor)
end
return redis.call('INCR', KEYS[1])`
)

var errCounterMissing = errors.New("order counter key is missing")

// Counter is the subset of the redis client the counter allocator needs.
type Counter interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// CounterAllocator uses an atomic redis increment, which closes the race window
// of ScanAllocator. The counter is seeded from a record scan and never moves
// below the highest number this process has handed out; when redis is
// unavailable it degrades to the scan allocator and reseeds afterwards.
type CounterAllocator struct {
	scheme Scheme
	rdb    Counter
	key    string
	scan   *ScanAllocator

	mu     sync.Mutex
	seeded bool
	floor  int64
}

func NewCounterAllocator(scheme Scheme, rdb Counter, key string, source Lister) *CounterAllocator {
	return &CounterAllocator{
		scheme: scheme,
		rdb:    rdb,
		key:    key,
		scan:   NewScanAllocator(scheme, source),
		floor:  scheme.Baseline,
	}
}

// Seed raises the counter to the highest number in use. It never lowers it.
func (a *CounterAllocator) Seed(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seed(ctx)
}

func (a *CounterAllocator) seed(ctx context.Context) error {
	orders, err := a.scan.source.Fetch(ctx)
	if err != nil {
		return errors.Wrap(err, "scan orders")
	}
	if m := a.scheme.Max(orders); m > a.floor {
		a.floor = m
	}
	if err := a.rdb.Eval(ctx, raiseScript, []string{a.key}, a.floor).Err(); err != nil {
		return errors.Wrap(err, "raise order counter")
	}
	a.seeded = true
	return nil
}

func (a *CounterAllocator) incr(ctx context.Context) (int64, error) {
	n, err := a.rdb.Eval(ctx, incrScript, []string{a.key}, a.floor).Int64()
	if err != nil {
		return 0, errors.Wrap(err, "increment order counter")
	}
	if n < 0 {
		return 0, errCounterMissing
	}
	return n, nil
}

func (a *CounterAllocator) Allocate(ctx context.Context) Allocation {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.seeded {
		if err := a.seed(ctx); err != nil {
			logrus.WithError(err).Warn("order counter seed failed, scanning records")
			return a.degrade(ctx)
		}
	}
	n, err := a.incr(ctx)
	if errors.Is(err, errCounterMissing) {
		logrus.WithField("key", a.key).Warn("order counter lost, reseeding from records")
		if err = a.seed(ctx); err == nil {
			n, err = a.incr(ctx)
		}
	}
	if err != nil {
		logrus.WithError(err).Warn("order counter increment failed, scanning records")
		return a.degrade(ctx)
	}
	a.floor = n
	return Allocation{Number: a.scheme.Format(n)}
}

// degrade allocates from a scan and forces a reseed on the next call, so the
// counter catches up with the number issued here once redis is back.
func (a *CounterAllocator) degrade(ctx context.Context) Allocation {
	a.seeded = false
	got := a.scan.Allocate(ctx)
	if got.Fallback {
		return got
	}
	n, ok := a.scheme.Parse(got.Number)
	if !ok {
		return got
	}
	if n <= a.floor {
		n = a.floor + 1
	}
	a.floor = n
	return Allocation{Number: a.scheme.Format(n)}
}
