// Package allocator hands out human-facing sequential order numbers of the
// form PREFIX-<n>. Numbering is best-effort: two concurrent allocations that
// read the same record set get the same number.
package allocator

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"blinds-orders/internal/models"
)

const (
	DefaultPrefix   = "DDI"
	DefaultBaseline = 672

	// fallbackFloor separates timestamp fallback numbers (unix millis) from
	// sequential ones, so one outage does not push every later number into the millis range.
	fallbackFloor = 1_000_000_000_000
)

// Allocation is the outcome of one allocation.
// Fallback is set when the number was derived from the clock instead of the record set;
// the caller should surface a warning because numbering is no longer dense.
type Allocation struct {
	Number   string
	Fallback bool
}

// Allocator is implemented by every numbering backend.
type Allocator interface {
	Allocate(ctx context.Context) Allocation
}

// Lister reads the authoritative record set.
type Lister interface {
	Fetch(ctx context.Context) ([]models.Order, error)
}

// Scheme is the prefix and baseline shared by all backends.
type Scheme struct {
	Prefix   string
	Baseline int64
	pattern  *regexp.Regexp
}

func NewScheme(prefix string, baseline int64) Scheme {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Scheme{
		Prefix:   prefix,
		Baseline: baseline,
		pattern:  regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-(\d+)$`),
	}
}

// Parse returns the integer part of a number in this scheme.
func (s Scheme) Parse(number string) (int64, bool) {
	m := s.pattern.FindStringSubmatch(number)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (s Scheme) Format(n int64) string {
	return s.Prefix + "-" + strconv.FormatInt(n, 10)
}

// Max returns the highest sequential number in use, never lower than the baseline.
func (s Scheme) Max(orders []models.Order) int64 {
	max := s.Baseline
	for _, o := range orders {
		n, ok := s.Parse(o.OrderNumber)
		if !ok || n >= fallbackFloor {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

// Next is the pure allocation step: the number after the highest one in orders.
func (s Scheme) Next(orders []models.Order) string {
	return s.Format(s.Max(orders) + 1)
}

// Fallback builds a number from the current unix milliseconds.
func (s Scheme) Fallback(now time.Time) string {
	return s.Format(now.UnixMilli())
}

// ScanAllocator reads every record and increments the highest number.
type ScanAllocator struct {
	scheme Scheme
	source Lister
	now    func() time.Time
}

func NewScanAllocator(scheme Scheme, source Lister) *ScanAllocator {
	return &ScanAllocator{scheme: scheme, source: source, now: time.Now}
}

func (a *ScanAllocator) Allocate(ctx context.Context) Allocation {
	orders, err := a.source.Fetch(ctx)
	if err != nil {
		num := a.scheme.Fallback(a.now())
		logrus.WithError(err).WithField("order_number", num).Warn("order number scan failed, using timestamp number")
		return Allocation{Number: num, Fallback: true}
	}
	return Allocation{Number: a.scheme.Next(orders)}
}
