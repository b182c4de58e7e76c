package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transition sources.
const (
	SourceAdvance = "advance"
	SourceDirect  = "direct"
)

// Registry holds the service metrics. A nil *Registry is valid and records nothing.
type Registry struct {
	reg                 *prometheus.Registry
	OrdersCreated       prometheus.Counter
	AllocatorFallback   prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	StoreWriteFailures  prometheus.Counter
	FeedSubscribers     prometheus.Gauge
	FeedPublishFailures prometheus.Counter
	CommandsDeadLetter  prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_created_total"})
	fallback := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_allocator_fallback_total"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orders_status_transitions_total"}, []string{"source"})
	writeFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_store_write_failures_total"})
	subscribers := prometheus.NewGauge(prometheus.GaugeOpts{Name: "orders_feed_subscribers"})
	publishFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_change_feed_publish_failures_total"})
	deadLetter := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_commands_dead_letter_total"})

	r.MustRegister(created, fallback, transitions, writeFailures, subscribers, publishFailures, deadLetter,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return &Registry{
		reg:                 r,
		OrdersCreated:       created,
		AllocatorFallback:   fallback,
		StatusTransitions:   transitions,
		StoreWriteFailures:  writeFailures,
		FeedSubscribers:     subscribers,
		FeedPublishFailures: publishFailures,
		CommandsDeadLetter:  deadLetter,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

func (r *Registry) Created(fallback bool) {
	if r == nil {
		return
	}
	r.OrdersCreated.Inc()
	if fallback {
		r.AllocatorFallback.Inc()
	}
}

func (r *Registry) Transition(source string) {
	if r == nil {
		return
	}
	r.StatusTransitions.WithLabelValues(source).Inc()
}

func (r *Registry) WriteFailed() {
	if r == nil {
		return
	}
	r.StoreWriteFailures.Inc()
}

func (r *Registry) Subscribers(n int) {
	if r == nil {
		return
	}
	r.FeedSubscribers.Set(float64(n))
}

func (r *Registry) PublishFailed() {
	if r == nil {
		return
	}
	r.FeedPublishFailures.Inc()
}

func (r *Registry) DeadLettered() {
	if r == nil {
		return
	}
	r.CommandsDeadLetter.Inc()
}
