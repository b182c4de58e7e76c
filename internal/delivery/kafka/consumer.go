package kafka

import (
	"context"
	"errors"
	"strconv"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"blinds-orders/internal/metrics"
	"blinds-orders/internal/service"
)

type Config struct {
	Brokers     []string
	GroupID     string
	Topic       string
	DLQ         string
	MaxRetries  int
	BaseBackoff time.Duration
}

// Handler processes one command payload.
type Handler interface {
	HandleMessage(ctx context.Context, payload []byte) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads status commands, retries transient failures with backoff and
// moves anything it cannot apply to the dead-letter topic.
type Consumer struct {
	reader  messageReader
	dlq     messageWriter
	handler Handler
	cfg     Config
	metrics *metrics.Registry
	sleep   func(ctx context.Context, d time.Duration)
}

func NewConsumer(cfg Config, handler Handler, m *metrics.Registry) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        100 * time.Millisecond,
		CommitInterval: 0,
	})
	var w messageWriter
	if cfg.DLQ != "" {
		w = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.DLQ,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		}
	}
	return newConsumer(cfg, r, w, handler, m)
}

func newConsumer(cfg Config, r messageReader, dlq messageWriter, handler Handler, m *metrics.Registry) *Consumer {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}
	return &Consumer{reader: r, dlq: dlq, handler: handler, cfg: cfg, metrics: m, sleep: sleepCtx}
}

func (c *Consumer) Subscribe(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logrus.WithError(err).Warn("kafka fetch error")
			c.sleep(ctx, 300*time.Millisecond)
			continue
		}

		log := logrus.WithFields(logrus.Fields{
			"topic":     m.Topic,
			"partition": m.Partition,
			"offset":    m.Offset,
			"key":       string(m.Key),
		})
		log.Debug("status command fetched")

		attempts, last := c.process(ctx, m)
		if last == nil {
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				log.WithError(err).Warn("commit failed")
			}
			continue
		}
		if ctx.Err() != nil {
			return nil
		}

		if c.dlq != nil {
			if err := c.dlq.WriteMessages(ctx, c.deadLetter(m, last, attempts)); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.WithError(err).Error("write to DLQ failed")
				c.sleep(ctx, 500*time.Millisecond)
				continue
			}
			c.metrics.DeadLettered()
			log.WithError(last).Warn("status command dead-lettered")
		} else {
			log.WithError(last).Warn("DLQ disabled, status command dropped")
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).Warn("commit after DLQ failed")
		}
	}
}

// process runs the handler until it succeeds, fails permanently or runs out of retries.
func (c *Consumer) process(ctx context.Context, m kafka.Message) (attempts int, last error) {
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		attempts++
		c.sleep(ctx, backoff(attempt, c.cfg.BaseBackoff))
		if ctx.Err() != nil {
			return attempts, ctx.Err()
		}
		last = c.handler.HandleMessage(ctx, m.Value)
		if last == nil || isNonRetryable(last) {
			return attempts, last
		}
	}
	return attempts, last
}

func (c *Consumer) deadLetter(m kafka.Message, reason error, attempts int) kafka.Message {
	headers := append([]kafka.Header(nil), m.Headers...)
	return kafka.Message{
		Key:   m.Key,
		Value: m.Value,
		Headers: append(headers,
			kafka.Header{Key: "x-dlq-reason", Value: []byte(trimErr(reason))},
			kafka.Header{Key: "x-dlq-attempts", Value: []byte(strconv.Itoa(attempts))},
			kafka.Header{Key: "x-dlq-ts", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
			kafka.Header{Key: "x-dlq-source-topic", Value: []byte(c.cfg.Topic)},
			kafka.Header{Key: "x-dlq-group", Value: []byte(c.cfg.GroupID)},
		),
	}
}

func (c *Consumer) Close() error {
	var first error
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			first = err
		}
	}
	if c.dlq != nil {
		if err := c.dlq.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func backoff(n int, base time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	d := base * (1 << (n - 1))
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func trimErr(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > 1000 {
		return s[:1000]
	}
	return s
}

func isNonRetryable(err error) bool {
	return errors.Is(err, service.ErrDecode) ||
		errors.Is(err, service.ErrValidation) ||
		errors.Is(err, service.ErrNotFound) ||
		errors.Is(err, service.ErrImmutableField)
}
