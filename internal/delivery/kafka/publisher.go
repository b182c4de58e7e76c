package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	kafka "github.com/segmentio/kafka-go"

	"blinds-orders/internal/models"
	"blinds-orders/internal/store"
)

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
}

// ChangeFeed publishes every written order record, keyed by order id so that
// all changes of one order land on one partition in write order.
type ChangeFeed struct {
	writer messageWriter
}

func NewChangeFeed(brokers []string, topic string) *ChangeFeed {
	return &ChangeFeed{writer: newWriter(brokers, topic)}
}

func (f *ChangeFeed) Notify(ctx context.Context, event string, o models.Order) error {
	b, err := json.Marshal(models.ChangeEvent{Event: event, Order: o})
	if err != nil {
		return errors.Wrap(err, "marshal change event")
	}
	err = f.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(o.ID),
		Value:   b,
		Headers: []kafka.Header{{Key: "event", Value: []byte(event)}},
	})
	return errors.Wrapf(err, "publish %s for order %s", event, o.ID)
}

var _ store.Notifier = (*ChangeFeed)(nil)

func (f *ChangeFeed) Close() error {
	return f.writer.Close()
}

// CommandPublisher sends status commands, the way automated updaters do.
type CommandPublisher struct {
	writer messageWriter
}

func NewCommandPublisher(brokers []string, topic string) *CommandPublisher {
	return &CommandPublisher{writer: newWriter(brokers, topic)}
}

func (p *CommandPublisher) Publish(ctx context.Context, cmd models.StatusCommand) error {
	b, err := json.Marshal(cmd)
	if err != nil {
		return errors.Wrap(err, "marshal status command")
	}
	return p.PublishRaw(ctx, cmd.OrderID, b)
}

// PublishRaw sends payload as is. Used to replay files that may not decode.
func (p *CommandPublisher) PublishRaw(ctx context.Context, key string, payload []byte) error {
	return errors.Wrap(p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	}), "publish status command")
}

func (p *CommandPublisher) Close() error {
	return p.writer.Close()
}
