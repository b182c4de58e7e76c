package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"blinds-orders/internal/models"
	"blinds-orders/internal/service"
)

// fakeReader hands out queued messages and cancels the run once drained.
type fakeReader struct {
	msgs      []kafka.Message
	committed []kafka.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		return kafka.Message{}, context.Canceled
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

type fakeWriter struct {
	msgs []kafka.Message
	fail bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.fail {
		return errors.New("fail")
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type handlerStub struct {
	errs  []error
	calls int
}

func (h *handlerStub) HandleMessage(context.Context, []byte) error {
	h.calls++
	if len(h.errs) == 0 {
		return nil
	}
	err := h.errs[0]
	h.errs = h.errs[1:]
	return err
}

func runConsumer(t *testing.T, h Handler, msgs ...kafka.Message) (*fakeReader, *fakeWriter, []time.Duration) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &fakeReader{msgs: msgs, cancel: cancel}
	w := &fakeWriter{}
	c := newConsumer(Config{Topic: "status-commands", GroupID: "tracker", MaxRetries: 2, BaseBackoff: time.Millisecond}, r, w, h, nil)
	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) {
		if d > 0 {
			slept = append(slept, d)
		}
	}

	require.NoError(t, c.Subscribe(ctx))
	return r, w, slept
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestConsumer_Success_Commits(t *testing.T) {
	h := &handlerStub{}
	r, w, _ := runConsumer(t, h, kafka.Message{Key: []byte("o1"), Value: []byte(`{}`)})

	require.Equal(t, 1, h.calls)
	require.Len(t, r.committed, 1)
	require.Empty(t, w.msgs)
}

func TestConsumer_NonRetryable_DeadLettersImmediately(t *testing.T) {
	for _, sentinel := range []error{service.ErrDecode, service.ErrValidation, service.ErrNotFound, service.ErrImmutableField} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			h := &handlerStub{errs: []error{fmt.Errorf("%w: bad", sentinel)}}
			r, w, slept := runConsumer(t, h, kafka.Message{Key: []byte("o1"), Value: []byte(`x`)})

			require.Equal(t, 1, h.calls)
			require.Empty(t, slept)
			require.Len(t, w.msgs, 1)
			require.Equal(t, "1", header(w.msgs[0], "x-dlq-attempts"))
			require.Equal(t, "status-commands", header(w.msgs[0], "x-dlq-source-topic"))
			require.Contains(t, header(w.msgs[0], "x-dlq-reason"), "bad")
			require.Len(t, r.committed, 1)
		})
	}
}

func TestConsumer_Retryable_BacksOffThenDeadLetters(t *testing.T) {
	boom := errors.New("store write failed")
	h := &handlerStub{errs: []error{boom, boom, boom}}
	r, w, slept := runConsumer(t, h, kafka.Message{Key: []byte("o1"), Value: []byte(`{}`)})

	require.Equal(t, 3, h.calls)
	require.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, slept)
	require.Len(t, w.msgs, 1)
	require.Equal(t, "3", header(w.msgs[0], "x-dlq-attempts"))
	require.Len(t, r.committed, 1)
}

func TestConsumer_Retryable_RecoversWithoutDLQ(t *testing.T) {
	h := &handlerStub{errs: []error{errors.New("timeout")}}
	r, w, _ := runConsumer(t, h, kafka.Message{Value: []byte(`{}`)})

	require.Equal(t, 2, h.calls)
	require.Empty(t, w.msgs)
	require.Len(t, r.committed, 1)
}

func TestBackoff_Caps(t *testing.T) {
	require.Equal(t, time.Duration(0), backoff(0, time.Second))
	require.Equal(t, 4*time.Second, backoff(3, time.Second))
	require.Equal(t, 5*time.Second, backoff(10, time.Second))
}

func TestChangeFeed_Notify(t *testing.T) {
	w := &fakeWriter{}
	f := &ChangeFeed{writer: w}
	o := models.Order{ID: "id-1", OrderNumber: "DDI-673", Status: models.StatusReady}

	require.NoError(t, f.Notify(context.Background(), models.EventAdvanced, o))
	require.Len(t, w.msgs, 1)
	require.Equal(t, "id-1", string(w.msgs[0].Key))
	require.Equal(t, models.EventAdvanced, header(w.msgs[0], "event"))

	var ev models.ChangeEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	require.Equal(t, models.EventAdvanced, ev.Event)
	require.Equal(t, "DDI-673", ev.Order.OrderNumber)

	w.fail = true
	require.Error(t, f.Notify(context.Background(), models.EventUpdated, o))
}

func TestCommandPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &CommandPublisher{writer: w}

	cmd := models.StatusCommand{OrderID: "id-1", Action: models.ActionSet, Status: models.StatusReady, Actor: "bot"}
	require.NoError(t, p.Publish(context.Background(), cmd))
	require.Len(t, w.msgs, 1)
	require.Equal(t, "id-1", string(w.msgs[0].Key))

	var got models.StatusCommand
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	require.Equal(t, cmd, got)
}
