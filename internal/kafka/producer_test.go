package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type memWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	fail   bool
	closed bool
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return errors.New("broker down")
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestProducerFlushesOnClose(t *testing.T) {
	w := &memWriter{}
	p := newProducer(w, 8, zerolog.Nop())
	p.Start(context.Background())

	p.Publish([]byte("k1"), []byte("v1"), kafka.Header{Key: "x-event-type", Value: []byte("A")})
	p.Publish([]byte("k2"), []byte("v2"))
	p.Close()
	p.WaitClosed()

	require.True(t, w.closed)
	require.Len(t, w.msgs, 2)
	require.Equal(t, "k1", string(w.msgs[0].Key))
	require.Equal(t, "x-event-type", w.msgs[0].Headers[0].Key)
	require.Equal(t, "v2", string(w.msgs[1].Value))
}

func TestProducerDrainsOnCancel(t *testing.T) {
	w := &memWriter{}
	p := newProducer(w, 8, zerolog.Nop())
	p.Publish([]byte("k1"), []byte("v1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Start(ctx)
	p.WaitClosed()

	require.True(t, w.closed)
	require.Len(t, w.msgs, 1)
}

func TestProducerSurvivesWriteErrors(t *testing.T) {
	w := &memWriter{fail: true}
	p := newProducer(w, 1, zerolog.Nop())
	p.Start(context.Background())

	p.Publish([]byte("k"), []byte("v"))
	p.Close()
	p.WaitClosed()

	require.Empty(t, w.msgs)
	require.True(t, w.closed)
}

func TestUnwrapPayload(t *testing.T) {
	type payload struct {
		Flow string `json:"flow"`
	}
	got, err := UnwrapPayload[payload](json.RawMessage(`{"flow":"login"}`))
	require.NoError(t, err)
	require.Equal(t, "login", got.Flow)

	_, err = UnwrapPayload[payload](json.RawMessage(`[`))
	require.ErrorContains(t, err, "decode payload")

	require.JSONEq(t, `{"flow":"x"}`, string(MustMarshal(payload{Flow: "x"})))
}
