package mq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalBus_DeliversJSON(t *testing.T) {
	bus := NewLocalBus(zap.NewNop())

	var (
		mu  sync.Mutex
		got []map[string]any
	)
	require.NoError(t, bus.Subscribe("review.submitted", func(_ context.Context, data json.RawMessage) error {
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
		return nil
	}))

	require.NoError(t, bus.Publish(context.Background(), "review.submitted", map[string]any{"review_id": 7}))
	require.NoError(t, bus.Publish(context.Background(), "quote.requested", map[string]any{"quote_id": 1}))
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.EqualValues(t, 7, got[0]["review_id"])
}

func TestLocalBus_HandlerFailuresAreContained(t *testing.T) {
	bus := NewLocalBus(zap.NewNop())

	calls := 0
	require.NoError(t, bus.Subscribe("contact.received", func(context.Context, json.RawMessage) error {
		calls++
		if calls == 1 {
			panic("boom")
		}
		return errors.New("smtp down")
	}))

	require.NoError(t, bus.Publish(context.Background(), "contact.received", struct{}{}))
	bus.Wait()
	require.NoError(t, bus.Publish(context.Background(), "contact.received", struct{}{}))
	bus.Wait()

	assert.Equal(t, 2, calls)
}

func TestLocalBus_UnencodablePayload(t *testing.T) {
	bus := NewLocalBus(zap.NewNop())
	err := bus.Publish(context.Background(), "x", make(chan int))
	assert.Error(t, err)
}
