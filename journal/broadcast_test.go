package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_Publish(t *testing.T) {
	b := newBroadcaster(0)
	defer b.close()

	first := Collect(t, b.subscribe)
	second := Collect(t, b.subscribe)

	b.publish(Event{Message: "step passed"})
	b.publish(Event{Message: "scenario finished"})

	assert.Equal(t, []string{"step passed", "scenario finished"}, messages(first.Wait(2)))
	assert.Equal(t, []string{"step passed", "scenario finished"}, messages(second.Wait(2)))
}

func TestBroadcaster_FullSubscriberMissesEvents(t *testing.T) {
	b := newBroadcaster(1)
	defer b.close()

	ch := b.subscribe(context.Background())

	assert.Equal(t, 0, b.publish(Event{Message: "kept"}))
	assert.Equal(t, 1, b.publish(Event{Message: "missed"}))

	e := <-ch
	assert.Equal(t, "kept", e.Message)
}

func TestBroadcaster_UnsubscribeOnContextDone(t *testing.T) {
	b := newBroadcaster(0)
	defer b.close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unsubscribe")
	}
}

func TestBroadcaster_SubscribeAfterClose(t *testing.T) {
	b := newBroadcaster(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.subscribe(ctx)

	b.close()
	b.close()

	_, ok := <-ch
	require.False(t, ok)
	_, ok = <-b.subscribe(context.Background())
	assert.False(t, ok)
	assert.Equal(t, 0, b.publish(Event{}))
}
