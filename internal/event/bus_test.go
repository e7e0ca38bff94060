package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDispatchOrder(t *testing.T) {
	b := NewBus[int]()
	var got []string
	b.Subscribe(func(v int) { got = append(got, "first") })
	b.Subscribe(func(v int) { got = append(got, "second") })

	b.Dispatch(1)

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestBusUnsubscribe(t *testing.T) {
	b := NewBus[string]()
	calls := 0
	id := b.Subscribe(func(string) { calls++ })

	assert.True(t, b.Unsubscribe(id))
	assert.False(t, b.Unsubscribe(id))

	b.Dispatch("x")
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, b.Len())
}

func TestBusClearDoesNotNotify(t *testing.T) {
	b := NewBus[int]()
	calls := 0
	b.Subscribe(func(int) { calls++ })
	b.Subscribe(func(int) { calls++ })

	assert.Equal(t, 2, b.Clear())
	b.Dispatch(7)
	assert.Equal(t, 0, calls)
}

func TestBusUnsubscribeDuringDispatch(t *testing.T) {
	b := NewBus[int]()
	var id SubscriptionID
	calls := 0
	id = b.Subscribe(func(int) {
		calls++
		b.Unsubscribe(id)
	})

	b.Dispatch(1)
	b.Dispatch(2)

	assert.Equal(t, 1, calls)
}
