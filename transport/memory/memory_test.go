package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlink/agentlink/transport"
)

func TestPublishSubscribe(t *testing.T) {
	broker := NewBroker()
	pub := broker.Client()
	sub := broker.Client()
	require.NoError(t, pub.Connect())
	require.NoError(t, sub.Connect())

	var got []string
	require.NoError(t, sub.Subscribe("rooms/r/group", func(topic string, payload []byte) {
		got = append(got, string(payload))
	}, transport.AtLeastOnce))

	require.NoError(t, pub.Publish("rooms/r/group", []byte("one"), transport.AtLeastOnce))
	require.NoError(t, pub.Publish("rooms/r/other", []byte("ignored"), transport.AtLeastOnce))

	assert.Equal(t, []string{"one"}, got)
}

func TestPublisherReceivesOwnMessages(t *testing.T) {
	broker := NewBroker()
	c := broker.Client()
	require.NoError(t, c.Connect())

	var got int
	require.NoError(t, c.Subscribe("t", func(string, []byte) { got++ }, transport.AtMostOnce))
	require.NoError(t, c.Publish("t", []byte("x"), transport.AtMostOnce))
	assert.Equal(t, 1, got)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	broker := NewBroker()
	c := broker.Client()
	require.NoError(t, c.Connect())

	var got int
	require.NoError(t, c.Subscribe("t", func(string, []byte) { got++ }, transport.AtMostOnce))
	require.NoError(t, c.Unsubscribe("t"))
	require.NoError(t, c.Publish("t", []byte("x"), transport.AtMostOnce))
	assert.Zero(t, got)
}

func TestDisconnectDropsSubscriptions(t *testing.T) {
	broker := NewBroker()
	sub := broker.Client()
	pub := broker.Client()
	require.NoError(t, sub.Connect())
	require.NoError(t, pub.Connect())

	var got int
	require.NoError(t, sub.Subscribe("t", func(string, []byte) { got++ }, transport.AtMostOnce))
	require.NoError(t, sub.Disconnect())
	require.NoError(t, pub.Publish("t", []byte("x"), transport.AtMostOnce))
	assert.Zero(t, got)
}

func TestNotConnectedErrors(t *testing.T) {
	c := NewBroker().Client()

	assert.ErrorIs(t, c.Subscribe("t", func(string, []byte) {}, transport.AtMostOnce), ErrNotConnected)
	assert.ErrorIs(t, c.Unsubscribe("t"), ErrNotConnected)
	assert.ErrorIs(t, c.Publish("t", nil, transport.AtMostOnce), ErrNotConnected)
}
