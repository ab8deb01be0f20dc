package messaging_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/edgelink/linkservice/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Name string `json:"name"`
}

// capturingPublisher records published messages per topic.
type capturingPublisher struct {
	published map[string][]*message.Message
	err       error
	closed    bool
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{published: make(map[string][]*message.Message)}
}

func (p *capturingPublisher) Publish(topic string, messages ...*message.Message) error {
	if p.err != nil {
		return p.err
	}

	p.published[topic] = append(p.published[topic], messages...)

	return nil
}

func (p *capturingPublisher) Close() error {
	p.closed = true

	return nil
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("publishes the event as json", func(t *testing.T) {
		publisher := newCapturingPublisher()
		publish := messaging.NewPublishFunc[testEvent](publisher, "test.topic")

		require.NoError(t, publish(&testEvent{Name: "hello"}))

		msgs := publisher.published["test.topic"]
		require.Len(t, msgs, 1)
		assert.NotEmpty(t, msgs[0].UUID)

		var decoded testEvent
		require.NoError(t, json.Unmarshal(msgs[0].Payload, &decoded))
		assert.Equal(t, "hello", decoded.Name)
	})

	t.Run("propagates publisher errors", func(t *testing.T) {
		publisher := newCapturingPublisher()
		publisher.err = errors.New("broker down")
		publish := messaging.NewPublishFunc[testEvent](publisher, "test.topic")

		assert.Error(t, publish(&testEvent{Name: "hello"}))
	})
}

func TestPublisherGroup(t *testing.T) {
	t.Run("exposes the publisher and closes it on shutdown", func(t *testing.T) {
		publisher := newCapturingPublisher()
		group := messaging.NewPublisherGroup(publisher)

		assert.Equal(t, message.Publisher(publisher), group.Publisher())

		require.NoError(t, group.Shutdown())
		assert.True(t, publisher.closed)
	})
}
