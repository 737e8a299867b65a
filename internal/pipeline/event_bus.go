package pipeline

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// TopicBus is a typed facade over the process-wide event bus. Payloads are
// delivered as values of T, so subscribers never see a wire encoding.
type TopicBus[T any] interface {
	Subscribe(topic string, handler func(event T) error) error
	Publish(topic string, event T)
}

type topicBusImpl[T any] struct {
	bus    EventBus.Bus
	logger *zap.Logger
}

func NewTopicBus[T any](bus EventBus.Bus, logger *zap.Logger) TopicBus[T] {
	return &topicBusImpl[T]{
		bus:    bus,
		logger: logger,
	}
}

// Subscribe registers an asynchronous transactional handler: events on the
// topic are handled off the publisher's goroutine, one at a time in
// publish order. Handler errors are logged, not propagated.
func (tb *topicBusImpl[T]) Subscribe(topic string, handler func(event T) error) error {
	err := tb.bus.SubscribeAsync(
		topic,
		func(event T) {
			if err := handler(event); err != nil {
				tb.logger.Error("Failed to handle event on topic",
					zap.String("topic", topic),
					zap.Error(err),
				)
			}
		},
		true,
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}
	return nil
}

func (tb *topicBusImpl[T]) Publish(topic string, event T) {
	tb.bus.Publish(topic, event)
}
