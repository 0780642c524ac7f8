package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/events"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// KafkaNotifier publishes notifications to a Kafka broker. Publishing is
// detached from the caller: failures are logged, never returned.
type KafkaNotifier struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewKafkaNotifier(brokers []string, logger ...*zap.Logger) *KafkaNotifier {
	l := zap.L().Named("notify.kafka")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notify.kafka")
	}
	writer := &kafkago.Writer{
		Addr:     kafkago.TCP(brokers...),
		Balancer: &kafkago.LeastBytes{},
	}
	return &KafkaNotifier{writer: writer, logger: l}
}

func (n *KafkaNotifier) RequestSubmitted(ctx context.Context, ev events.LeaveRequestSubmittedEvent) {
	n.publish(ev.RequestID, events.LeaveRequestSubmittedTopic, ev.EventType, ev)
}

func (n *KafkaNotifier) RequestDecided(ctx context.Context, ev events.LeaveRequestDecidedEvent) {
	n.publish(ev.RequestID, events.LeaveRequestDecidedTopic, ev.EventType, ev)
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

func (n *KafkaNotifier) publish(key, topic, eventType string, payload any) {
	value, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("marshal notification failed",
			zap.String("topic", topic), zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		msg := kafkago.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: value,
			Headers: []kafkago.Header{
				{Key: "event_type", Value: []byte(eventType)},
			},
		}
		if err := n.writer.WriteMessages(ctx, msg); err != nil {
			n.logger.Error("publish notification failed",
				zap.String("topic", topic),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}()
}
