package kafka

import (
	"context"
	"strings"

	"github.com/IBM/sarama"

	"staybook/internal/app/events"
	domainevents "staybook/internal/domain/shared/events"
)

// Publisher sends committed domain events to Kafka. Topic names derive from
// the event name: "booking.canceled" with prefix "staybook" publishes to
// "staybook.booking.canceled". The aggregate id keys the message so events
// for one booking or block stay ordered within a partition.
type Publisher struct {
	sync   sarama.SyncProducer
	prefix string
}

func NewPublisher(brokers []string, topicPrefix string, cfg *sarama.Config) (*Publisher, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	sync, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Publisher{sync: sync, prefix: strings.TrimSuffix(topicPrefix, ".")}, nil
}

func (p *Publisher) Publish(ctx context.Context, event domainevents.DomainEvent) error {
	payload, err := events.Encode(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topicFor(event.EventName()),
		Key:   sarama.StringEncoder(event.AggregateID()),
		Value: sarama.ByteEncoder(payload),
	}
	_, _, err = p.sync.SendMessage(msg)
	return err
}

func (p *Publisher) topicFor(eventName string) string {
	if p.prefix == "" {
		return eventName
	}
	return p.prefix + "." + eventName
}

func (p *Publisher) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}

var _ events.Publisher = (*Publisher)(nil)
