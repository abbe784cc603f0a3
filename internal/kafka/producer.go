package kafka

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"skylink/internal/models"
)

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	return &Producer{Writer: writer}
}

// PublishTicketIssued streams a ticket issuance event. The key is the flight
// id so all events for one flight land on the same partition.
func (p *Producer) PublishTicketIssued(event models.TicketIssuedEvent) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(strconv.FormatInt(event.FlightID, 10)),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
