package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"ms-boxoffice/internal/models"
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

// PublishTicketPurchased streams a committed purchase to Kafka. Keyed by
// event id so per-event consumers see purchases in commit order.
func (p *Producer) PublishTicketPurchased(confirmation models.PurchaseConfirmation) error {
	// Never ship receipt bytes through the broker.
	confirmation.QRReceipt = nil

	msgBytes, err := json.Marshal(confirmation)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(fmt.Sprintf("%d", confirmation.EventID)),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
