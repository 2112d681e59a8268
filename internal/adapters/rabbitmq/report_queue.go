package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"zakupki-parser/internal/core/domain"
	"zakupki-parser/internal/metrics"
	"zakupki-parser/pkg/rabbitmq/rabbitmq_producer"
)

// ReportQueueAdapter реализует DeliverySinkPort поверх RabbitMQ:
// пакет канонических заказов публикуется в обменник отчетов, откуда его
// забирает конвейер отчетности.
type ReportQueueAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
	sourceName string
}

// NewReportQueueAdapter создает новый экземпляр адаптера.
// producer — уже инициализированный rabbitmq_producer.Publisher.
func NewReportQueueAdapter(producer *rabbitmq_producer.Publisher, routingKey string, sourceName string) (*ReportQueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &ReportQueueAdapter{
		producer:   producer,
		routingKey: routingKey,
		sourceName: sourceName,
	}, nil
}

// Send публикует пакет заказов в очередь отчетов.
func (a *ReportQueueAdapter) Send(ctx context.Context, batch []domain.CanonicalOrder) error {
	payload, err := json.Marshal(domain.DeliveryBatch{Name: a.sourceName, Data: batch})
	if err != nil {
		return &domain.DeliveryError{Err: fmt.Errorf("marshal batch: %w", err)}
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         payload,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		return &domain.DeliveryError{Err: err}
	}

	metrics.OrdersSent.Add(float64(len(batch)))
	fmt.Printf("[SEND ORDERS] - %d orders\n", len(batch))
	log.Printf("ReportQueue: published %d orders to key '%s'", len(batch), a.routingKey)
	return nil
}
