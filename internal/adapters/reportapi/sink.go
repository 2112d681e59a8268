package reportapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"zakupki-parser/internal/core/domain"
	"zakupki-parser/internal/metrics"
)

// ReportAPIAdapter реализует DeliverySinkPort поверх HTTP API отчетов.
// Пакет уходит одним POST-запросом в конверте {name, data}.
type ReportAPIAdapter struct {
	client     *http.Client
	apiURL     string
	sourceName string
}

// NewReportAPIAdapter создает новый адаптер приемника отчетов.
func NewReportAPIAdapter(apiURL string, sourceName string) (*ReportAPIAdapter, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("report api adapter: apiURL cannot be empty")
	}
	if sourceName == "" {
		return nil, fmt.Errorf("report api adapter: sourceName cannot be empty")
	}
	return &ReportAPIAdapter{
		client:     &http.Client{Timeout: 30 * time.Second},
		apiURL:     apiURL,
		sourceName: sourceName,
	}, nil
}

// Send отправляет пакет канонических заказов.
func (a *ReportAPIAdapter) Send(ctx context.Context, batch []domain.CanonicalOrder) error {
	payload, err := json.Marshal(domain.DeliveryBatch{Name: a.sourceName, Data: batch})
	if err != nil {
		return &domain.DeliveryError{Err: fmt.Errorf("marshal batch: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(payload))
	if err != nil {
		return &domain.DeliveryError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return &domain.DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.DeliveryError{Err: fmt.Errorf("report api responded with status %d", resp.StatusCode)}
	}

	metrics.OrdersSent.Add(float64(len(batch)))
	fmt.Printf("[SEND ORDERS] - %d orders\n", len(batch))
	log.Printf("ReportAPI: sent %d orders to %s", len(batch), a.apiURL)
	return nil
}
