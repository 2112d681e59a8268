package reportapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"zakupki-parser/internal/core/domain"
)

func TestReportAPIAdapterSend(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter, err := NewReportAPIAdapter(server.URL, "zakupki.mos.ru")
	if err != nil {
		t.Fatalf("NewReportAPIAdapter: %v", err)
	}

	batch := []domain.CanonicalOrder{{
		FZ:             "ЗМО",
		PurchaseNumber: "9103001",
		PurchaseType:   "Котировочная сессия",
		ETP:            domain.ETP{Name: "zakupki.mos.ru"},
		Type:           2,
	}}
	if err := adapter.Send(context.Background(), batch); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}

	var envelope domain.DeliveryBatch
	if err := json.Unmarshal(gotBody, &envelope); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if envelope.Name != "zakupki.mos.ru" {
		t.Errorf("envelope.Name = %q", envelope.Name)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].PurchaseNumber != "9103001" {
		t.Errorf("envelope.Data = %+v", envelope.Data)
	}
}

func TestReportAPIAdapterSendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	adapter, err := NewReportAPIAdapter(server.URL, "zakupki.mos.ru")
	if err != nil {
		t.Fatalf("NewReportAPIAdapter: %v", err)
	}

	err = adapter.Send(context.Background(), []domain.CanonicalOrder{{PurchaseNumber: "1"}})
	var derr *domain.DeliveryError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DeliveryError, got %v", err)
	}
}

func TestReportAPIAdapterValidation(t *testing.T) {
	if _, err := NewReportAPIAdapter("", "name"); err == nil {
		t.Error("expected error for empty apiURL")
	}
	if _, err := NewReportAPIAdapter("http://example.com", ""); err == nil {
		t.Error("expected error for empty sourceName")
	}
}

func TestDisabledSinkAcceptsEverything(t *testing.T) {
	sink := NewDisabledSinkAdapter()
	if err := sink.Send(context.Background(), []domain.CanonicalOrder{{PurchaseNumber: "1"}}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := sink.Send(context.Background(), nil); err != nil {
		t.Fatalf("Send empty: %v", err)
	}
}
