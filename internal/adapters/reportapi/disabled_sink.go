package reportapi

import (
	"context"
	"log"

	"zakupki-parser/internal/core/domain"
)

// DisabledSinkAdapter — приемник для прогонов с выключенной отправкой:
// подтверждает пакет без обращения к внешнему API, так что заказы
// помечаются отправленными и не копятся в хранилище.
type DisabledSinkAdapter struct{}

// NewDisabledSinkAdapter создает новый экземпляр.
func NewDisabledSinkAdapter() *DisabledSinkAdapter {
	return &DisabledSinkAdapter{}
}

// Send подтверждает пакет, никуда его не отправляя.
func (a *DisabledSinkAdapter) Send(_ context.Context, batch []domain.CanonicalOrder) error {
	log.Printf("DisabledSink: sending is off, %d orders acknowledged without transport", len(batch))
	return nil
}
