package port

import (
	"context"
	"zakupki-parser/internal/core/domain"
)

// DeliverySinkPort определяет контракт внешнего приемника отчетов.
// Ошибка отправки не должна подниматься выше обработки одного заказа.
type DeliverySinkPort interface {
	Send(ctx context.Context, batch []domain.CanonicalOrder) error
}
