package port

import (
	"context"
	"zakupki-parser/internal/core/domain"
)

// OrderStoragePort определяет контракт дедуплицирующего хранилища заказов
// и заказчиков. "Уже существует" — не ошибка, а ожидаемое состояние при
// повторном прогоне по пересекающемуся окну списка.
type OrderStoragePort interface {
	// InsertCustomerIfAbsent вставляет заказчика, если его еще нет.
	// Возвращает true, если запись была вставлена этим вызовом.
	InsertCustomerIfAbsent(ctx context.Context, c domain.Customer) (bool, error)

	// InsertOrderIfAbsent вставляет заказ, если его еще нет.
	// Возвращает true, если запись была вставлена этим вызовом.
	InsertOrderIfAbsent(ctx context.Context, o domain.Order) (bool, error)

	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// ListUndelivered возвращает конечный снимок всех неотправленных заказов.
	ListUndelivered(ctx context.Context) ([]domain.Order, error)

	// MarkDelivered помечает заказ отправленным и очищает order_data и
	// order_detail. Идемпотентна.
	MarkDelivered(ctx context.Context, orderID string) error
}
