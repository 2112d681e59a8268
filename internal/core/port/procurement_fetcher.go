package port

import (
	"context"
	"zakupki-parser/internal/core/domain"
)

// ProcurementFetcherPort объединяет все операции получения данных
// с портала закупок.
type ProcurementFetcherPort interface {
	// FetchListing выполняет пакетный запрос списка закупок.
	FetchListing(ctx context.Context) (*domain.ListingPage, error)

	// FetchItemDetail извлекает детальную информацию о закупке.
	// Тело со встроенным признаком 404 считается ошибкой получения.
	FetchItemDetail(ctx context.Context, variant domain.ItemVariant) ([]byte, error)

	// FetchCustomerDetail извлекает профиль заказчика по его идентификатору.
	FetchCustomerDetail(ctx context.Context, customerID string) ([]byte, error)
}
