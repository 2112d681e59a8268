package domain

import (
	"errors"
	"fmt"
)

// Общие доменные ошибки
var (
	// ErrNotFound возвращается хранилищем, когда записи с таким
	// натуральным ключом нет.
	ErrNotFound = errors.New("not found")

	// ErrTenderNotSupported — форматирование тендеров не реализовано;
	// такие заказы остаются неотправленными.
	ErrTenderNotSupported = errors.New("tender formatting is not supported")
)

// FetchError — сбой получения данных с портала: транспортная ошибка,
// некорректный ответ или встроенный признак 404 в теле.
// Никогда не прерывает обход, обрабатывается на уровне одной записи.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ClassificationError — у записи списка не заполнен ни один дискриминатор
type ClassificationError struct {
	Number string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("listing entry %q has no auctionId/needId/tenderId", e.Number)
}

// FormattingError — в детальных данных заказа нет ожидаемого поля,
// канонический заказ собрать нельзя.
type FormattingError struct {
	OrderID string
	Err     error
}

func (e *FormattingError) Error() string {
	return fmt.Sprintf("format order %s: %v", e.OrderID, e.Err)
}

func (e *FormattingError) Unwrap() error { return e.Err }

// DeliveryError — приемник отчетов отклонил пакет или недоступен
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
