package domain

import (
	"encoding/json"
	"time"
)

// OrderType определяет тип закупки на портале
type OrderType string

const (
	OrderTypeAuction OrderType = "auction"
	OrderTypeNeed    OrderType = "need"
	OrderTypeTender  OrderType = "tender"
)

// CustomerRef — ссылка на заказчика в элементе списка закупок
type CustomerRef struct {
	ID int64 `json:"id"`
}

// ListingEntry — сырая запись из пакетного запроса списка закупок.
// Ровно одно из полей AuctionID/NeedID/TenderID должно быть заполнено.
type ListingEntry struct {
	Number             string        `json:"number"`
	RegistrationNumber string        `json:"registrationNumber"`
	Name               string        `json:"name"`
	EndDate            string        `json:"endDate"`
	AuctionID          int64         `json:"auctionId"`
	NeedID             int64         `json:"needId"`
	TenderID           int64         `json:"tenderId"`
	Customers          []CustomerRef `json:"customers"`

	// Raw хранит исходный JSON записи — он сохраняется в orders.order_data
	// без потерь, независимо от того, какие поля мы распознали.
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON декодирует запись и дополнительно сохраняет её исходный JSON в Raw.
func (e *ListingEntry) UnmarshalJSON(data []byte) error {
	type alias ListingEntry
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*e = ListingEntry(a)
	e.Raw = append([]byte(nil), data...)
	return nil
}

// ListingPage — ответ пакетного запроса списка закупок
type ListingPage struct {
	Count int            `json:"count"`
	Items []ListingEntry `json:"items"`
}

// Customer — персистентная сущность заказчика.
// Создается один раз при первой встрече customer_id и больше не обновляется.
type Customer struct {
	CreatedAt    time.Time
	URL          string
	CustomerID   string
	CustomerData []byte
}

// Order — персистентная сущность заказа.
// После подтвержденной отправки WasSend становится true, а OrderData и
// OrderDetail очищаются; переход односторонний.
type Order struct {
	CreatedAt   time.Time
	URL         string
	OrderType   OrderType
	OrderID     string
	OrderData   []byte
	OrderDetail []byte
	CustomerID  string
	WasSend     bool
}
