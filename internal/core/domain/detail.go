package domain

import (
	"encoding/json"
)

// ItemDetail — частично типизированное представление детального ответа API.
// Портал возвращает разные наборы полей для аукционов, потребностей и
// тендеров, поэтому все поля опциональны; неизвестные части остаются в
// сыром виде.
type ItemDetail struct {
	HTTPStatusCode int    `json:"httpStatusCode"`
	Name           string `json:"name"`

	// Цена: у аукциона — startCost, у потребности — nmck.
	StartCost json.RawMessage `json:"startCost"`
	NMCK      json.RawMessage `json:"nmck"`

	ContractGuaranteeAmount json.RawMessage `json:"contractGuaranteeAmount"`

	// Место поставки: у потребности — строка, у аукциона — внутри deliveries.
	DeliveryPlace string         `json:"deliveryPlace"`
	Deliveries    []ItemDelivery `json:"deliveries"`

	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`

	Files []FileRef `json:"files"`
}

// ItemDelivery — элемент массива deliveries аукциона. Форма deliveryPlace
// свободная, поэтому значение передается дальше без разбора.
type ItemDelivery struct {
	DeliveryPlace json.RawMessage `json:"deliveryPlace"`
}

// FileRef — дескриптор вложенного документа закупки
type FileRef struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// CustomerDetail — частично типизированный профиль заказчика
type CustomerDetail struct {
	HTTPStatusCode int         `json:"httpStatusCode"`
	Company        CompanyInfo `json:"company"`
}

// CompanyInfo — реквизиты компании заказчика
type CompanyInfo struct {
	FactAddress string `json:"factAddress"`
	INN         string `json:"inn"`
	KPP         string `json:"kpp"`
}

// MalformedBody сообщает, что тело ответа не является корректным JSON.
// При сбоях портал может отдать HTML-страницу ошибки со статусом 200;
// такое тело нельзя ни кэшировать, ни сохранять.
func MalformedBody(blob []byte) bool {
	return !json.Valid(blob)
}

// EmbeddedNotFound сообщает, несет ли тело ответа встроенный признак 404.
// Портал отвечает HTTP 200 с JSON-ошибкой вместо настоящего 404-статуса,
// поэтому проверять нужно оба уровня.
func EmbeddedNotFound(blob []byte) bool {
	var probe struct {
		HTTPStatusCode int `json:"httpStatusCode"`
	}
	if err := json.Unmarshal(blob, &probe); err != nil {
		return false
	}
	return probe.HTTPStatusCode == 404
}
