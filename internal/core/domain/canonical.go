package domain

import "encoding/json"

// CanonicalOrder — нормализованная запись заказа в формате, который
// принимает API отчетов. Не персистентна: строится заново на каждую отправку.
type CanonicalOrder struct {
	FZ             string              `json:"fz"`
	PurchaseNumber string              `json:"purchaseNumber"`
	URL            string              `json:"url"`
	Title          string              `json:"title"`
	PurchaseType   string              `json:"purchaseType"`
	ProcedureInfo  ProcedureInfo       `json:"procedureInfo"`
	Lots           []Lot               `json:"lots"`
	ETP            ETP                 `json:"ETP"`
	Attachments    []Attachment        `json:"attachments"`
	Type           int                 `json:"type"`
	Customer       *CustomerBlock      `json:"customer,omitempty"`
	ContactPerson  *ContactPersonBlock `json:"contactPerson,omitempty"`
}

type ProcedureInfo struct {
	EndDate string `json:"endDate"`
}

type Lot struct {
	Price                json.RawMessage       `json:"price"`
	CustomerRequirements []CustomerRequirement `json:"customerRequirements"`
}

type CustomerRequirement struct {
	KladrPlaces json.RawMessage `json:"kladrPlaces"`
	ObespI      json.RawMessage `json:"obesp_i,omitempty"`
}

type ETP struct {
	Name string `json:"name"`
}

type Attachment struct {
	DocDescription string `json:"docDescription"`
	URL            string `json:"url"`
}

// CustomerBlock включается в канонический заказ только если заполнено
// хотя бы одно из полей; пустые поля не сериализуются.
type CustomerBlock struct {
	FactAddress string `json:"factAddress,omitempty"`
	INN         string `json:"inn,omitempty"`
	KPP         string `json:"kpp,omitempty"`
}

// ContactPersonBlock — контактное лицо закупки, та же политика разреженного
// заполнения, что и у CustomerBlock.
type ContactPersonBlock struct {
	LastName     string `json:"lastName,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	ContactEmail string `json:"contactEMail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

// Empty сообщает, остался ли блок контактного лица полностью пустым.
func (c ContactPersonBlock) Empty() bool {
	return c == ContactPersonBlock{}
}

// Empty сообщает, остался ли блок заказчика полностью пустым.
func (c CustomerBlock) Empty() bool {
	return c == CustomerBlock{}
}

// DeliveryBatch — конверт, в котором пакет канонических заказов уходит
// во внешний приемник отчетов.
type DeliveryBatch struct {
	Name string           `json:"name"`
	Data []CanonicalOrder `json:"data"`
}
