package usecase

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"zakupki-parser/internal/core/domain"
)

func auctionOrder() domain.Order {
	return domain.Order{
		URL:       "https://zakupki.mos.ru/auction/9103001",
		OrderType: domain.OrderTypeAuction,
		OrderID:   "9103001",
		OrderData: []byte(`{"number":"9103001","name":"Поставка бумаги","endDate":"2023-01-15T10:00:00","auctionId":9103001,"customers":[{"id":2770}]}`),
		OrderDetail: []byte(`{
			"name":"Поставка бумаги",
			"startCost":150000.50,
			"contractGuaranteeAmount":5000,
			"deliveries":[{"deliveryPlace":"г. Москва, ул. Тверская, д. 1"}],
			"files":[{"id":111,"name":"ТЗ.docx"},{"id":222,"name":"Проект контракта.pdf"}]
		}`),
		CustomerID: "2770",
	}
}

func auctionCustomer() domain.Customer {
	return domain.Customer{
		URL:          "https://zakupki.mos.ru/companyProfile/customer/2770",
		CustomerID:   "2770",
		CustomerData: []byte(`{"company":{"factAddress":"г. Москва, ул. Арбат, д. 2","inn":"7700000000","kpp":"770001001"}}`),
	}
}

func TestFormatAuction(t *testing.T) {
	got, err := FormatOrder(auctionOrder(), auctionCustomer())
	if err != nil {
		t.Fatalf("FormatOrder: %v", err)
	}

	if got.FZ != "ЗМО" {
		t.Errorf("FZ = %q, want %q", got.FZ, "ЗМО")
	}
	if got.PurchaseNumber != "9103001" {
		t.Errorf("PurchaseNumber = %q, want %q", got.PurchaseNumber, "9103001")
	}
	if got.PurchaseType != "Котировочная сессия" {
		t.Errorf("PurchaseType = %q", got.PurchaseType)
	}
	if got.URL != "https://zakupki.mos.ru/auction/9103001" {
		t.Errorf("URL = %q", got.URL)
	}
	if got.ProcedureInfo.EndDate != "2023-01-15T10:00:00" {
		t.Errorf("ProcedureInfo.EndDate = %q", got.ProcedureInfo.EndDate)
	}
	if got.ETP.Name != "zakupki.mos.ru" {
		t.Errorf("ETP.Name = %q", got.ETP.Name)
	}
	if got.Type != 2 {
		t.Errorf("Type = %d, want 2", got.Type)
	}

	if len(got.Lots) != 1 {
		t.Fatalf("len(Lots) = %d, want 1", len(got.Lots))
	}
	lot := got.Lots[0]
	if string(lot.Price) != "150000.50" {
		t.Errorf("Lot.Price = %s, want 150000.50", lot.Price)
	}
	if len(lot.CustomerRequirements) != 1 {
		t.Fatalf("len(CustomerRequirements) = %d, want 1", len(lot.CustomerRequirements))
	}
	req := lot.CustomerRequirements[0]
	if string(req.KladrPlaces) != `"г. Москва, ул. Тверская, д. 1"` {
		t.Errorf("KladrPlaces = %s", req.KladrPlaces)
	}
	if string(req.ObespI) != "5000" {
		t.Errorf("ObespI = %s, want 5000", req.ObespI)
	}

	if len(got.Attachments) != 2 {
		t.Fatalf("len(Attachments) = %d, want 2", len(got.Attachments))
	}
	if got.Attachments[0].DocDescription != "ТЗ.docx" {
		t.Errorf("Attachments[0].DocDescription = %q", got.Attachments[0].DocDescription)
	}
	if got.Attachments[0].URL != "https://zakupki.mos.ru/newapi/api/FileStorage/Download?id=111" {
		t.Errorf("Attachments[0].URL = %q", got.Attachments[0].URL)
	}
	if got.Attachments[1].URL != "https://zakupki.mos.ru/newapi/api/FileStorage/Download?id=222" {
		t.Errorf("Attachments[1].URL = %q", got.Attachments[1].URL)
	}

	if got.Customer == nil {
		t.Fatal("Customer block is nil, want populated")
	}
	if got.Customer.INN != "7700000000" || got.Customer.KPP != "770001001" {
		t.Errorf("Customer = %+v", got.Customer)
	}
	// Auction detail carries no contact person.
	if got.ContactPerson != nil {
		t.Errorf("ContactPerson = %+v, want nil", got.ContactPerson)
	}
}

func TestFormatAuctionWithoutDeliveries(t *testing.T) {
	order := auctionOrder()
	order.OrderDetail = []byte(`{"name":"Поставка бумаги","startCost":100,"deliveries":[]}`)

	_, err := FormatOrder(order, auctionCustomer())
	var ferr *domain.FormattingError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *FormattingError, got %v", err)
	}
	if ferr.OrderID != "9103001" {
		t.Errorf("FormattingError.OrderID = %q", ferr.OrderID)
	}
}

func TestFormatNeed(t *testing.T) {
	order := domain.Order{
		URL:       "https://zakupki.mos.ru/need/7001",
		OrderType: domain.OrderTypeNeed,
		OrderID:   "7001",
		OrderData: []byte(`{"number":"7001","name":"Закупка канцтоваров","endDate":"2023-02-01T12:00:00","needId":7001,"customers":[{"id":2770}]}`),
		OrderDetail: []byte(`{
			"name":"Закупка канцтоваров",
			"nmck":42000,
			"deliveryPlace":"г. Москва, Ленинский пр-т, д. 4",
			"contactPerson":"Иванова Мария Петровна",
			"contactEmail":"ivanova@example.ru",
			"contactPhone":"+7 (495) 000-00-00",
			"files":[]
		}`),
		CustomerID: "2770",
	}

	got, err := FormatOrder(order, auctionCustomer())
	if err != nil {
		t.Fatalf("FormatOrder: %v", err)
	}

	if got.PurchaseType != "Закупка по потребности" {
		t.Errorf("PurchaseType = %q", got.PurchaseType)
	}
	if string(got.Lots[0].Price) != "42000" {
		t.Errorf("Lot.Price = %s, want 42000", got.Lots[0].Price)
	}

	var kladr []map[string]string
	if err := json.Unmarshal(got.Lots[0].CustomerRequirements[0].KladrPlaces, &kladr); err != nil {
		t.Fatalf("unmarshal KladrPlaces: %v", err)
	}
	if len(kladr) != 1 || kladr[0]["deliveryPlace"] != "г. Москва, Ленинский пр-т, д. 4" {
		t.Errorf("KladrPlaces = %+v", kladr)
	}
	// No guarantee amount for needs.
	if len(got.Lots[0].CustomerRequirements[0].ObespI) != 0 {
		t.Errorf("ObespI = %s, want empty", got.Lots[0].CustomerRequirements[0].ObespI)
	}

	if got.ContactPerson == nil {
		t.Fatal("ContactPerson block is nil, want populated")
	}
	if got.ContactPerson.LastName != "Иванова" {
		t.Errorf("LastName = %q", got.ContactPerson.LastName)
	}
	if got.ContactPerson.FirstName != "Мария" {
		t.Errorf("FirstName = %q", got.ContactPerson.FirstName)
	}
	if got.ContactPerson.ContactEmail != "ivanova@example.ru" {
		t.Errorf("ContactEmail = %q", got.ContactPerson.ContactEmail)
	}

	if got.Attachments == nil || len(got.Attachments) != 0 {
		t.Errorf("Attachments = %#v, want empty non-nil slice", got.Attachments)
	}
}

func TestFormatNeedContactNameVariants(t *testing.T) {
	testCases := []struct {
		name          string
		contactPerson string
		wantLast      string
		wantFirst     string
	}{
		{"surname only", "Иванова", "Иванова", ""},
		{"surname and name", "Иванова Мария", "Иванова", "Мария"},
		{"patronymic dropped", "Иванова Мария Петровна", "Иванова", "Мария"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			block := contactPersonBlock(domain.ItemDetail{ContactPerson: tc.contactPerson})
			if block == nil {
				t.Fatal("block is nil")
			}
			if block.LastName != tc.wantLast || block.FirstName != tc.wantFirst {
				t.Errorf("block = %+v, want last=%q first=%q", block, tc.wantLast, tc.wantFirst)
			}
		})
	}

	t.Run("fully empty", func(t *testing.T) {
		if block := contactPersonBlock(domain.ItemDetail{}); block != nil {
			t.Errorf("block = %+v, want nil", block)
		}
	})
}

func TestFormatSparseCustomerBlock(t *testing.T) {
	order := auctionOrder()
	customer := auctionCustomer()
	customer.CustomerData = []byte(`{"company":{"inn":"7700000000"}}`)

	got, err := FormatOrder(order, customer)
	if err != nil {
		t.Fatalf("FormatOrder: %v", err)
	}

	blob, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal canonical order: %v", err)
	}
	s := string(blob)
	if !strings.Contains(s, `"inn":"7700000000"`) {
		t.Errorf("serialized order misses inn: %s", s)
	}
	// Absent requisites must not appear as empty strings.
	if strings.Contains(s, `"kpp"`) || strings.Contains(s, `"factAddress"`) {
		t.Errorf("serialized order carries empty requisites: %s", s)
	}
}

func TestFormatOmitsEmptyCustomer(t *testing.T) {
	order := auctionOrder()
	customer := auctionCustomer()
	customer.CustomerData = []byte(`{"company":{}}`)

	got, err := FormatOrder(order, customer)
	if err != nil {
		t.Fatalf("FormatOrder: %v", err)
	}
	if got.Customer != nil {
		t.Errorf("Customer = %+v, want nil", got.Customer)
	}

	blob, _ := json.Marshal(got)
	if strings.Contains(string(blob), `"customer"`) {
		t.Errorf("serialized order carries empty customer block: %s", blob)
	}
}

func TestFormatTenderNotSupported(t *testing.T) {
	order := domain.Order{
		OrderType: domain.OrderTypeTender,
		OrderID:   "5001",
		OrderData: []byte(`{"number":"5001","tenderId":5001}`),
	}

	_, err := FormatOrder(order, auctionCustomer())
	if !errors.Is(err, domain.ErrTenderNotSupported) {
		t.Fatalf("expected ErrTenderNotSupported, got %v", err)
	}
	var ferr *domain.FormattingError
	if !errors.As(err, &ferr) {
		t.Errorf("expected *FormattingError wrapper, got %T", err)
	}
}

func TestFormatMalformedOrderData(t *testing.T) {
	order := auctionOrder()
	order.OrderData = []byte(`not json`)

	_, err := FormatOrder(order, auctionCustomer())
	var ferr *domain.FormattingError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *FormattingError, got %v", err)
	}
}
