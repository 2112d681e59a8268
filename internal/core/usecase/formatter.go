package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"zakupki-parser/internal/core/domain"
)

// Константы канонического формата API отчетов
const (
	canonicalFZ      = "ЗМО"
	canonicalETPName = "zakupki.mos.ru"
	canonicalType    = 2

	purchaseTypeAuction = "Котировочная сессия"
	purchaseTypeNeed    = "Закупка по потребности"
)

// FormatOrder собирает канонический заказ из персистентного заказа и его
// заказчика, выбирая отображение по типу закупки. Тендеры пока не
// поддерживаются и всегда возвращают ошибку.
func FormatOrder(o domain.Order, c domain.Customer) (domain.CanonicalOrder, error) {
	switch o.OrderType {
	case domain.OrderTypeAuction:
		return FormatAuction(o, c)
	case domain.OrderTypeNeed:
		return FormatNeed(o, c)
	case domain.OrderTypeTender:
		return domain.CanonicalOrder{}, &domain.FormattingError{OrderID: o.OrderID, Err: domain.ErrTenderNotSupported}
	default:
		return domain.CanonicalOrder{}, &domain.FormattingError{OrderID: o.OrderID, Err: fmt.Errorf("unknown order type %q", o.OrderType)}
	}
}

// FormatAuction — отображение котировочной сессии в канонический заказ.
func FormatAuction(o domain.Order, c domain.Customer) (domain.CanonicalOrder, error) {
	entry, detail, customer, err := decodeOrderParts(o, c)
	if err != nil {
		return domain.CanonicalOrder{}, err
	}
	if len(detail.Deliveries) == 0 {
		return domain.CanonicalOrder{}, &domain.FormattingError{OrderID: o.OrderID, Err: errors.New("auction detail has no deliveries")}
	}

	result := domain.CanonicalOrder{
		FZ:             canonicalFZ,
		PurchaseNumber: entry.Number,
		URL:            o.URL,
		Title:          entry.Name,
		PurchaseType:   purchaseTypeAuction,
		ProcedureInfo:  domain.ProcedureInfo{EndDate: entry.EndDate},
		Lots: []domain.Lot{{
			Price: detail.StartCost,
			CustomerRequirements: []domain.CustomerRequirement{{
				KladrPlaces: detail.Deliveries[0].DeliveryPlace,
				ObespI:      detail.ContractGuaranteeAmount,
			}},
		}},
		ETP:         domain.ETP{Name: canonicalETPName},
		Attachments: attachments(detail.Files),
		Type:        canonicalType,
	}
	result.Customer = customerBlock(customer)
	return result, nil
}

// FormatNeed — отображение закупки по потребности в канонический заказ.
func FormatNeed(o domain.Order, c domain.Customer) (domain.CanonicalOrder, error) {
	entry, detail, customer, err := decodeOrderParts(o, c)
	if err != nil {
		return domain.CanonicalOrder{}, err
	}

	kladr, merr := json.Marshal([]map[string]string{{"deliveryPlace": detail.DeliveryPlace}})
	if merr != nil {
		return domain.CanonicalOrder{}, &domain.FormattingError{OrderID: o.OrderID, Err: merr}
	}

	result := domain.CanonicalOrder{
		FZ:             canonicalFZ,
		PurchaseNumber: entry.Number,
		URL:            o.URL,
		Title:          entry.Name,
		PurchaseType:   purchaseTypeNeed,
		ProcedureInfo:  domain.ProcedureInfo{EndDate: entry.EndDate},
		Lots: []domain.Lot{{
			Price: detail.NMCK,
			CustomerRequirements: []domain.CustomerRequirement{{
				KladrPlaces: kladr,
			}},
		}},
		ETP:         domain.ETP{Name: canonicalETPName},
		Attachments: attachments(detail.Files),
		Type:        canonicalType,
	}
	result.Customer = customerBlock(customer)
	result.ContactPerson = contactPersonBlock(detail)
	return result, nil
}

// FormatTender — тендерное отображение не реализовано.
func FormatTender(o domain.Order, _ domain.Customer) (domain.CanonicalOrder, error) {
	return domain.CanonicalOrder{}, &domain.FormattingError{OrderID: o.OrderID, Err: domain.ErrTenderNotSupported}
}

func decodeOrderParts(o domain.Order, c domain.Customer) (domain.ListingEntry, domain.ItemDetail, domain.CustomerDetail, error) {
	var entry domain.ListingEntry
	if err := json.Unmarshal(o.OrderData, &entry); err != nil {
		return entry, domain.ItemDetail{}, domain.CustomerDetail{}, &domain.FormattingError{OrderID: o.OrderID, Err: fmt.Errorf("decode order_data: %w", err)}
	}
	var detail domain.ItemDetail
	if err := json.Unmarshal(o.OrderDetail, &detail); err != nil {
		return entry, detail, domain.CustomerDetail{}, &domain.FormattingError{OrderID: o.OrderID, Err: fmt.Errorf("decode order_detail: %w", err)}
	}
	var customer domain.CustomerDetail
	if err := json.Unmarshal(c.CustomerData, &customer); err != nil {
		return entry, detail, customer, &domain.FormattingError{OrderID: o.OrderID, Err: fmt.Errorf("decode customer_data: %w", err)}
	}
	return entry, detail, customer, nil
}

// attachments переводит дескрипторы файлов в канонические вложения,
// сохраняя порядок источника. Пустой список остается пустым, не null.
func attachments(files []domain.FileRef) []domain.Attachment {
	result := make([]domain.Attachment, 0, len(files))
	for _, f := range files {
		result = append(result, domain.Attachment{
			DocDescription: f.Name,
			URL:            domain.DocumentURL(f.ID.String()),
		})
	}
	return result
}

func customerBlock(cd domain.CustomerDetail) *domain.CustomerBlock {
	b := domain.CustomerBlock{
		FactAddress: cd.Company.FactAddress,
		INN:         cd.Company.INN,
		KPP:         cd.Company.KPP,
	}
	if b.Empty() {
		return nil
	}
	return &b
}

// contactPersonBlock разбивает ФИО контактного лица по пробелам: первый
// токен — фамилия, второй — имя, остальные отбрасываются. Почта и телефон
// копируются независимо от имени.
func contactPersonBlock(detail domain.ItemDetail) *domain.ContactPersonBlock {
	b := domain.ContactPersonBlock{
		ContactEmail: detail.ContactEmail,
		ContactPhone: detail.ContactPhone,
	}
	name := strings.Fields(detail.ContactPerson)
	if len(name) > 0 {
		b.LastName = name[0]
	}
	if len(name) > 1 {
		b.FirstName = name[1]
	}
	if b.Empty() {
		return nil
	}
	return &b
}
