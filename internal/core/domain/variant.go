package domain

import (
	"strconv"
)

// ItemVariant — классифицированный элемент списка: тип закупки и её
// числовой идентификатор в виде строки.
type ItemVariant struct {
	Type OrderType
	ID   string
}

// Classify определяет тип закупки по дискриминаторным полям записи.
// Порядок проверки фиксированный: auctionId, затем needId, затем tenderId.
// Если не заполнено ни одно поле — запись считается некорректной.
func Classify(e ListingEntry) (ItemVariant, error) {
	switch {
	case e.AuctionID != 0:
		return ItemVariant{Type: OrderTypeAuction, ID: strconv.FormatInt(e.AuctionID, 10)}, nil
	case e.NeedID != 0:
		return ItemVariant{Type: OrderTypeNeed, ID: strconv.FormatInt(e.NeedID, 10)}, nil
	case e.TenderID != 0:
		return ItemVariant{Type: OrderTypeTender, ID: strconv.FormatInt(e.TenderID, 10)}, nil
	default:
		return ItemVariant{}, &ClassificationError{Number: e.Number}
	}
}

// ItemURL возвращает канонический адрес закупки на портале.
func (v ItemVariant) ItemURL() string {
	switch v.Type {
	case OrderTypeAuction:
		return "https://zakupki.mos.ru/auction/" + v.ID
	case OrderTypeNeed:
		return "https://zakupki.mos.ru/need/" + v.ID
	case OrderTypeTender:
		return "https://old.zakupki.mos.ru/#/tenders/" + v.ID
	}
	return ""
}

// DetailURL возвращает адрес API с детальной информацией о закупке.
func (v ItemVariant) DetailURL() string {
	switch v.Type {
	case OrderTypeAuction:
		return "https://zakupki.mos.ru/newapi/api/Auction/Get?auctionId=" + v.ID
	case OrderTypeNeed:
		return "https://zakupki.mos.ru/newapi/api/Need/Get?needId=" + v.ID
	case OrderTypeTender:
		return "https://old.zakupki.mos.ru/api/Cssp/Tender/GetEntity?id=" + v.ID
	}
	return ""
}

// CustomerAPIURL возвращает адрес API с профилем заказчика.
func CustomerAPIURL(customerID string) string {
	return "https://zakupki.mos.ru/newapi/api/CompanyProfile/GetByCompanyId?companyId=" + customerID
}

// CustomerURL возвращает канонический адрес профиля заказчика на портале.
func CustomerURL(customerID string) string {
	return "https://zakupki.mos.ru/companyProfile/customer/" + customerID
}

// DocumentURL возвращает адрес скачивания вложенного документа.
func DocumentURL(fileID string) string {
	return "https://zakupki.mos.ru/newapi/api/FileStorage/Download?id=" + fileID
}

// ItemCacheKey — ключ кэша для детальной информации о закупке.
func ItemCacheKey(t OrderType, number string) string {
	return "item:" + string(t) + ":" + number
}

// CustomerCacheKey — ключ кэша для профиля заказчика.
func CustomerCacheKey(customerID string) string {
	return "customer:" + customerID
}
