package constants

// SourceName — идентификатор источника, под которым пакеты уходят
// в API отчетов.
const SourceName = "zakupki.mos.ru"

// ListingQueryURL — фиксированный пакетный запрос списка закупок:
// активные аукционы, потребности и тендеры, сортировка по релевантности.
// queryDto закодирован заранее, параметры не подставляются.
const ListingQueryURL = "https://old.zakupki.mos.ru/api/Cssp/Purchase/Query?queryDto=%7B%22filter%22%3A%7B%22auctionSpecificFilter%22%3A%7B%22stateIdIn%22%3A%5B19000002%5D%7D%2C%22needSpecificFilter%22%3A%7B%22stateIdIn%22%3A%5B20000002%5D%7D%2C%22tenderSpecificFilter%22%3A%7B%22stateIdIn%22%3A%5B5%5D%7D%7D%2C%22order%22%3A%5B%7B%22field%22%3A%22relevance%22%2C%22desc%22%3Atrue%7D%5D%2C%22withCount%22%3Atrue%2C%22skip%22%3A0%7D"

// Фиксированные заголовки всех запросов к порталу
const (
	HeaderAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	HeaderUserAgent = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:104.0) Gecko/20100101 Firefox/104.0"
)

// Домены портала, к которым разрешены запросы
const (
	PortalDomain    = "zakupki.mos.ru"
	PortalOldDomain = "old.zakupki.mos.ru"
)

// TestOrderNumbers — номера синтетических тестовых заказов, которые
// источник подмешивает в выдачу; они никогда не попадают в хранилище.
var TestOrderNumbers = []string{
	"4122001",
}
