package zakupkifetcher

import (
	"log"
	"time"

	"github.com/gocolly/colly/v2"

	"zakupki-parser/internal/configs"
	"zakupki-parser/internal/constants"
)

// ZakupkiFetcherAdapter отвечает за все взаимодействия с порталом закупок.
// Он инкапсулирует в себе настроенный colly.Collector.
type ZakupkiFetcherAdapter struct {
	// Родительский коллектор, который разделяет лимиты между запросами;
	// на каждый запрос создается клон со своими обработчиками.
	collector  *colly.Collector
	listingURL string
}

// NewZakupkiFetcherAdapter — единый конструктор адаптера портала.
func NewZakupkiFetcherAdapter(listingURL string, cfg configs.FetcherConfig) *ZakupkiFetcherAdapter {
	c := colly.NewCollector(
		colly.AllowedDomains(constants.PortalDomain, constants.PortalOldDomain),
	)

	if !cfg.DisableSleep {
		// Параллелизм равен 1: весь конвейер строго последовательный,
		// а случайная задержка после каждого запроса — намеренное
		// ограничение частоты обращений к чужому хосту.
		err := c.Limit(&colly.LimitRule{
			DomainGlob:  "*" + constants.PortalDomain,
			Parallelism: 1,
			Delay:       time.Duration(cfg.SleepMinSeconds) * time.Second,
			RandomDelay: time.Duration(cfg.SleepMaxSeconds-cfg.SleepMinSeconds) * time.Second,
		})
		if err != nil {
			// Ошибка в базовых настройках критична, работать дальше нельзя.
			log.Fatalf("ZakupkiFetcherAdapter: Failed to set limit rule: %v", err)
		}
	}

	return &ZakupkiFetcherAdapter{
		collector:  c,
		listingURL: listingURL,
	}
}
