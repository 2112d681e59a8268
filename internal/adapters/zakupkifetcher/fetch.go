package zakupkifetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gocolly/colly/v2"

	"zakupki-parser/internal/constants"
	"zakupki-parser/internal/core/domain"
	"zakupki-parser/internal/metrics"
)

// FetchListing выполняет пакетный запрос списка закупок.
func (a *ZakupkiFetcherAdapter) FetchListing(ctx context.Context) (*domain.ListingPage, error) {
	body, err := a.get(ctx, a.listingURL)
	if err != nil {
		return nil, err
	}

	var page domain.ListingPage
	if jsonErr := json.Unmarshal(body, &page); jsonErr != nil {
		return nil, &domain.FetchError{URL: a.listingURL, Err: fmt.Errorf("malformed listing response: %w", jsonErr)}
	}

	log.Printf("ZakupkiFetcher: listing fetched, %d items (count=%d)", len(page.Items), page.Count)
	return &page, nil
}

// FetchItemDetail извлекает детальную информацию о закупке.
func (a *ZakupkiFetcherAdapter) FetchItemDetail(ctx context.Context, variant domain.ItemVariant) ([]byte, error) {
	return a.getChecked(ctx, variant.DetailURL())
}

// FetchCustomerDetail извлекает профиль заказчика.
func (a *ZakupkiFetcherAdapter) FetchCustomerDetail(ctx context.Context, customerID string) ([]byte, error) {
	return a.getChecked(ctx, domain.CustomerAPIURL(customerID))
}

// getChecked — GET с проверкой тела: оно должно быть корректным JSON без
// встроенного признака 404 (портал отвечает HTTP 200 с JSON-ошибкой вместо
// настоящего 404-статуса, а при сбоях — HTML-страницей ошибки).
func (a *ZakupkiFetcherAdapter) getChecked(ctx context.Context, url string) ([]byte, error) {
	body, err := a.get(ctx, url)
	if err != nil {
		return nil, err
	}
	if domain.MalformedBody(body) {
		return nil, &domain.FetchError{URL: url, Err: errors.New("response body is not valid JSON")}
	}
	if domain.EmbeddedNotFound(body) {
		return nil, &domain.FetchError{URL: url, Err: errors.New("response body carries embedded 404")}
	}
	return body, nil
}

// get выполняет один GET через одноразовый клон коллектора. Клон наследует
// лимиты родителя, но имеет собственные обработчики.
func (a *ZakupkiFetcherAdapter) get(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}

	collector := a.collector.Clone()

	var body []byte
	var fetchErr error

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", constants.HeaderAccept)
		r.Headers.Set("User-Agent", constants.HeaderUserAgent)
		log.Printf("ZakupkiFetcher: Making request to %s", r.URL.String())
	})
	collector.OnResponse(func(r *colly.Response) {
		body = append([]byte(nil), r.Body...)
	})
	collector.OnError(func(r *colly.Response, err error) {
		log.Printf("ZakupkiFetcher: Error during request to %s: Status=%d, Error=%v", url, r.StatusCode, err)
		fetchErr = err
	})

	metrics.HTTPRequests.Inc()
	if visitErr := collector.Visit(url); visitErr != nil {
		return nil, &domain.FetchError{URL: url, Err: visitErr}
	}
	collector.Wait()

	if fetchErr != nil {
		return nil, &domain.FetchError{URL: url, Err: fetchErr}
	}
	if body == nil {
		return nil, &domain.FetchError{URL: url, Err: errors.New("empty response body")}
	}
	return body, nil
}
