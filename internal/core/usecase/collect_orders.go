package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"zakupki-parser/internal/core/domain"
	"zakupki-parser/internal/core/port"
)

// CollectOrdersUseCase — фаза записи: получает список закупок, разрешает
// детальные данные (кэш, затем портал) и идемпотентно складывает заказчиков
// и заказы в хранилище. Ошибка одной записи никогда не прерывает обход.
type CollectOrdersUseCase struct {
	fetcher port.ProcurementFetcherPort
	cache   port.DetailCachePort
	storage port.OrderStoragePort

	// skipNumbers — номера синтетических тестовых заказов, которые источник
	// подмешивает в выдачу; такие записи пропускаются безусловно.
	skipNumbers map[string]struct{}
}

// NewCollectOrdersUseCase создает новый экземпляр use case.
func NewCollectOrdersUseCase(
	fetcher port.ProcurementFetcherPort,
	cache port.DetailCachePort,
	storage port.OrderStoragePort,
	skipNumbers []string,
) *CollectOrdersUseCase {
	skip := make(map[string]struct{}, len(skipNumbers))
	for _, n := range skipNumbers {
		skip[n] = struct{}{}
	}
	return &CollectOrdersUseCase{
		fetcher:     fetcher,
		cache:       cache,
		storage:     storage,
		skipNumbers: skip,
	}
}

// CollectResult — итог фазы записи
type CollectResult struct {
	Processed    int
	NewOrders    int
	NewCustomers int
	Errors       int
}

// Execute выполняет фазу записи. Ошибка возвращается только при сбое
// самого пакетного запроса списка — это единственное условие, прерывающее
// прогон целиком.
func (uc *CollectOrdersUseCase) Execute(ctx context.Context) (CollectResult, error) {
	fmt.Println("[START] Начало добавления заказов в БД")
	log.Println("CollectOrders: starting write phase")

	page, err := uc.fetcher.FetchListing(ctx)
	if err != nil {
		return CollectResult{}, fmt.Errorf("collect orders: failed to fetch listing: %w", err)
	}

	var res CollectResult
	for i, item := range page.Items {
		iterInfo := fmt.Sprintf("#%d / %d", i+1, page.Count)
		res.Processed++

		if _, ok := uc.skipNumbers[item.Number]; ok {
			log.Printf("CollectOrders: %s: test order %q skipped", iterInfo, item.Number)
			continue
		}
		if len(item.Customers) == 0 {
			fmt.Printf("%s: [ORDER MISSED] Заказ не имеет заказчика: number = %q\n", iterInfo, item.Number)
			log.Printf("CollectOrders: order %q (%s) has no customers", item.Number, item.Name)
			continue
		}

		variant, cerr := domain.Classify(item)
		if cerr != nil {
			res.Errors++
			fmt.Printf("%s: [ERROR] Не удалось определить тип заказа (%s)\n", iterInfo, item.Number)
			log.Printf("CollectOrders: %v", cerr)
			continue
		}

		fmt.Printf("%s: [ORDER] Заказ (%s) %s\n", iterInfo, item.Number, item.Name)

		// Дедупликация по натуральному ключу до любых сетевых вызовов.
		if _, gerr := uc.storage.GetOrder(ctx, variant.ID); gerr == nil {
			continue
		} else if !errors.Is(gerr, domain.ErrNotFound) {
			res.Errors++
			log.Printf("CollectOrders: storage lookup for order %s failed: %v", variant.ID, gerr)
			continue
		}

		customerID := strconv.FormatInt(item.Customers[0].ID, 10)
		customerBlob, ferr := uc.resolveCustomer(ctx, customerID)
		if ferr != nil {
			res.Errors++
			fmt.Printf("%s: [ERROR] Ошибка при получении заказчика: %s\n", iterInfo, domain.CustomerURL(customerID))
			log.Printf("CollectOrders: customer %s for order %s: %v", customerID, variant.ItemURL(), ferr)
			continue
		}

		detailBlob, ferr := uc.resolveItemDetail(ctx, variant, item.Number)
		if ferr != nil {
			res.Errors++
			fmt.Printf("%s: [ERROR] Ошибка при получении детальной инф-ции о заказе: %s\n", iterInfo, variant.ItemURL())
			log.Printf("CollectOrders: detail for order %s: %v", variant.ItemURL(), ferr)
			continue
		}

		inserted, serr := uc.storage.InsertCustomerIfAbsent(ctx, domain.Customer{
			URL:          domain.CustomerURL(customerID),
			CustomerID:   customerID,
			CustomerData: customerBlob,
		})
		if serr != nil {
			res.Errors++
			log.Printf("CollectOrders: insert customer %s: %v", customerID, serr)
			continue
		}
		if inserted {
			res.NewCustomers++
			fmt.Printf("%s: [SUCCESS] Заказчик %s успешно добавлен в БД\n", iterInfo, customerID)
			log.Printf("CollectOrders: customer %s inserted", customerID)
		}

		inserted, serr = uc.storage.InsertOrderIfAbsent(ctx, domain.Order{
			URL:         variant.ItemURL(),
			OrderType:   variant.Type,
			OrderID:     variant.ID,
			OrderData:   item.Raw,
			OrderDetail: detailBlob,
			CustomerID:  customerID,
		})
		if serr != nil {
			res.Errors++
			log.Printf("CollectOrders: insert order %s: %v", variant.ID, serr)
			continue
		}
		if inserted {
			res.NewOrders++
			fmt.Printf("%s: [SUCCESS] Заказ %s успешно добавлен в БД\n", iterInfo, variant.ID)
			log.Printf("CollectOrders: order %s (%s) inserted", variant.ID, variant.Type)
		}
	}

	fmt.Println("[FINISH] Конец добавления заказов в БД")
	log.Printf("CollectOrders: write phase done, %d processed, %d new orders, %d new customers, %d errors",
		res.Processed, res.NewOrders, res.NewCustomers, res.Errors)
	return res, nil
}

// resolveCustomer возвращает профиль заказчика: сперва из кэша, при промахе —
// с портала, с записью в кэш. Непригодное закэшированное тело удаляется и
// считается ошибкой получения.
func (uc *CollectOrdersUseCase) resolveCustomer(ctx context.Context, customerID string) ([]byte, error) {
	key := domain.CustomerCacheKey(customerID)
	if blob, ok := uc.cached(key); ok {
		if berr := usableBody(blob); berr != nil {
			_ = uc.cache.Delete(key)
			return nil, &domain.FetchError{URL: domain.CustomerAPIURL(customerID), Err: fmt.Errorf("cached %w", berr)}
		}
		return blob, nil
	}

	blob, err := uc.fetcher.FetchCustomerDetail(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if berr := usableBody(blob); berr != nil {
		return nil, &domain.FetchError{URL: domain.CustomerAPIURL(customerID), Err: berr}
	}
	if perr := uc.cache.Put(key, blob); perr != nil {
		log.Printf("CollectOrders: cache put %s failed: %v", key, perr)
	}
	return blob, nil
}

// resolveItemDetail — то же для детальной информации о закупке.
func (uc *CollectOrdersUseCase) resolveItemDetail(ctx context.Context, variant domain.ItemVariant, number string) ([]byte, error) {
	key := domain.ItemCacheKey(variant.Type, number)
	if blob, ok := uc.cached(key); ok {
		if berr := usableBody(blob); berr != nil {
			_ = uc.cache.Delete(key)
			return nil, &domain.FetchError{URL: variant.DetailURL(), Err: fmt.Errorf("cached %w", berr)}
		}
		return blob, nil
	}

	blob, err := uc.fetcher.FetchItemDetail(ctx, variant)
	if err != nil {
		return nil, err
	}
	if berr := usableBody(blob); berr != nil {
		return nil, &domain.FetchError{URL: variant.DetailURL(), Err: berr}
	}
	if perr := uc.cache.Put(key, blob); perr != nil {
		log.Printf("CollectOrders: cache put %s failed: %v", key, perr)
	}
	return blob, nil
}

// usableBody проверяет, что тело пригодно для кэша и хранилища: корректный
// JSON без встроенного признака 404. Непригодное тело никогда не должно
// дойти до orders.order_detail — иначе заказ навсегда застрянет в фазе
// отправки.
func usableBody(blob []byte) error {
	if domain.MalformedBody(blob) {
		return errors.New("body is not valid JSON")
	}
	if domain.EmbeddedNotFound(blob) {
		return errors.New("body carries embedded 404")
	}
	return nil
}

func (uc *CollectOrdersUseCase) cached(key string) ([]byte, bool) {
	if !uc.cache.Has(key) {
		return nil, false
	}
	blob, err := uc.cache.Get(key)
	if err != nil {
		log.Printf("CollectOrders: cache get %s failed: %v", key, err)
		return nil, false
	}
	return blob, true
}
