package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"zakupki-parser/internal/core/domain"
	"zakupki-parser/internal/core/port"
)

// SendOrdersUseCase — фаза отправки: снимает все неотправленные заказы,
// собирает канонический формат и передает их приемнику отчетов по одному.
// Заказ помечается отправленным только после подтверждения приемника,
// поэтому сбой оставляет его на повтор в следующем прогоне.
type SendOrdersUseCase struct {
	storage port.OrderStoragePort
	sink    port.DeliverySinkPort
}

// NewSendOrdersUseCase создает новый экземпляр use case.
func NewSendOrdersUseCase(storage port.OrderStoragePort, sink port.DeliverySinkPort) *SendOrdersUseCase {
	return &SendOrdersUseCase{
		storage: storage,
		sink:    sink,
	}
}

// SendResult — итог фазы отправки
type SendResult struct {
	Sent   int
	Errors int
}

// Execute выполняет фазу отправки.
func (uc *SendOrdersUseCase) Execute(ctx context.Context) (SendResult, error) {
	fmt.Println("[START] Начало отправки заказов по API")
	log.Println("SendOrders: starting send phase")

	orders, err := uc.storage.ListUndelivered(ctx)
	if err != nil {
		return SendResult{}, fmt.Errorf("send orders: failed to list undelivered orders: %w", err)
	}

	if len(orders) == 0 {
		fmt.Println("[INFO] Новых заказов нет")
		log.Println("SendOrders: nothing to send")
	}

	var res SendResult
	for i, order := range orders {
		iterInfo := fmt.Sprintf("#%d / %d", i+1, len(orders))

		var entry domain.ListingEntry
		_ = json.Unmarshal(order.OrderData, &entry)
		fmt.Printf("%s: [ORDER] Заказ (%s) %s\n", iterInfo, entry.Number, entry.Name)

		customer, gerr := uc.storage.GetCustomer(ctx, order.CustomerID)
		if gerr != nil {
			res.Errors++
			fmt.Printf("%s: [ERROR] Заказчик не найден для заказа: %s\n", iterInfo, order.URL)
			log.Printf("SendOrders: customer %s for order %s: %v", order.CustomerID, order.URL, gerr)
			continue
		}

		formatted, ferr := FormatOrder(order, *customer)
		if ferr != nil {
			res.Errors++
			fmt.Printf("%s: [ERROR] Ошибка при создании заказа для отправки по API: %s\n", iterInfo, order.URL)
			log.Printf("SendOrders: %v", ferr)
			continue
		}

		if serr := uc.sink.Send(ctx, []domain.CanonicalOrder{formatted}); serr != nil {
			res.Errors++
			fmt.Printf("%s: [ERROR] Заказ не отправлен по API: %s\n", iterInfo, order.URL)
			log.Printf("SendOrders: send order %s (%s): %v", order.OrderID, order.URL, serr)
			continue
		}

		if merr := uc.storage.MarkDelivered(ctx, order.OrderID); merr != nil {
			// Заказ доставлен, но флаг не записан: в следующем прогоне он
			// уйдет повторно — потребитель дедуплицирует по purchaseNumber.
			res.Errors++
			log.Printf("SendOrders: mark delivered %s: %v", order.OrderID, merr)
			continue
		}

		res.Sent++
		fmt.Printf("%s: [SUCCESS] Заказ успешно отправлен по API: %s\n", iterInfo, order.URL)
		log.Printf("SendOrders: order %s sent", order.OrderID)
	}

	fmt.Println("[FINISH] Конец отправки заказов по API")
	log.Printf("SendOrders: send phase done, %d sent, %d errors", res.Sent, res.Errors)
	return res, nil
}
