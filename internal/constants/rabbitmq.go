package constants

// Имя обменника для публикации отчетов
const ExchangeReports = "report_exchange"

// Имена очередей
const (
	QueueReportOrders = "report_orders"
)

// Ключи маршрутизации
const (
	RoutingKeyReportOrders = "reports.orders.send"
)
