package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Счетчики прогона на приватном реестре; /metrics поднимается только
// когда задан METRICS_ADDR.
var (
	registry = prometheus.NewRegistry()

	HTTPRequests = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "zakupki_http_requests_total",
		Help: "Requests issued against the procurement portal.",
	})

	OrdersInserted = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "zakupki_orders_inserted_total",
		Help: "Orders newly persisted by the write phase.",
	})

	CustomersInserted = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "zakupki_customers_inserted_total",
		Help: "Customers newly persisted by the write phase.",
	})

	OrdersSent = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Name: "zakupki_orders_sent_total",
		Help: "Orders acknowledged by the delivery sink.",
	})

	Errors = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Name: "zakupki_errors_total",
		Help: "Per-item errors by pipeline stage.",
	}, []string{"stage"})
)

// Handler отдает экспозицию прометеевских метрик прогона.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
