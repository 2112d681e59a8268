package internal

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"zakupki-parser/internal/adapters/detailcache"
	adapter_postgres "zakupki-parser/internal/adapters/postgres"
	adapter_rabbitmq "zakupki-parser/internal/adapters/rabbitmq"
	"zakupki-parser/internal/adapters/reportapi"
	"zakupki-parser/internal/adapters/zakupkifetcher"
	"zakupki-parser/internal/configs"
	"zakupki-parser/internal/constants"
	"zakupki-parser/internal/core/port"
	"zakupki-parser/internal/core/usecase"
	"zakupki-parser/internal/metrics"
	"zakupki-parser/pkg/postgres"
	"zakupki-parser/pkg/rabbitmq/rabbitmq_common"
	"zakupki-parser/pkg/rabbitmq/rabbitmq_producer"
)

// RunSummary — итог прогона: сколько новых заказов ушло получателю и
// сколько записей завершилось ошибкой по обеим фазам.
type RunSummary struct {
	NewOrders int
	Errors    int
}

// App собирает зависимости приложения
type App struct {
	cfg     *configs.AppConfig
	cache   port.DetailCachePort
	collect *usecase.CollectOrdersUseCase
	send    *usecase.SendOrdersUseCase

	logFile       *os.File
	pool          *pgxpool.Pool
	producer      *rabbitmq_producer.Publisher
	metricsServer *http.Server
}

// NewApp инициализирует приложение: конфигурация, хранилище, кэш,
// приемник отчетов, сборщик портала и use cases поверх них.
func NewApp(ctx context.Context) (*App, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{cfg: cfg}

	// Диагностика пишется в файл, консоль остается для хода прогона.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}
	log.SetOutput(logFile)
	app.logFile = logFile

	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.Database.URL})
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	app.pool = pool

	storage, err := adapter_postgres.NewOrderStorageAdapter(pool)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create order storage adapter: %w", err)
	}
	if err := storage.EnsureSchema(ctx); err != nil {
		app.close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	cache, err := newDetailCache(cfg.Cache)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create detail cache: %w", err)
	}
	app.cache = cache

	sink, err := app.newSink()
	if err != nil {
		app.close()
		return nil, err
	}

	fetcher := zakupkifetcher.NewZakupkiFetcherAdapter(constants.ListingQueryURL, cfg.Fetcher)

	app.collect = usecase.NewCollectOrdersUseCase(fetcher, cache, storage, constants.TestOrderNumbers)
	app.send = usecase.NewSendOrdersUseCase(storage, sink)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		app.metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			log.Printf("App: metrics exposed on %s/metrics", cfg.MetricsAddr)
			if err := app.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("App: metrics server stopped: %v", err)
			}
		}()
	}

	return app, nil
}

// newDetailCache выбирает бэкенд рабочего кэша по конфигурации.
func newDetailCache(cfg configs.CacheConfig) (port.DetailCachePort, error) {
	switch cfg.Backend {
	case configs.CacheBackendPebble:
		return detailcache.NewPebbleCacheAdapter(cfg.Dir)
	default:
		return detailcache.NewFileCacheAdapter(cfg.Dir)
	}
}

// newSink выбирает приемник отчетов по конфигурации.
func (a *App) newSink() (port.DeliverySinkPort, error) {
	switch a.cfg.Sink {
	case configs.SinkRabbitMQ:
		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: a.cfg.RabbitMQ.URL},
			ExchangeName:             constants.ExchangeReports,
			ExchangeType:             "direct",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
		}
		a.producer = producer
		return adapter_rabbitmq.NewReportQueueAdapter(producer, constants.RoutingKeyReportOrders, constants.SourceName)
	case configs.SinkOff:
		return reportapi.NewDisabledSinkAdapter(), nil
	default:
		return reportapi.NewReportAPIAdapter(a.cfg.ReportAPI.URL, constants.SourceName)
	}
}

// Run выполняет один прогон: фаза записи, затем фаза отправки.
// Сбой пакетного запроса списка дает итог {-1, -1}; любая другая
// ошибка учитывается в счетчике и прогон продолжается.
func (a *App) Run(ctx context.Context) (RunSummary, error) {
	defer a.close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("[START] Парсер запущен %s\n", time.Now().Format("02.01.2006, 15:04:05"))
	log.Println("App: run started")

	collectRes, err := a.collect.Execute(ctx)
	if err != nil {
		// Без списка закупок прогон не имеет смысла: итог помечается
		// сигнальной парой, кэш не трогаем.
		log.Printf("App: listing fetch failed, aborting run: %v", err)
		metrics.Errors.WithLabelValues("collect").Inc()
		summary := RunSummary{NewOrders: -1, Errors: -1}
		a.finish(summary)
		return summary, nil
	}
	metrics.Errors.WithLabelValues("collect").Add(float64(collectRes.Errors))

	sendRes, err := a.send.Execute(ctx)
	if err != nil {
		log.Printf("App: send phase failed: %v", err)
		metrics.Errors.WithLabelValues("send").Inc()
		summary := RunSummary{NewOrders: 0, Errors: collectRes.Errors + 1}
		a.finish(summary)
		return summary, nil
	}
	metrics.Errors.WithLabelValues("send").Add(float64(sendRes.Errors))

	summary := RunSummary{
		NewOrders: sendRes.Sent,
		Errors:    collectRes.Errors + sendRes.Errors,
	}

	// Рабочий кэш нужен только внутри прогона; чистим его лишь после
	// полностью успешного завершения обеих фаз.
	if summary.Errors == 0 {
		if err := a.cache.Purge(); err != nil {
			log.Printf("App: cache purge failed: %v", err)
		}
	}

	a.finish(summary)
	return summary, nil
}

func (a *App) finish(summary RunSummary) {
	fmt.Printf("[FINISH] Парсер завершил работу %s. %d новых заказов отправлено. %d заказов с ошибкой.\n",
		time.Now().Format("02.01.2006, 15:04:05"), summary.NewOrders, summary.Errors)
	log.Printf("App: run finished, %d new orders sent, %d errors", summary.NewOrders, summary.Errors)
}

// close освобождает ресурсы приложения; безопасен при частичной инициализации.
func (a *App) close() {
	if a.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_ = a.metricsServer.Shutdown(shutdownCtx)
		cancel()
		a.metricsServer = nil
	}
	if a.producer != nil {
		_ = a.producer.Close()
		a.producer = nil
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			log.Printf("App: cache close failed: %v", err)
		}
		a.cache = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}
