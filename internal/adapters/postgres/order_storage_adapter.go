package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zakupki-parser/internal/core/domain"
	"zakupki-parser/internal/metrics"
)

// OrderStorageAdapter реализует OrderStoragePort для PostgreSQL.
// Дедупликация держится на натуральных ключах: вставки идут через
// ON CONFLICT DO NOTHING, так что проверка и вставка атомарны.
type OrderStorageAdapter struct {
	pool *pgxpool.Pool
}

// NewOrderStorageAdapter создает новый экземпляр адаптера.
func NewOrderStorageAdapter(pool *pgxpool.Pool) (*OrderStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &OrderStorageAdapter{pool: pool}, nil
}

// EnsureSchema создает необходимые таблицы, если отсутствуют.
func (a *OrderStorageAdapter) EnsureSchema(ctx context.Context) error {
	_, err := a.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS customers (
  created_at    timestamptz NOT NULL DEFAULT now(),
  url           text NOT NULL DEFAULT '',
  customer_id   text PRIMARY KEY,
  customer_data text NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS orders (
  created_at   timestamptz NOT NULL DEFAULT now(),
  url          text NOT NULL DEFAULT '',
  order_type   text NOT NULL DEFAULT '',
  order_id     text PRIMARY KEY,
  order_data   text NOT NULL DEFAULT '',
  order_detail text NOT NULL DEFAULT '',
  customer_id  text NOT NULL DEFAULT '',
  was_send     boolean NOT NULL DEFAULT false
);`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// InsertCustomerIfAbsent вставляет заказчика, если его еще нет.
func (a *OrderStorageAdapter) InsertCustomerIfAbsent(ctx context.Context, c domain.Customer) (bool, error) {
	tag, err := a.pool.Exec(ctx, `
        INSERT INTO customers (url, customer_id, customer_data)
        VALUES ($1, $2, $3)
        ON CONFLICT (customer_id) DO NOTHING`,
		c.URL, c.CustomerID, string(c.CustomerData),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert customer %s: %w", c.CustomerID, err)
	}
	inserted := tag.RowsAffected() > 0
	if inserted {
		metrics.CustomersInserted.Inc()
	}
	return inserted, nil
}

// InsertOrderIfAbsent вставляет заказ, если его еще нет.
func (a *OrderStorageAdapter) InsertOrderIfAbsent(ctx context.Context, o domain.Order) (bool, error) {
	tag, err := a.pool.Exec(ctx, `
        INSERT INTO orders (url, order_type, order_id, order_data, order_detail, customer_id, was_send)
        VALUES ($1, $2, $3, $4, $5, $6, false)
        ON CONFLICT (order_id) DO NOTHING`,
		o.URL, string(o.OrderType), o.OrderID, string(o.OrderData), string(o.OrderDetail), o.CustomerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert order %s: %w", o.OrderID, err)
	}
	inserted := tag.RowsAffected() > 0
	if inserted {
		metrics.OrdersInserted.Inc()
	}
	return inserted, nil
}

// GetCustomer извлекает заказчика по натуральному ключу.
func (a *OrderStorageAdapter) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	var c domain.Customer
	var data string
	err := a.pool.QueryRow(ctx, `
        SELECT created_at, url, customer_id, customer_data
        FROM customers WHERE customer_id = $1`, customerID,
	).Scan(&c.CreatedAt, &c.URL, &c.CustomerID, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query customer %s: %w", customerID, err)
	}
	c.CustomerData = []byte(data)
	return &c, nil
}

// GetOrder извлекает заказ по натуральному ключу.
func (a *OrderStorageAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := a.scanOrder(a.pool.QueryRow(ctx, `
        SELECT created_at, url, order_type, order_id, order_data, order_detail, customer_id, was_send
        FROM orders WHERE order_id = $1`, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query order %s: %w", orderID, err)
	}
	return o, nil
}

// ListUndelivered возвращает конечный снимок всех неотправленных заказов.
func (a *OrderStorageAdapter) ListUndelivered(ctx context.Context) ([]domain.Order, error) {
	rows, err := a.pool.Query(ctx, `
        SELECT created_at, url, order_type, order_id, order_data, order_detail, customer_id, was_send
        FROM orders WHERE was_send = false
        ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query undelivered orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, scanErr := a.scanOrder(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan undelivered order: %w", scanErr)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read undelivered orders: %w", err)
	}
	return orders, nil
}

// MarkDelivered помечает заказ отправленным и очищает сырые данные,
// чтобы ограничить рост хранилища. Повторный вызов безопасен.
func (a *OrderStorageAdapter) MarkDelivered(ctx context.Context, orderID string) error {
	_, err := a.pool.Exec(ctx, `
        UPDATE orders
        SET was_send = true, order_data = '', order_detail = ''
        WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to mark order %s delivered: %w", orderID, err)
	}
	return nil
}

func (a *OrderStorageAdapter) scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var orderType, orderData, orderDetail string
	err := row.Scan(&o.CreatedAt, &o.URL, &orderType, &o.OrderID, &orderData, &orderDetail, &o.CustomerID, &o.WasSend)
	if err != nil {
		return nil, err
	}
	o.OrderType = domain.OrderType(orderType)
	o.OrderData = []byte(orderData)
	o.OrderDetail = []byte(orderDetail)
	return &o, nil
}
