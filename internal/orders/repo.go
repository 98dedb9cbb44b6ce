package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopapi/internal/catalog"
)

// Repo is the Postgres-backed Store. Order creation relies on FOR UPDATE row
// locks so concurrent purchases of the same product are serialized and stock
// never goes negative.
type Repo struct {
	DB *pgxpool.Pool
}

func (r *Repo) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) ProductForUpdate(ctx context.Context, id string) (catalog.Product, error) {
	var p catalog.Product
	err := t.tx.QueryRow(ctx, `
		SELECT id, name, description, price, stock, image_url, created_at, updated_at
		FROM products WHERE id=$1 FOR UPDATE
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return catalog.Product{}, catalog.NotFoundError{ProductID: id}
	}
	if err != nil {
		return catalog.Product{}, fmt.Errorf("lock product: %w", err)
	}
	return p, nil
}

func (t *pgTx) DeductStock(ctx context.Context, id string, qty int) error {
	ct, err := t.tx.Exec(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now() WHERE id=$1
	`, id, qty)
	if err != nil {
		return fmt.Errorf("deduct stock: %w", err)
	}
	if ct.RowsAffected() != 1 {
		return catalog.NotFoundError{ProductID: id}
	}
	return nil
}

func (t *pgTx) InsertOrder(ctx context.Context, o Order) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO orders(id, total, status, created_at)
		VALUES ($1, $2, $3, $4)
	`, o.ID, o.Total, string(o.Status), o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for i, it := range o.Items {
		_, err = t.tx.Exec(ctx, `
			INSERT INTO order_items(order_id, line_no, product_id, product_name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.ID, i, it.ProductID, it.ProductName, it.Quantity, it.Price)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *Repo) GetOrder(ctx context.Context, id string) (Order, error) {
	var o Order
	var status string
	err := r.DB.QueryRow(ctx, `SELECT id, total, status, created_at FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.Total, &status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	o.Status = Status(status)

	itemsByOrder, err := r.loadItems(ctx, []string{o.ID})
	if err != nil {
		return Order{}, err
	}
	o.Items = itemsByOrder[o.ID]
	return o, nil
}

func (r *Repo) ListOrders(ctx context.Context) ([]Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, total, status, created_at FROM orders
		ORDER BY created_at DESC, seq ASC
	`)
}

func (r *Repo) CountOrders(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *Repo) ListOrdersPage(ctx context.Context, offset, limit int) ([]Order, error) {
	return r.queryOrders(ctx, `
		SELECT id, total, status, created_at FROM orders
		ORDER BY created_at DESC, seq ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
}

func (r *Repo) queryOrders(ctx context.Context, sql string, args ...any) ([]Order, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := make([]Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var o Order
		var status string
		if err := rows.Scan(&o.ID, &o.Total, &status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = Status(status)
		o.Items = []OrderItem{}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if items, ok := itemsByOrder[out[i].ID]; ok {
			out[i].Items = items
		}
	}
	return out, nil
}

// loadItems eagerly materializes items for a batch of orders, preserving
// cart line order.
func (r *Repo) loadItems(ctx context.Context, orderIDs []string) (map[string][]OrderItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, line_no
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[string][]OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var it OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		byOrder[orderID] = append(byOrder[orderID], it)
	}
	return byOrder, rows.Err()
}
