package order

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id uint) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error)
	UpdateStatusByGatewayOrderID(ctx context.Context, gatewayOrderID string, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, total, status, gateway_order_id)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		o.UserID, o.Total, o.Status, o.GatewayOrderID,
	).Scan(&o.ID, &o.CreatedAt)
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, total, status, gateway_order_id, created_at, updated_at
		 FROM orders ORDER BY id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.GatewayOrderID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, total, status, gateway_order_id, created_at, updated_at
		 FROM orders WHERE gateway_order_id = $1`,
		gatewayOrderID,
	)

	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.GatewayOrderID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) UpdateStatusByGatewayOrderID(ctx context.Context, gatewayOrderID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE gateway_order_id = $2`,
		status, gatewayOrderID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
