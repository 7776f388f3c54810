package payment

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	SavePayment(ctx context.Context, p *Payment) error
	MarkVerified(ctx context.Context, gatewayOrderID, paymentID string) error
	MarkRejected(ctx context.Context, gatewayOrderID string) error
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Payment, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SavePayment(ctx context.Context, p *Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (order_id, gateway_order_id, amount, currency, receipt, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		p.OrderID, p.GatewayOrderID, p.Amount, p.Currency, p.Receipt, StatusCreated,
	)
	return err
}

func (r *repository) MarkVerified(ctx context.Context, gatewayOrderID, paymentID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1, payment_id = $2, updated_at = now()
		WHERE gateway_order_id = $3
	`, StatusVerified, paymentID, gatewayOrderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *repository) MarkRejected(ctx context.Context, gatewayOrderID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1, updated_at = now()
		WHERE gateway_order_id = $2
	`, StatusRejected, gatewayOrderID)
	return err
}

func (r *repository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, gateway_order_id, payment_id, amount, currency, receipt, status, created_at, updated_at
		FROM payments WHERE gateway_order_id = $1
	`, gatewayOrderID)

	var p Payment
	var paymentID sql.NullString
	err := row.Scan(
		&p.ID, &p.OrderID, &p.GatewayOrderID, &paymentID,
		&p.Amount, &p.Currency, &p.Receipt, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	p.PaymentID = paymentID.String

	return &p, nil
}
