package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/shopspring/decimal"
)

// GetPaymentsBySale retrieves the payments recorded against a sale's installments
func (r *Repository) GetPaymentsBySale(ctx context.Context, saleID int64) ([]models.Payment, error) {
	query := `
		SELECT p.id, p.installment_id, i.sale_id, p.amount, to_char(p.paid_date, 'YYYY-MM-DD'), p.created_at
		FROM sales.payments p
		JOIN sales.installments i ON i.id = p.installment_id
		WHERE i.sale_id = $1
		ORDER BY p.paid_date, p.id`
	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments of sale %d: %w", saleID, err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.InstallmentID, &p.SaleID, &p.Amount, &p.PaidDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}
	return payments, nil
}

// RevertPayment deletes a payment and restores its amount to the installment balance.
// The installment returns to pending; the next scan marks it overdue if its due date has passed.
func (r *Repository) RevertPayment(ctx context.Context, installmentID, paymentID int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var locked int64
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM sales.installments WHERE id = $1 FOR UPDATE`, installmentID).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("installment %d: %w", installmentID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock installment: %w", err)
		}

		var amount decimal.Decimal
		err = tx.QueryRowContext(ctx, `
			DELETE FROM sales.payments
			WHERE id = $1 AND installment_id = $2
			RETURNING amount`, paymentID, installmentID).Scan(&amount)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("payment %d of installment %d: %w", paymentID, installmentID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE sales.installments
			SET balance = balance + $2, status = 'pending', paid_date = NULL, updated_at = CURRENT_TIMESTAMP
			WHERE id = $1`, installmentID, amount)
		if err != nil {
			return fmt.Errorf("failed to restore installment balance: %w", err)
		}
		return nil
	})
}
