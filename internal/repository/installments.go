package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/shopspring/decimal"
)

const installmentColumns = `
	i.id, i.sale_id, i.installment_number,
	to_char(i.due_date, 'YYYY-MM-DD'),
	COALESCE(to_char(i.paid_date, 'YYYY-MM-DD'), ''),
	i.status, i.amount, i.balance, i.late_fee`

func scanInstallment(s scanner, inst *models.Installment, extra ...any) error {
	dest := []any{
		&inst.ID, &inst.SaleID, &inst.Number, &inst.DueDate, &inst.PaidDate,
		&inst.Status, &inst.Amount, &inst.Balance, &inst.LateFee,
	}
	return s.Scan(append(dest, extra...)...)
}

func collectInstallments(rows *sql.Rows) ([]models.Installment, error) {
	defer rows.Close()

	installments := make([]models.Installment, 0)
	for rows.Next() {
		var inst models.Installment
		if err := scanInstallment(rows, &inst); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read installments: %w", err)
	}
	return installments, nil
}

// GetInstallment retrieves a single installment by id
func (r *Repository) GetInstallment(ctx context.Context, id int64) (*models.Installment, error) {
	inst := &models.Installment{}
	query := `SELECT ` + installmentColumns + `
		FROM sales.installments i
		WHERE i.id = $1`
	err := scanInstallment(r.db.QueryRowContext(ctx, query, id), inst)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("installment %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	return inst, nil
}

// GetInstallmentsBySale retrieves every installment of a sale ordered by installment number
func (r *Repository) GetInstallmentsBySale(ctx context.Context, saleID int64) ([]models.Installment, error) {
	query := `SELECT ` + installmentColumns + `
		FROM sales.installments i
		WHERE i.sale_id = $1
		ORDER BY i.installment_number`
	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get installments of sale %d: %w", saleID, err)
	}
	return collectInstallments(rows)
}

// GetInstallmentsByCustomer retrieves the installments of every sale owned by a customer
func (r *Repository) GetInstallmentsByCustomer(ctx context.Context, customerID int64) ([]models.Installment, error) {
	query := `SELECT ` + installmentColumns + `
		FROM sales.installments i
		JOIN sales.sales s ON s.id = i.sale_id
		WHERE s.customer_id = $1
		ORDER BY i.sale_id, i.installment_number`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get installments of customer %d: %w", customerID, err)
	}
	return collectInstallments(rows)
}

// ListOpenInstallments retrieves every pending or overdue installment with its customer
func (r *Repository) ListOpenInstallments(ctx context.Context) ([]models.DueInstallment, error) {
	query := `SELECT ` + installmentColumns + `, c.id, c.name, c.email
		FROM sales.installments i
		JOIN sales.sales s ON s.id = i.sale_id
		JOIN sales.customers c ON c.id = s.customer_id
		WHERE i.status IN ('pending', 'overdue')
		ORDER BY i.due_date, i.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open installments: %w", err)
	}
	defer rows.Close()

	due := make([]models.DueInstallment, 0)
	for rows.Next() {
		var d models.DueInstallment
		if err := scanInstallment(rows, &d.Installment, &d.CustomerID, &d.CustomerName, &d.CustomerEmail); err != nil {
			return nil, fmt.Errorf("failed to scan open installment: %w", err)
		}
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read open installments: %w", err)
	}
	return due, nil
}

// MarkInstallmentPaid settles the remaining balance of an installment on paidDate
func (r *Repository) MarkInstallmentPaid(ctx context.Context, id int64, paidDate string) (*models.Payment, error) {
	return r.applyPayment(ctx, id, nil, paidDate)
}

// ApplyPartialPayment records amount against an installment, settling it when the balance reaches zero
func (r *Repository) ApplyPartialPayment(ctx context.Context, id int64, amount decimal.Decimal, paidDate string) (*models.Payment, error) {
	return r.applyPayment(ctx, id, &amount, paidDate)
}

func (r *Repository) applyPayment(ctx context.Context, id int64, amount *decimal.Decimal, paidDate string) (*models.Payment, error) {
	payment := &models.Payment{InstallmentID: id, PaidDate: paidDate}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		inst := &models.Installment{}
		query := `SELECT ` + installmentColumns + `
			FROM sales.installments i
			WHERE i.id = $1
			FOR UPDATE`
		err := scanInstallment(tx.QueryRowContext(ctx, query, id), inst)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("installment %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock installment: %w", err)
		}
		switch inst.Status {
		case models.StatusPaid:
			return fmt.Errorf("installment %d: %w", id, ErrAlreadyPaid)
		case models.StatusCancelled:
			return fmt.Errorf("installment %d: %w", id, ErrCancelled)
		}

		paid := inst.Balance
		if amount != nil {
			if amount.GreaterThan(inst.Balance) {
				return fmt.Errorf("installment %d: %w (%s > %s)", id, ErrOverpayment, amount, inst.Balance)
			}
			paid = *amount
		}
		remaining := inst.Balance.Sub(paid)
		payment.SaleID = inst.SaleID
		payment.Amount = paid

		if paid.IsPositive() {
			err = tx.QueryRowContext(ctx, `
				INSERT INTO sales.payments (installment_id, amount, paid_date, created_at)
				VALUES ($1, $2, $3::date, CURRENT_TIMESTAMP)
				RETURNING id, created_at`, id, paid, paidDate).
				Scan(&payment.ID, &payment.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert payment: %w", err)
			}
		}

		if remaining.IsZero() {
			_, err = tx.ExecContext(ctx, `
				UPDATE sales.installments
				SET balance = 0, status = 'paid', paid_date = $2::date, updated_at = CURRENT_TIMESTAMP
				WHERE id = $1`, id, paidDate)
		} else {
			_, err = tx.ExecContext(ctx, `
				UPDATE sales.installments
				SET balance = $2, updated_at = CURRENT_TIMESTAMP
				WHERE id = $1`, id, remaining)
		}
		if err != nil {
			return fmt.Errorf("failed to update installment balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// UpdateInstallment applies the non-nil fields of upd. A late fee replaces the previous fee and
// moves the balance by the difference.
func (r *Repository) UpdateInstallment(ctx context.Context, id int64, upd models.InstallmentUpdate) error {
	if upd.Empty() {
		return nil
	}

	sets := make([]string, 0, 4)
	args := []any{id}
	if upd.DueDate != nil {
		args = append(args, *upd.DueDate)
		sets = append(sets, fmt.Sprintf("due_date = $%d::date", len(args)))
	}
	if upd.Status != nil {
		args = append(args, string(*upd.Status))
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if upd.LateFee != nil {
		args = append(args, *upd.LateFee)
		n := len(args)
		sets = append(sets,
			fmt.Sprintf("balance = balance + ($%d - late_fee)", n),
			fmt.Sprintf("late_fee = $%d", n))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	query := `UPDATE sales.installments SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update installment %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("installment %d: %w", id, ErrNotFound)
	}
	return nil
}

// MarkOverdue persists the overdue status of pending installments due before today
func (r *Repository) MarkOverdue(ctx context.Context, today string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sales.installments
		SET status = 'overdue', updated_at = CURRENT_TIMESTAMP
		WHERE status = 'pending' AND due_date < $1::date`, today)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue installments: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue installments: %w", err)
	}
	return n, nil
}
