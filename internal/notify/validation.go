package notify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/Dan9191/installment-service/internal/utils/dates"
)

var (
	ErrInvalidID           = errors.New("id must be positive")
	ErrNonPositiveBalance  = errors.New("balance must be positive")
	ErrMissingCustomerName = errors.New("customer name is required")
	ErrMissingDueDate      = errors.New("due date is required")
	ErrMissingProductName  = errors.New("product name is required")
	ErrNegativeStock       = errors.New("stock cannot be negative")
)

// ValidationError reports a malformed alert source. It is never retried; the scan skips the record.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Permanent keeps retry wrappers from retrying a validation failure
func (e *ValidationError) Permanent() bool {
	return true
}

// ValidateInstallment checks that an open installment carries what an alert message needs
func ValidateInstallment(inst models.DueInstallment) error {
	if inst.ID <= 0 {
		return &ValidationError{Err: ErrInvalidID, Details: fmt.Sprintf("installment id %d", inst.ID)}
	}
	if !inst.Balance.IsPositive() {
		return &ValidationError{Err: ErrNonPositiveBalance, Details: fmt.Sprintf("installment %d balance %s", inst.ID, inst.Balance)}
	}
	if strings.TrimSpace(inst.CustomerName) == "" {
		return &ValidationError{Err: ErrMissingCustomerName, Details: fmt.Sprintf("installment %d", inst.ID)}
	}
	if inst.DueDate == "" {
		return &ValidationError{Err: ErrMissingDueDate, Details: fmt.Sprintf("installment %d", inst.ID)}
	}
	if _, err := dates.Parse(inst.DueDate); err != nil {
		return &ValidationError{Err: ErrMissingDueDate, Details: err.Error()}
	}
	return nil
}

// ValidateProduct checks that a product can be reported as low on stock
func ValidateProduct(p models.Product) error {
	if p.ID <= 0 {
		return &ValidationError{Err: ErrInvalidID, Details: fmt.Sprintf("product id %d", p.ID)}
	}
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Err: ErrMissingProductName, Details: fmt.Sprintf("product %d", p.ID)}
	}
	if p.Stock < 0 {
		return &ValidationError{Err: ErrNegativeStock, Details: fmt.Sprintf("product %d stock %d", p.ID, p.Stock)}
	}
	return nil
}

// IsValidationError reports whether err is, or wraps, a *ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
