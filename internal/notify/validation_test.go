package notify

import (
	"errors"
	"testing"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dueInstallment(id int64, balance, name, due string) models.DueInstallment {
	return models.DueInstallment{
		Installment: models.Installment{
			ID:      id,
			DueDate: due,
			Balance: decimal.RequireFromString(balance),
		},
		CustomerName: name,
	}
}

func TestValidateInstallment(t *testing.T) {
	tests := []struct {
		name    string
		inst    models.DueInstallment
		wantErr error
	}{
		{"valid", dueInstallment(1, "10.00", "Ana", "2025-03-01"), nil},
		{"zero id", dueInstallment(0, "10.00", "Ana", "2025-03-01"), ErrInvalidID},
		{"zero balance", dueInstallment(1, "0", "Ana", "2025-03-01"), ErrNonPositiveBalance},
		{"negative balance", dueInstallment(1, "-1", "Ana", "2025-03-01"), ErrNonPositiveBalance},
		{"blank customer", dueInstallment(1, "10.00", "  ", "2025-03-01"), ErrMissingCustomerName},
		{"missing due date", dueInstallment(1, "10.00", "Ana", ""), ErrMissingDueDate},
		{"malformed due date", dueInstallment(1, "10.00", "Ana", "2025-13-01"), ErrMissingDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstallment(tt.inst)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		wantErr error
	}{
		{"valid", models.Product{ID: 1, Name: "Cable", Stock: 0}, nil},
		{"zero id", models.Product{ID: 0, Name: "Cable"}, ErrInvalidID},
		{"blank name", models.Product{ID: 1, Name: ""}, ErrMissingProductName},
		{"negative stock", models.Product{ID: 1, Name: "Cable", Stock: -2}, ErrNegativeStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProduct(tt.product)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidationError_IsPermanent(t *testing.T) {
	err := &ValidationError{Err: ErrInvalidID, Details: "installment id 0"}
	assert.True(t, err.Permanent())
	assert.Equal(t, "id must be positive: installment id 0", err.Error())
	assert.False(t, IsValidationError(errors.New("storage down")))
}
