package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/installment-service/internal/models"
)

// ListLowStockProducts retrieves products whose stock has fallen to their minimum
func (r *Repository) ListLowStockProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, stock, min_stock
		FROM sales.products
		WHERE stock <= min_stock
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.MinStock); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}
