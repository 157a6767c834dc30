package models

// Product is a stock item watched for low-stock alerts
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
}

// IsLowStock reports whether stock has fallen to the configured minimum
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
