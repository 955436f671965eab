package domain

import "time"

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	SellingPrice    float64   `json:"selling_price"`
	DiscountPercent float64   `json:"discount_percent"`
	Stock           int       `json:"stock"`
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// UnitPrice is the catalog price with the per-product discount folded in.
func (p Product) UnitPrice() float64 {
	return p.SellingPrice * (1 - p.DiscountPercent/100)
}
