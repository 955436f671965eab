package domain

import (
	"time"

	"github.com/google/uuid"
)

type SaleItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Sale struct {
	ID              uuid.UUID     `json:"id"`
	SubmissionID    string        `json:"submission_id"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	Items           []SaleItem    `json:"items"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	DiscountPercent float64       `json:"discount"`
	Notes           string        `json:"notes"`
	TotalAmount     float64       `json:"total_amount"`
	CreatedAt       time.Time     `json:"created_at"`
}
