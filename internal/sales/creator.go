package sales

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Jeffrey-hendell/shaypos/internal/checkout"
	"github.com/Jeffrey-hendell/shaypos/internal/domain"
	"github.com/google/uuid"
)

// Creator adapts the sales repository to the checkout engine's SaleCreator
// collaborator.
type Creator struct {
	repo SaleRepository
}

func NewCreator(repo SaleRepository) *Creator {
	return &Creator{repo: repo}
}

// CreateSale records the sale. A submission already recorded under the same
// submission id returns the existing sale, so a retry after a lost response
// does not duplicate it.
func (c *Creator) CreateSale(ctx context.Context, req *checkout.SaleRequest) (*domain.Sale, error) {
	sale := &domain.Sale{
		ID:              uuid.New(),
		SubmissionID:    req.SubmissionID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Items:           req.Items,
		PaymentMethod:   req.PaymentMethod,
		DiscountPercent: req.DiscountPercent,
		Notes:           req.Notes,
		TotalAmount:     req.TotalAmount,
		CreatedAt:       time.Now(),
	}

	err := c.repo.CreateSale(ctx, sale)
	if errors.Is(err, ErrDuplicateSale) {
		log.Printf("duplicate submission %s, returning recorded sale", req.SubmissionID)
		existing, getErr := c.repo.GetSaleBySubmissionID(ctx, req.SubmissionID)
		if getErr != nil {
			return nil, fmt.Errorf("fetch recorded sale for submission %s: %w", req.SubmissionID, getErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	return sale, nil
}
