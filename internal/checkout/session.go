package checkout

import (
	"sync"
	"time"

	"github.com/Jeffrey-hendell/shaypos/internal/domain"
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Session is one open quick-sale flow at a terminal: the cart plus the
// checkout metadata entered by the operator. Sessions live purely in memory
// and are dropped on submission or cancellation.
type Session struct {
	mu sync.Mutex

	ID              string
	Cart            Cart
	Customer        Customer
	PaymentMethod   domain.PaymentMethod
	DiscountPercent float64
	Notes           string
	Status          SessionStatus

	// SubmissionID is assigned on the first submit attempt and reused on
	// retries, so a response lost after the sale was recorded does not
	// produce a duplicate sale.
	SubmissionID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reset returns the session to its initial empty values after a completed
// sale. The session stays usable for the next customer.
func (s *Session) Reset() {
	s.Cart = Cart{}
	s.Customer = Customer{}
	s.PaymentMethod = ""
	s.DiscountPercent = 0
	s.Notes = ""
	s.SubmissionID = ""
	s.Status = StatusOpen
	s.UpdatedAt = time.Now()
}
