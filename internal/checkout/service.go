package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Jeffrey-hendell/shaypos/internal/domain"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// StockProvider supplies the freshest known catalog record for a product.
// Cart mutations re-validate quantities against it, falling back to the
// line's stock snapshot when the lookup fails.
type StockProvider interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

// SaleCreator records a completed sale. Implementations must be idempotent
// on SubmissionID: a retry of an already-recorded submission returns the
// existing sale instead of creating a second one.
type SaleCreator interface {
	CreateSale(ctx context.Context, req *SaleRequest) (*domain.Sale, error)
}

// SaleRequest is the payload handed to the sale-creation collaborator.
type SaleRequest struct {
	SubmissionID    string               `json:"submission_id"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerPhone   string               `json:"customer_phone"`
	Items           []domain.SaleItem    `json:"items"`
	PaymentMethod   domain.PaymentMethod `json:"payment_method"`
	DiscountPercent float64              `json:"discount"`
	Notes           string               `json:"notes"`
	TotalAmount     float64              `json:"total_amount"`
}

type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

// SessionView is a consistent read of a session for presentation.
type SessionView struct {
	ID              string               `json:"session_id"`
	Status          SessionStatus        `json:"status"`
	Lines           []Line               `json:"lines"`
	Customer        Customer             `json:"customer"`
	PaymentMethod   domain.PaymentMethod `json:"payment_method"`
	DiscountPercent float64              `json:"discount_percent"`
	Notes           string               `json:"notes"`
	Totals          Totals               `json:"totals"`
}

// Service drives checkout sessions: cart mutations, totals, and the
// hand-off to the sale-creation collaborator.
type Service struct {
	sessions *MemoryStore
	stock    StockProvider
	creator  SaleCreator
	notifier Notifier
	breaker  *gobreaker.CircuitBreaker[*domain.Sale]
}

func NewService(sessions *MemoryStore, stock StockProvider, creator SaleCreator, notifier Notifier) *Service {
	return &Service{
		sessions: sessions,
		stock:    stock,
		creator:  creator,
		notifier: notifier,
		breaker: gobreaker.NewCircuitBreaker[*domain.Sale](gobreaker.Settings{
			Name:    "sale-creator",
			Timeout: 30 * time.Second,
		}),
	}
}

func (s *Service) OpenSession() *Session {
	return s.sessions.Create()
}

func (s *Service) GetSession(id string) (*Session, error) {
	return s.sessions.Get(id)
}

// CancelSession drops the session. While a submission is in flight the
// session must stay around to receive the outcome, so cancellation is
// rejected like any other mutation.
func (s *Service) CancelSession(id string) error {
	session, err := s.sessions.Get(id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	busy := session.Status == StatusSubmitting
	session.mu.Unlock()
	if busy {
		return ErrSubmissionInFlight
	}

	return s.sessions.Delete(id)
}

// mutate runs fn on the locked session, rejecting mutation while a
// submission is in flight.
func (s *Service) mutate(sessionID string, fn func(*Session) error) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.Status == StatusSubmitting {
		return ErrSubmissionInFlight
	}
	if err := fn(session); err != nil {
		return err
	}
	session.UpdatedAt = time.Now()
	return nil
}

func (s *Service) AddItem(ctx context.Context, sessionID, productID string) error {
	product, lookupErr := s.stock.GetProduct(ctx, productID)

	return s.mutate(sessionID, func(session *Session) error {
		if lookupErr != nil {
			// No fresh catalog data. An existing line can still grow
			// against its stock snapshot; an unknown product cannot.
			line := session.Cart.Find(productID)
			if line == nil {
				return lookupErr
			}
			log.Printf("stock lookup for %s failed, using snapshot: %v", productID, lookupErr)
			product = &domain.Product{ID: line.ProductID, Name: line.Name, Stock: line.MaxStock}
		}

		created, err := session.Cart.AddItem(*product)
		if err != nil {
			s.notifier.Notify(Event{LevelError, fmt.Sprintf("%s is out of stock", product.Name)})
			return err
		}

		if created {
			s.notifier.Notify(Event{LevelSuccess, fmt.Sprintf("added %s to sale", product.Name)})
		} else {
			line := session.Cart.Find(productID)
			s.notifier.Notify(Event{LevelInfo, fmt.Sprintf("increased %s quantity to %d", product.Name, line.Quantity)})
		}
		return nil
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) error {
	product, lookupErr := s.stock.GetProduct(ctx, productID)

	return s.mutate(sessionID, func(session *Session) error {
		line := session.Cart.Find(productID)
		if line == nil {
			return ErrLineNotFound
		}

		if quantity < 1 {
			return s.removeLine(session, productID)
		}

		stock := line.MaxStock
		if lookupErr == nil {
			stock = product.Stock
		} else {
			log.Printf("stock lookup for %s failed, using snapshot: %v", productID, lookupErr)
		}

		if err := session.Cart.UpdateQuantity(productID, quantity, stock); err != nil {
			if err == ErrOutOfStock {
				s.notifier.Notify(Event{LevelError, fmt.Sprintf("only %d of %s in stock", stock, line.Name)})
			}
			return err
		}
		return nil
	})
}

func (s *Service) RemoveItem(sessionID, productID string) error {
	return s.mutate(sessionID, func(session *Session) error {
		return s.removeLine(session, productID)
	})
}

func (s *Service) removeLine(session *Session, productID string) error {
	line := session.Cart.Find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	name := line.Name
	if err := session.Cart.RemoveItem(productID); err != nil {
		return err
	}
	s.notifier.Notify(Event{LevelInfo, fmt.Sprintf("removed %s from sale", name)})
	return nil
}

func (s *Service) SetCustomer(sessionID string, customer Customer) error {
	return s.mutate(sessionID, func(session *Session) error {
		session.Customer = customer
		return nil
	})
}

func (s *Service) SetPaymentMethod(sessionID string, method domain.PaymentMethod) error {
	return s.mutate(sessionID, func(session *Session) error {
		if !method.Valid() {
			return ErrInvalidPayment
		}
		session.PaymentMethod = method
		return nil
	})
}

func (s *Service) SetDiscount(sessionID string, percent float64) error {
	return s.mutate(sessionID, func(session *Session) error {
		if percent < 0 || percent > 100 {
			return ErrInvalidDiscount
		}
		session.DiscountPercent = percent
		return nil
	})
}

func (s *Service) SetNotes(sessionID, notes string) error {
	return s.mutate(sessionID, func(session *Session) error {
		session.Notes = notes
		return nil
	})
}

func (s *Service) View(sessionID string) (*SessionView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	lines := make([]Line, len(session.Cart.Lines))
	copy(lines, session.Cart.Lines)

	return &SessionView{
		ID:              session.ID,
		Status:          session.Status,
		Lines:           lines,
		Customer:        session.Customer,
		PaymentMethod:   session.PaymentMethod,
		DiscountPercent: session.DiscountPercent,
		Notes:           session.Notes,
		Totals: Totals{
			Subtotal:       session.Cart.Subtotal(),
			DiscountAmount: session.Cart.DiscountAmount(session.DiscountPercent),
			Total:          session.Cart.Total(session.DiscountPercent),
		},
	}, nil
}

func (s *Service) Totals(sessionID string) (*Totals, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	return &Totals{
		Subtotal:       session.Cart.Subtotal(),
		DiscountAmount: session.Cart.DiscountAmount(session.DiscountPercent),
		Total:          session.Cart.Total(session.DiscountPercent),
	}, nil
}

// Submit validates the session, hands the sale to the collaborator and, on
// success, resets the session for the next customer. Validation failures and
// collaborator errors leave the cart exactly as it was so the operator can
// correct and retry.
func (s *Service) Submit(ctx context.Context, sessionID string) (*domain.Sale, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	if !CanTransitionTo(session.Status, StatusSubmitting) {
		session.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if session.Cart.IsEmpty() {
		session.mu.Unlock()
		s.notifier.Notify(Event{LevelError, "cannot submit an empty sale"})
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(session.Customer.Name) == "" {
		session.mu.Unlock()
		s.notifier.Notify(Event{LevelError, "customer name is required"})
		return nil, ErrMissingCustomerName
	}

	if session.SubmissionID == "" {
		session.SubmissionID = uuid.New().String()
	}
	method := session.PaymentMethod
	if method == "" {
		method = domain.PaymentCash
	}

	req := &SaleRequest{
		SubmissionID:    session.SubmissionID,
		CustomerName:    strings.TrimSpace(session.Customer.Name),
		CustomerEmail:   session.Customer.Email,
		CustomerPhone:   session.Customer.Phone,
		Items:           make([]domain.SaleItem, len(session.Cart.Lines)),
		PaymentMethod:   method,
		DiscountPercent: session.DiscountPercent,
		Notes:           session.Notes,
		TotalAmount:     session.Cart.Total(session.DiscountPercent),
	}
	for i, line := range session.Cart.Lines {
		req.Items[i] = domain.SaleItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	session.Status = StatusSubmitting
	session.mu.Unlock()

	sale, callErr := s.breaker.Execute(func() (*domain.Sale, error) {
		return s.creator.CreateSale(ctx, req)
	})

	session.mu.Lock()
	defer session.mu.Unlock()

	if callErr != nil {
		session.Status = StatusOpen
		msg := callErr.Error()
		if msg == "" {
			msg = "unable to record the sale, please try again"
		}
		s.notifier.Notify(Event{LevelError, msg})
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, callErr)
	}

	s.notifier.Notify(Event{LevelSuccess, fmt.Sprintf("sale recorded for %s", req.CustomerName)})
	session.Reset()
	return sale, nil
}
