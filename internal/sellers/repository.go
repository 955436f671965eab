package sellers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrSellerNotFound = errors.New("seller not found")

type Seller struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository stores sellers in the same embedded database as the catalog;
// the handle is shared, the table is owned here.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListSellers(ctx context.Context) ([]*Seller, error) {
	query := `
		SELECT id, name, email, phone, role, active, created_at
		FROM sellers
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sellers: %w", err)
	}
	defer rows.Close()

	var result []*Seller
	for rows.Next() {
		s := &Seller{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Role, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan seller: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return result, nil
}

func (r *Repository) GetSeller(ctx context.Context, id string) (*Seller, error) {
	query := `
		SELECT id, name, email, phone, role, active, created_at
		FROM sellers
		WHERE id = $1
	`

	s := &Seller{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Role, &s.Active, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSellerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query seller: %w", err)
	}

	return s, nil
}

func (r *Repository) CreateSeller(ctx context.Context, s *Seller) error {
	query := `
		INSERT INTO sellers (id, name, email, phone, role, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
	`

	_, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.Email, s.Phone, s.Role, s.Active)
	if err != nil {
		return fmt.Errorf("failed to insert seller: %w", err)
	}
	return nil
}

func (r *Repository) UpdateSeller(ctx context.Context, s *Seller) error {
	query := `
		UPDATE sellers
		SET name = $1, email = $2, phone = $3, role = $4, active = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query, s.Name, s.Email, s.Phone, s.Role, s.Active, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update seller: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrSellerNotFound
	}
	return nil
}

func (r *Repository) DeleteSeller(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sellers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete seller: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrSellerNotFound
	}
	return nil
}
