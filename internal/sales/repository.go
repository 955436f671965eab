package sales

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Jeffrey-hendell/shaypos/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrSaleNotFound  = errors.New("sale not found")
	ErrDuplicateSale = errors.New("sale already recorded for this submission")
	ErrEventNotFound = errors.New("outbox event not found")
)

const saleCompletedEventType = "sale.completed"

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// OutboxEvent is one row of the transactional outbox, published to Kafka by
// the outbox poller.
type OutboxEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

type SaleRepository interface {
	CreateSale(ctx context.Context, sale *domain.Sale) error
	GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	GetSaleBySubmissionID(ctx context.Context, submissionID string) (*domain.Sale, error)
	ListSales(ctx context.Context, limit int) ([]*domain.Sale, error)
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
	Close() error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "sales_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

// CreateSale stores the sale and its outbox event in one transaction, so a
// recorded sale always gets published and an unpublished sale never exists.
func (r *Repository) CreateSale(ctx context.Context, sale *domain.Sale) error {
	itemsJSON, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal sale items: %w", err)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"sale_id":      sale.ID,
		"items":        sale.Items,
		"total_amount": sale.TotalAmount,
		"completed_at": sale.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	saleQuery := `INSERT INTO sales (id, submission_id, customer_name, customer_email, customer_phone,
	                                 payment_method, discount_percent, notes, total_amount, items, created_at)
	              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, insertErr := tx.ExecContext(ctx, saleQuery,
		sale.ID,
		sale.SubmissionID,
		sale.CustomerName,
		sale.CustomerEmail,
		sale.CustomerPhone,
		sale.PaymentMethod,
		sale.DiscountPercent,
		sale.Notes,
		sale.TotalAmount,
		itemsJSON,
		sale.CreatedAt)

	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateSale
		}
		return fmt.Errorf("insert sale: %w", insertErr)
	}

	outboxQuery := `INSERT INTO sales_outbox (aggregate_id, event_type, payload)
	                VALUES ($1, $2, $3)`

	if _, err := tx.ExecContext(ctx, outboxQuery, sale.ID.String(), saleCompletedEventType, payload); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sale: %w", err)
	}
	return nil
}

const saleColumns = `id, submission_id, customer_name, customer_email, customer_phone,
                     payment_method, discount_percent, notes, total_amount, items, created_at`

func (r *Repository) scanSale(row interface{ Scan(...interface{}) error }) (*domain.Sale, error) {
	var sale domain.Sale
	var itemsJSON []byte
	err := row.Scan(
		&sale.ID,
		&sale.SubmissionID,
		&sale.CustomerName,
		&sale.CustomerEmail,
		&sale.CustomerPhone,
		&sale.PaymentMethod,
		&sale.DiscountPercent,
		&sale.Notes,
		&sale.TotalAmount,
		&itemsJSON,
		&sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &sale.Items); err != nil {
		return nil, fmt.Errorf("unmarshal sale items: %w", err)
	}
	return &sale, nil
}

func (r *Repository) GetSale(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`

	sale, err := r.scanSale(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query sale by id: %w", err)
	}
	return sale, nil
}

func (r *Repository) GetSaleBySubmissionID(ctx context.Context, submissionID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE submission_id = $1`

	sale, err := r.scanSale(r.db.QueryRowContext(ctx, query, submissionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query sale by submission id: %w", err)
	}
	return sale, nil
}

func (r *Repository) ListSales(ctx context.Context, limit int) ([]*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		sale, err := r.scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sales, nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, created_at
	          FROM sales_outbox WHERE NOT processed ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		event := &OutboxEvent{}
		if err := rows.Scan(&event.ID, &event.AggregateID, &event.EventType, &event.Payload, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE sales_outbox SET processed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
