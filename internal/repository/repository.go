package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/svcerr"
)

const probeQuery = "SELECT 1"

// Repository provides database operations
type Repository struct {
	db         *sql.DB
	probeQuery string
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, probeQuery: probeQuery}
}

// List returns every stored transaction
func (r *Repository) List(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT id, description, amount, type, created_at
		FROM transactions
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.Type, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// Insert stores a transaction and fills it with the row as persisted
func (r *Repository) Insert(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (description, amount, type, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, description, amount, type, created_at`
	err := r.db.QueryRowContext(ctx, query, t.Description, t.Amount, t.Type, t.CreatedAt).
		Scan(&t.ID, &t.Description, &t.Amount, &t.Type, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return nil
}

// FindByID retrieves a transaction by id. It returns nil, nil when absent.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Transaction, error) {
	t := &models.Transaction{}
	query := `
		SELECT id, description, amount, type, created_at
		FROM transactions
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Description, &t.Amount, &t.Type, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}

// Probe checks connectivity and runs a trivial query. A failed connection is
// reported as svcerr.ErrDatabaseUnreachable; a failed query is returned as is.
func (r *Repository) Probe(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", svcerr.ErrDatabaseUnreachable, err)
	}
	if _, err := r.db.ExecContext(ctx, r.probeQuery); err != nil {
		return err
	}
	return nil
}
