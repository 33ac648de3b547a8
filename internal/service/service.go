package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/models/events"
	"github.com/Dan9191/finance-service/internal/svcerr"
	"github.com/sirupsen/logrus"
)

// PublishTimeout bounds how long a create request waits on the event publisher.
const PublishTimeout = 2 * time.Second

type Repository interface {
	List(ctx context.Context) ([]models.Transaction, error)
	Insert(ctx context.Context, t *models.Transaction) error
	FindByID(ctx context.Context, id int64) (*models.Transaction, error)
	Probe(ctx context.Context) error
}

type Publisher interface {
	Publish(ctx context.Context, event events.TransactionCreated) error
}

// Service handles transaction use cases
type Service struct {
	repo      Repository
	publisher Publisher
	log       *logrus.Logger
	now       func() time.Time

	publishTimeout time.Duration
}

// NewService initializes a new service. publisher may be nil, in which case
// no events are emitted.
func NewService(repo Repository, publisher Publisher, log *logrus.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,

		publishTimeout: PublishTimeout,
	}
}

// ListTransactions returns all stored transactions, never nil
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// CreateTransaction stamps the creation time, discarding whatever the caller
// supplied, and persists the transaction. Postgres keeps microseconds, so the
// stamp is truncated to make the stored row identical to the returned one.
func (s *Service) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	t.ID = 0
	t.CreatedAt = s.now().UTC().Truncate(time.Microsecond)

	if err := s.repo.Insert(ctx, t); err != nil {
		return err
	}
	s.log.WithField("transaction_id", t.ID).Info("Transaction created")

	if s.publisher != nil {
		event := events.TransactionCreated{
			TransactionID: t.ID,
			Description:   t.Description,
			Amount:        t.Amount,
			Type:          t.Type,
			OccurredAt:    t.CreatedAt,
		}
		s.publish(ctx, event)
	}
	return nil
}

// publish is best effort: the row is already committed, so a slow or failing
// broker must not hold up or fail the response.
func (s *Service) publish(ctx context.Context, event events.TransactionCreated) {
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithError(err).WithField("transaction_id", event.TransactionID).Warn("Failed to publish transaction event")
	}
}

// GetTransaction returns the transaction with the given id or svcerr.ErrNotFound
func (s *Service) GetTransaction(ctx context.Context, id int64) (*models.Transaction, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("transaction %d: %w", id, svcerr.ErrNotFound)
	}
	return t, nil
}

// CheckDatabase probes database connectivity
func (s *Service) CheckDatabase(ctx context.Context) error {
	return s.repo.Probe(ctx)
}
