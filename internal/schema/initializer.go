package schema

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const attemptTimeout = 30 * time.Second

// Initializer runs schema creation at startup and, when that fails, keeps
// retrying on a cron schedule until it succeeds.
type Initializer struct {
	apply     func(ctx context.Context) error
	readiness *Readiness
	log       *logrus.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
}

// NewInitializer returns an Initializer that applies the embedded migrations to db.
func NewInitializer(db *sql.DB, log *logrus.Logger) *Initializer {
	return newInitializer(func(ctx context.Context) error {
		return Migrate(ctx, db, log)
	}, log)
}

func newInitializer(apply func(ctx context.Context) error, log *logrus.Logger) *Initializer {
	return &Initializer{
		apply:     apply,
		readiness: NewReadiness(),
		log:       log,
	}
}

func (i *Initializer) Readiness() *Readiness {
	return i.readiness
}

// Run makes one initialization attempt. A failure is logged and recorded as
// degraded readiness but is not returned: startup continues either way.
func (i *Initializer) Run(ctx context.Context) *Readiness {
	i.attempt(ctx)
	return i.readiness
}

func (i *Initializer) attempt(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	if err := i.apply(ctx); err != nil {
		i.readiness.MarkDegraded(err)
		i.log.WithError(err).Warn("Database schema initialization pending")
		return false
	}

	i.readiness.MarkReady()
	i.log.Info("Database schema initialized")
	return true
}

// ScheduleRetries starts a cron job that re-attempts initialization on schedule
// while readiness is degraded. It does nothing if the schema is already ready.
func (i *Initializer) ScheduleRetries(schedule string) error {
	if i.readiness.Ready() {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	c := cron.New(
		cron.WithLogger(cron.PrintfLogger(i.log)),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(i.log))),
	)
	id, err := c.AddFunc(schedule, i.retry)
	if err != nil {
		return fmt.Errorf("invalid schema retry schedule %q: %w", schedule, err)
	}

	i.cron = c
	i.entryID = id
	c.Start()
	i.log.Infof("Schema initialization will be retried on schedule %q", schedule)
	return nil
}

func (i *Initializer) retry() {
	if i.readiness.Ready() || !i.attempt(context.Background()) {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.cron != nil {
		i.cron.Remove(i.entryID)
	}
}

// Stop halts the retry job and waits for a running attempt to finish.
func (i *Initializer) Stop() {
	i.mu.Lock()
	c := i.cron
	i.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}
