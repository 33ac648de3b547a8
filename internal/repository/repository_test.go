package repository

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/schema"
	"github.com/Dan9191/finance-service/internal/svcerr"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDB    *sql.DB
	testDBURL string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := startPostgres(ctx)
	if err != nil {
		log.Printf("postgres container unavailable, integration tests will be skipped: %v", err)
		os.Exit(m.Run())
	}

	dbURL, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %v", err)
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Could not open database connection: %v", err)
	}

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	if err := schema.Migrate(ctx, db, quiet); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	testDB = db
	testDBURL = dbURL

	code := m.Run()

	db.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		log.Printf("Error terminating container: %v", err)
	}
	os.Exit(code)
}

// startPostgres also guards against the panic testcontainers raises when no
// Docker host can be found.
func startPostgres(ctx context.Context) (c *postgres.PostgresContainer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	return postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("financedb"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
}

func requireDB(t *testing.T) *Repository {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres container not available")
	}

	_, err := testDB.Exec("TRUNCATE transactions RESTART IDENTITY")
	require.NoError(t, err)

	return NewRepository(testDB)
}

func newTransaction(description, amount, txType string) *models.Transaction {
	return &models.Transaction{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Type:        txType,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestRepositoryInsertAndFind(t *testing.T) {
	repo := requireDB(t)
	ctx := context.Background()

	tr := newTransaction("coffee", "3.5", models.TypeDebit)
	createdAt := tr.CreatedAt

	require.NoError(t, repo.Insert(ctx, tr))
	assert.Equal(t, int64(1), tr.ID)
	assert.True(t, createdAt.Equal(tr.CreatedAt))
	assert.Equal(t, time.UTC, tr.CreatedAt.Location())

	found, err := repo.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, tr.ID, found.ID)
	assert.Equal(t, tr.Description, found.Description)
	assert.Equal(t, tr.Type, found.Type)
	assert.True(t, tr.Amount.Equal(found.Amount))
	assert.True(t, tr.CreatedAt.Equal(found.CreatedAt))
}

func TestRepositoryInsertReturnsStoredAmount(t *testing.T) {
	repo := requireDB(t)

	tr := newTransaction("rounding", "10.005", models.TypeCredit)
	require.NoError(t, repo.Insert(context.Background(), tr))

	assert.True(t, decimal.RequireFromString("10.01").Equal(tr.Amount), "got %s", tr.Amount)
}

func TestRepositoryFindByIDMissing(t *testing.T) {
	repo := requireDB(t)

	found, err := repo.FindByID(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepositoryListGrowsByOne(t *testing.T) {
	repo := requireDB(t)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Len(t, list, 0)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, newTransaction(fmt.Sprintf("item %d", i), "1.25", models.TypeDebit)))

		list, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, i+1)
	}

	for i, tr := range list {
		assert.Equal(t, int64(i+1), tr.ID)
	}
}

func TestRepositoryAcceptsAnyType(t *testing.T) {
	repo := requireDB(t)
	ctx := context.Background()

	tr := newTransaction("", "-20", "refund")
	require.NoError(t, repo.Insert(ctx, tr))

	found, err := repo.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "refund", found.Type)
	assert.True(t, decimal.NewFromInt(-20).Equal(found.Amount))
}

func TestRepositoryProbe(t *testing.T) {
	repo := requireDB(t)
	ctx := context.Background()

	assert.NoError(t, repo.Probe(ctx))

	closed, err := sql.Open("postgres", testDBURL)
	require.NoError(t, err)
	require.NoError(t, closed.Close())

	err = NewRepository(closed).Probe(ctx)
	assert.Error(t, err)
	assert.True(t, svcerr.IsUnreachable(err))
}

func TestRepositoryProbeQueryFailure(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	_, err := testDB.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT FROM pg_roles WHERE rolname = 'health_reader') THEN
				CREATE ROLE health_reader LOGIN PASSWORD 'health_reader';
			END IF;
		END $$`)
	require.NoError(t, err)
	_, err = testDB.ExecContext(ctx, "REVOKE ALL ON transactions FROM health_reader")
	require.NoError(t, err)

	cfg, err := pq.ParseURL(testDBURL)
	require.NoError(t, err)
	restricted, err := sql.Open("postgres", cfg+" user=health_reader password=health_reader")
	require.NoError(t, err)
	defer restricted.Close()

	repo := NewRepository(restricted)
	require.NoError(t, repo.Probe(ctx), "trivial query needs no privileges")

	repo.probeQuery = "SELECT count(*) FROM transactions"
	err = repo.Probe(ctx)

	require.Error(t, err)
	assert.False(t, svcerr.IsUnreachable(err))
	assert.Contains(t, err.Error(), "permission denied")
}

func TestRepositoryProbeUnreachableHost(t *testing.T) {
	db, err := sql.Open("postgres", "host=127.0.0.1 port=1 user=nobody dbname=none sslmode=disable connect_timeout=1")
	require.NoError(t, err)
	defer db.Close()

	err = NewRepository(db).Probe(context.Background())
	assert.True(t, svcerr.IsUnreachable(err))
}
