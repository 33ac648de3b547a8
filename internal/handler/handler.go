package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/schema"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	ServiceName    = "finance-api"
	ServiceVersion = "1.0.0"
)

type TransactionService interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, t *models.Transaction) error
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)
	CheckDatabase(ctx context.Context) error
}

// Handler carries every dependency the HTTP endpoints need.
type Handler struct {
	svc       TransactionService
	readiness *schema.Readiness
	log       *logrus.Logger
	now       func() time.Time
}

func NewHandler(svc TransactionService, readiness *schema.Readiness, log *logrus.Logger) *Handler {
	return &Handler{
		svc:       svc,
		readiness: readiness,
		log:       log,
		now:       time.Now,
	}
}

// RegisterRoutes binds the health and transaction endpoints to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/health/db", h.DatabaseHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/transactions", h.ListTransactions).Methods(http.MethodGet)
	api.HandleFunc("/transactions", h.CreateTransaction).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{id:[0-9]+}", h.GetTransaction).Methods(http.MethodGet)
}
