package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/svcerr"
	"github.com/gorilla/mux"
)

// ListTransactions godoc
// @Summary List transactions
// @Description Returns every stored transaction, unpaginated
// @Tags transactions
// @Produce json
// @Success 200 {array} models.Transaction
// @Failure 500 {string} string "Internal server error"
// @Router /api/transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.svc.ListTransactions(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	h.writeJSON(w, r, http.StatusOK, transactions)
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Stores a transaction. createdAt is always set by the server; type defaults to debit.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body models.Transaction true "Transaction"
// @Success 201 {object} models.Transaction
// @Header 201 {string} Location "/api/transactions/{id}"
// @Failure 400 {string} string "Invalid request body"
// @Failure 500 {string} string "Internal server error"
// @Router /api/transactions [post]
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	t := models.NewTransaction()
	if err := json.NewDecoder(r.Body).Decode(t); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.CreateTransaction(r.Context(), t); err != nil {
		h.internalError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/transactions/%d", t.ID))
	h.writeJSON(w, r, http.StatusCreated, t)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 "Transaction not found"
// @Failure 500 {string} string "Internal server error"
// @Router /api/transactions/{id} [get]
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		// digits only by route, so this is an overflow
		w.WriteHeader(http.StatusNotFound)
		return
	}

	t, err := h.svc.GetTransaction(r.Context(), id)
	if svcerr.IsNotFound(err) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, t)
}
