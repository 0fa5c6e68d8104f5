package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/salonpanel/salon-backend-go/internal/domain/transaction"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
)

type TransactionHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type transactionHandlerImpl struct {
	transactionService transaction.TransactionService
	loc                *time.Location
}

func NewTransactionHandler(transactionService transaction.TransactionService, loc *time.Location) TransactionHandler {
	return &transactionHandlerImpl{transactionService: transactionService, loc: loc}
}

func (h *transactionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := timeRangeParams(r, h.loc)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.transactionService.ListTransactions(r.Context(), transaction.TransactionFilter{
		From:            from,
		To:              to,
		IncludeCanceled: getBoolQueryParam(r, "include_canceled", true),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *transactionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req transaction.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction recorded", result)
}

func (h *transactionHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	result, err := h.transactionService.CancelTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction canceled", result)
}
