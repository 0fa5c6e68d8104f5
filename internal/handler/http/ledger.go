package http

import (
	"net/http"

	"github.com/salonpanel/salon-backend-go/internal/domain/ledger"
	"github.com/salonpanel/salon-backend-go/internal/handler/http/response"
)

type LedgerHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	Transactions(w http.ResponseWriter, r *http.Request)
	Salaries(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.LedgerService
}

func NewLedgerHandler(ledgerService ledger.LedgerService) LedgerHandler {
	return &ledgerHandlerImpl{ledgerService: ledgerService}
}

func (h *ledgerHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.Monthly(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Transactions expects from and to as YYYY-MM-DD; both days are included.
func (h *ledgerHandlerImpl) Transactions(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.TransactionsInRange(r.Context(), ledger.RangeRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ledgerHandlerImpl) Salaries(w http.ResponseWriter, r *http.Request) {
	result, err := h.ledgerService.Salaries(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
