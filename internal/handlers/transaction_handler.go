package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/ledger"
	"nestegg/internal/pagination"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	store *ledger.Store
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(store *ledger.Store) *TransactionHandler {
	return &TransactionHandler{store: store}
}

// RecordTransactionRequest represents the request payload for recording a
// deposit or withdrawal.
type RecordTransactionRequest struct {
	InvestmentID string                 `json:"investmentId" binding:"required,uuid"`
	Amount       float64                `json:"amount" binding:"gte=0"`
	Type         ledger.TransactionType `json:"type" binding:"required,transaction_type"`
	Description  string                 `json:"description" binding:"max=500"`
}

// RecordTransaction appends a deposit or withdrawal to the ledger
// @Summary     Record a transaction
// @Description Record a deposit or withdrawal against an investment
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordTransactionRequest true "Transaction details"
// @Success     201 {object} ledger.Transaction "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) RecordTransaction(c *gin.Context) {
	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.store.RecordTransaction(req.InvestmentID, req.Amount, req.Type, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists all transactions in recording order
// @Summary     List transactions
// @Description List every recorded transaction across all investments
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[ledger.Transaction] "Transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	c.JSON(http.StatusOK, pagination.Slice(h.store.Transactions(), page))
}
