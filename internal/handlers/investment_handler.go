package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/ledger"
	"nestegg/internal/pagination"
)

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	store *ledger.Store
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(store *ledger.Store) *InvestmentHandler {
	return &InvestmentHandler{store: store}
}

// CreateInvestmentRequest is the draft payload. Fields are deliberately
// unconstrained at the binding layer: domain validation reports every
// failing field at once, which binding tags would short-circuit.
type CreateInvestmentRequest struct {
	Name           string                `json:"name"`
	Type           ledger.InvestmentType `json:"type"`
	InitialBalance *float64              `json:"initialBalance"`
	Description    string                `json:"description"`
}

// InvestmentFilter holds optional list filters.
type InvestmentFilter struct {
	Type   string `form:"type" binding:"omitempty,investment_type"`
	Search string `form:"q"`
}

// ValidationErrorResponse reports a rejected draft with per-field messages.
type ValidationErrorResponse struct {
	Error  ErrorDetail       `json:"error"`
	Errors map[string]string `json:"errors"`
}

// CreateInvestment handles the creation of a new investment
// @Summary     Create an investment
// @Description Validate an investment draft and add it to the ledger
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment draft"
// @Success     201 {object} ledger.Investment "Investment created"
// @Failure     400 {object} ValidationErrorResponse "Draft failed validation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	draft := ledger.Draft{
		Name:           req.Name,
		Type:           req.Type,
		InitialBalance: req.InitialBalance,
		Description:    req.Description,
	}

	if result := ledger.ValidateInvestment(draft); !result.IsValid {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    apperrors.ErrInvestmentInvalid.Code,
				"message": apperrors.ErrInvestmentInvalid.Message,
			},
			"errors": result.Errors,
		})
		return
	}

	investment, err := h.store.AddInvestment(draft)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments lists investments with optional type and name filters
// @Summary     List investments
// @Description List investments, optionally filtered by type and name search
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Investment type filter"
// @Param       q query string false "Case-insensitive name search"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[ledger.Investment] "Investments"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter InvestmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investments := h.store.Investments()
	if filter.Type != "" || filter.Search != "" {
		filtered := investments[:0]
		search := strings.ToLower(filter.Search)
		for _, inv := range investments {
			if filter.Type != "" && string(inv.Type) != filter.Type {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(inv.Name), search) {
				continue
			}
			filtered = append(filtered, inv)
		}
		investments = filtered
	}

	c.JSON(http.StatusOK, pagination.Slice(investments, page))
}

// GetInvestment returns a single investment
// @Summary     Get an investment
// @Description Get one investment by id
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} ledger.Investment "Investment"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	investment, err := h.store.Investment(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": investment})
}

// GetInvestmentTransactions lists the transactions of one investment
// @Summary     List investment transactions
// @Description List an investment's transactions in recording order
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[ledger.Transaction] "Transactions"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Router      /investments/{id}/transactions [get]
func (h *InvestmentHandler) GetInvestmentTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactions, err := h.store.InvestmentTransactions(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.Slice(transactions, page))
}

// GetInvestmentTypes lists the closed set of investment types
// @Summary     List investment types
// @Description List the valid investment type values
// @Tags        investments
// @Produce     json
// @Success     200 {array} string "Types"
// @Router      /investments/types [get]
func (h *InvestmentHandler) GetInvestmentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": ledger.InvestmentTypes})
}
