package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nestegg/internal/errors"
	"nestegg/internal/ledger"
)

// maxImportSize bounds the import payload at 10 MiB. A personal ledger
// export is a few kilobytes; anything near the cap is not one.
const maxImportSize = 10 << 20

// DataHandler handles export and import of the full ledger state.
type DataHandler struct {
	store *ledger.Store
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(store *ledger.Store) *DataHandler {
	return &DataHandler{store: store}
}

// Export downloads the full ledger as a portable JSON document
// @Summary     Export ledger
// @Description Download the full ledger state as a versioned JSON document
// @Tags        data
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} ledger.Document "Export document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /data/export [get]
func (h *DataHandler) Export(c *gin.Context) {
	doc := h.store.Export()
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", ledger.ExportFilename(doc.ExportedAt)))
	c.JSON(http.StatusOK, doc)
}

// Import replaces the ledger state from an uploaded export document
// @Summary     Import ledger
// @Description Replace the ledger wholesale from an export document; rejected entirely if any investment is invalid
// @Tags        data
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ledger.Document true "Export document"
// @Success     200 {object} map[string]int "Imported counts"
// @Failure     400 {object} ErrorResponse "Parse or format error"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "One or more investments invalid"
// @Router      /data/import [post]
func (h *DataHandler) Import(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrImportParse, err))
		return
	}

	if err := h.store.Import(data); err != nil {
		var valErr *ledger.ImportValidationError
		if errors.As(err, &valErr) {
			c.JSON(apperrors.ErrImportRejected.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrImportRejected.Code,
					"message": apperrors.ErrImportRejected.Message,
				},
				"invalid_investments": valErr.Issues,
			})
			return
		}
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investments":  len(h.store.Investments()),
		"transactions": len(h.store.Transactions()),
	})
}
