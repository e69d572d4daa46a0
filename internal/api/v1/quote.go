package v1

import (
	"net/http"

	"github.com/flexprice/pricing/internal/api/dto"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/flexprice/pricing/internal/service"
	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	pricingService service.PricingService
	logger         *logger.Logger
}

func NewQuoteHandler(pricingService service.PricingService, logger *logger.Logger) *QuoteHandler {
	return &QuoteHandler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// CreateQuote handles POST /v1/quotes.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.pricingService.Quote(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateQuoteBatch handles POST /v1/quotes/batch.
func (h *QuoteHandler) CreateQuoteBatch(c *gin.Context) {
	var req dto.BatchQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.pricingService.QuoteBatch(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
