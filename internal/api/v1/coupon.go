package v1

import (
	"net/http"

	"github.com/flexprice/pricing/internal/api/dto"
	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/flexprice/pricing/internal/logger"
	"github.com/flexprice/pricing/internal/service"
	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	pricingService service.PricingService
	logger         *logger.Logger
}

func NewCouponHandler(pricingService service.PricingService, logger *logger.Logger) *CouponHandler {
	return &CouponHandler{
		pricingService: pricingService,
		logger:         logger,
	}
}

// CheckCoupon handles POST /v1/coupons/check.
func (h *CouponHandler) CheckCoupon(c *gin.Context) {
	var req dto.CheckCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.pricingService.CheckCoupon(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
