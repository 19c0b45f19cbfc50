package handler

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/osmanylima/osmany-lima/internal/currency"
	"github.com/osmanylima/osmany-lima/internal/model"
	"github.com/osmanylima/osmany-lima/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Numeric segments accept a leading minus so negative values reach validation
// and fail as invalid parameters rather than as an unmatched route.
var exchangePattern = regexp.MustCompile(`^/exchange/(-?[0-9.]+)/([A-Z]{3})/([A-Z]{3})/(-?[0-9.]+)$`)

type CurrencyHandler struct {
	currencyService     service.CurrencyServiceInterface
	logger              *zap.Logger
	routeMismatchStatus int
}

// NewCurrencyHandler builds the exchange handler. legacyMismatchStatus answers
// unmatched routes with 400 instead of 404.
func NewCurrencyHandler(currencyService service.CurrencyServiceInterface, logger *zap.Logger, legacyMismatchStatus bool) *CurrencyHandler {
	status := currency.ErrRouteMismatch.Status
	if legacyMismatchStatus {
		status = http.StatusBadRequest
	}
	return &CurrencyHandler{
		currencyService:     currencyService,
		logger:              logger,
		routeMismatchStatus: status,
	}
}

// Exchange serves GET /exchange/{amount}/{from}/{to}/{rate}.
func (h *CurrencyHandler) Exchange(c *gin.Context) {
	m := exchangePattern.FindStringSubmatch(c.Request.URL.Path)
	if m == nil {
		h.abort(c, currency.ErrRouteMismatch)
		return
	}

	result, err := h.currencyService.Convert(c.Request.Context(), m[1], m[2], m[3], m[4])
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ExchangeResponse{
		ConvertedAmount: result.Amount.InexactFloat64(),
		CurrencySymbol:  result.Symbol,
	})
}

// NotFound answers every route that is not registered.
func (h *CurrencyHandler) NotFound(c *gin.Context) {
	h.abort(c, currency.ErrRouteMismatch)
}

func (h *CurrencyHandler) abort(c *gin.Context, err error) {
	var exErr *currency.ExchangeError
	if !errors.As(err, &exErr) {
		h.logger.Error("Unexpected conversion failure",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
			Error: model.InternalErrorMessage,
		})
		return
	}

	status := exErr.Status
	if exErr == currency.ErrRouteMismatch {
		status = h.routeMismatchStatus
	}
	c.AbortWithStatusJSON(status, model.ErrorResponse{Error: exErr.Message})
}
