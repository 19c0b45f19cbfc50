package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osmanylima/osmany-lima/internal/currency"
	"github.com/osmanylima/osmany-lima/internal/metrics"

	"go.uber.org/zap"
)

// CurrencyServiceInterface is what the HTTP layer needs from the service.
type CurrencyServiceInterface interface {
	Convert(ctx context.Context, amount, from, to, rate string) (currency.Result, error)
}

type CurrencyService struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewCurrencyService(logger *zap.Logger, m *metrics.Metrics) *CurrencyService {
	return &CurrencyService{
		logger:  logger,
		metrics: m,
	}
}

// Convert parses the raw path segments, validates them and applies the pair
// rule. Returned errors wrap one of the currency sentinels.
func (s *CurrencyService) Convert(ctx context.Context, amount, from, to, rate string) (currency.Result, error) {
	req := currency.ParseRequest(amount, from, to, rate)

	if err := req.Validate(); err != nil {
		s.reject(req, err)
		return currency.Result{}, fmt.Errorf("validate %s->%s: %w", from, to, err)
	}

	result, err := currency.Convert(req.Amount, req.From, req.To, req.Rate)
	if err != nil {
		s.reject(req, err)
		return currency.Result{}, fmt.Errorf("convert %s->%s: %w", from, to, err)
	}

	s.metrics.ObserveConversion(metricLabel(req.From), metricLabel(req.To), "ok")
	s.logger.Info("Currency conversion completed",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("amount", req.Amount.String()),
		zap.String("rate", req.Rate.String()),
		zap.String("result", result.Amount.String()),
	)

	return result, nil
}

func (s *CurrencyService) reject(req currency.Request, err error) {
	outcome := "error"
	var exErr *currency.ExchangeError
	if errors.As(err, &exErr) {
		outcome = strings.ToLower(string(exErr.Kind))
	}
	s.metrics.ObserveConversion(metricLabel(req.From), metricLabel(req.To), outcome)
	s.logger.Debug("Conversion rejected",
		zap.String("from", string(req.From)),
		zap.String("to", string(req.To)),
		zap.String("amount", req.Amount.String()),
		zap.String("rate", req.Rate.String()),
		zap.Error(err),
	)
}

// metricLabel keeps the currency labels bounded: any code outside the
// supported set is counted as "other".
func metricLabel(code currency.Code) string {
	if !currency.IsSupported(code) {
		return "other"
	}
	return string(code)
}

var _ CurrencyServiceInterface = (*CurrencyService)(nil)
