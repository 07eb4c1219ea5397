package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/logger"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

//go:generate mockgen -source=rates.go -destination=rates_mock.go -package=services

// RateTableCache caches the display rate table.
type RateTableCache interface {
	GetRateTable(ctx context.Context, base string) (*models.RateTable, error)
	SetRateTable(ctx context.Context, table *models.RateTable) error
}

// RatesService serves the rate table shown to clients.
type RatesService struct {
	source RateSource
	cache   RateTableCache
	base    string
	timeout time.Duration
}

// NewRatesService creates a new RatesService. cache may be nil. A
// non-positive timeout falls back to the ledger's rate timeout.
func NewRatesService(source RateSource, cache RateTableCache, base string, timeout time.Duration) *RatesService {
	if base = models.NormalizeCurrency(base); base == "" {
		base = models.DefaultBaseCurrency
	}
	if timeout <= 0 {
		timeout = defaultRateTimeout
	}
	return &RatesService{
		source:  source,
		cache:   cache,
		base:    base,
		timeout: timeout,
	}
}

// GetRates returns the cached table if there is one, otherwise fetches
// and caches a fresh one. Cache failures are logged and ignored.
func (svc *RatesService) GetRates(ctx context.Context) (*models.RateTable, error) {
	if svc.cache != nil {
		table, err := svc.cache.GetRateTable(ctx, svc.base)
		if err == nil && table != nil {
			return table, nil
		}
		if err != nil {
			logger.Log.Debugw("rate table cache lookup failed", "base", svc.base, "error", err)
		}
	}

	table, err := svc.fetch(ctx)
	if err != nil {
		logger.Log.Errorw("failed to get exchange rates", "base", svc.base, "error", err)
		return nil, err
	}

	if svc.cache != nil {
		if err := svc.cache.SetRateTable(ctx, table); err != nil {
			logger.Log.Errorw("failed to cache exchange rates", "base", svc.base, "error", err)
		}
	}

	return table, nil
}

func (svc *RatesService) fetch(ctx context.Context) (*models.RateTable, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.timeout)
	defer cancel()

	table, err := svc.source.GetRates(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateFetch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", apperrors.ErrRateFetch, err)
	}
	if err := checkBase(table, svc.base); err != nil {
		return nil, err
	}
	return table, nil
}

// checkBase rejects a table quoted in a currency other than base.
func checkBase(table *models.RateTable, base string) error {
	if table == nil {
		return fmt.Errorf("%w: empty rate table", apperrors.ErrRateFetch)
	}
	if got := models.NormalizeCurrency(table.Base); got != base {
		return fmt.Errorf("%w: rates quoted in %q, ledger base is %q", apperrors.ErrRateFetch, got, base)
	}
	return nil
}
