package facades

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/logger"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

const (
	DefaultNBPBaseURL = "https://api.nbp.pl/api"
	DefaultNBPTable   = "A"

	nbpMaxAttempts = 3
)

// nbpTable is one element of the NBP exchangerates/tables response.
type nbpTable struct {
	Table         string    `json:"table"`
	No            string    `json:"no"`
	EffectiveDate string    `json:"effectiveDate"`
	Rates         []nbpRate `json:"rates"`
}

type nbpRate struct {
	Currency string          `json:"currency"`
	Code     string          `json:"code"`
	Mid      decimal.Decimal `json:"mid"`
}

// NBPRatesFacade reads mid rates (PLN per unit) from the National Bank of
// Poland public API.
type NBPRatesFacade struct {
	client    *resty.Client
	table     string
	limiter   *rate.Limiter
	retryWait time.Duration
}

// NewNBPRatesFacade creates a client for baseURL limited to rps requests
// per second with the given burst.
func NewNBPRatesFacade(baseURL, table string, rps float64, burst int) *NBPRatesFacade {
	if baseURL == "" {
		baseURL = DefaultNBPBaseURL
	}
	if table == "" {
		table = DefaultNBPTable
	}
	return &NBPRatesFacade{
		client: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json"),
		table:     table,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		retryWait: 500 * time.Millisecond,
	}
}

// GetRates fetches the current rate table.
func (f *NBPRatesFacade) GetRates(ctx context.Context) (*models.RateTable, error) {
	var tables []nbpTable

	req := f.client.R().
		SetContext(ctx).
		SetQueryParam("format", "json").
		SetResult(&tables)

	if _, err := f.doRequest(ctx, "/exchangerates/tables/"+f.table, req); err != nil {
		logger.Log.Errorw("failed to fetch NBP rate table", "table", f.table, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRateFetch, err)
	}
	if len(tables) == 0 || len(tables[0].Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rate table", apperrors.ErrRateFetch)
	}

	t := tables[0]
	out := &models.RateTable{
		Base:          models.DefaultBaseCurrency,
		Table:         t.Table,
		EffectiveDate: t.EffectiveDate,
		Rates:         make([]models.Rate, 0, len(t.Rates)),
		FetchedAt:     time.Now().UTC(),
	}
	for _, r := range t.Rates {
		out.Rates = append(out.Rates, models.Rate{
			Code:     models.NormalizeCurrency(r.Code),
			Currency: r.Currency,
			Mid:      r.Mid,
		})
	}
	return out, nil
}

// doRequest executes a GET with rate limiting and bounded retries on
// transport errors, 429 and 5xx.
func (f *NBPRatesFacade) doRequest(ctx context.Context, path string, req *resty.Request) (*resty.Response, error) {
	var (
		resp *resty.Response
		err  error
	)

	for attempt := 0; attempt < nbpMaxAttempts; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		resp, err = req.Get(path)
		if err == nil && !resp.IsError() {
			return resp, nil
		}

		retry := false
		wait := f.retryWait * time.Duration(1<<attempt)

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			retry = true
		} else {
			status := resp.StatusCode()
			switch {
			case status == http.StatusTooManyRequests:
				retry = true
				if seconds, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil {
					wait = time.Duration(seconds) * time.Second
				}
			case status >= http.StatusInternalServerError:
				retry = true
			}
			err = fmt.Errorf("unexpected status %s", resp.Status())
		}

		if !retry {
			return nil, err
		}

		logger.Log.Warnw("rate request failed, retrying",
			"attempt", attempt+1,
			"retry_after", wait,
			"error", err,
		)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", nbpMaxAttempts, err)
}
