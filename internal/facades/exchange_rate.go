package facades

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/logger"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
)

// ExchangeRatesGRPCFacade reads rate tables from the exchanger service over gRPC.
type ExchangeRatesGRPCFacade struct {
	client pb.ExchangeServiceClient
	base   string
}

// NewExchangeRatesGRPCFacade creates a new facade with a gRPC client.
// Rates returned by the exchanger are quoted in base.
func NewExchangeRatesGRPCFacade(client pb.ExchangeServiceClient, base string) *ExchangeRatesGRPCFacade {
	return &ExchangeRatesGRPCFacade{client: client, base: models.NormalizeCurrency(base)}
}

// GetRates fetches all exchange rates and returns them as a table sorted by code
func (f *ExchangeRatesGRPCFacade) GetRates(ctx context.Context) (*models.RateTable, error) {
	resp, err := f.client.GetExchangeRates(ctx, &pb.Empty{})
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rates via gRPC", "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRateFetch, err)
	}
	if len(resp.GetRates()) == 0 {
		return nil, fmt.Errorf("%w: empty rate table", apperrors.ErrRateFetch)
	}

	codes := make([]string, 0, len(resp.GetRates()))
	for code := range resp.GetRates() {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	table := &models.RateTable{
		Base:      f.base,
		Rates:     make([]models.Rate, 0, len(codes)),
		FetchedAt: time.Now().UTC(),
	}
	for _, code := range codes {
		table.Rates = append(table.Rates, models.Rate{
			Code: models.NormalizeCurrency(code),
			Mid:  decimal.NewFromFloat32(resp.GetRates()[code]),
		})
	}
	return table, nil
}
