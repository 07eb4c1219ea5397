package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/logger"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=services

// Transactor runs fn inside one database transaction carried by ctx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserLedger reads and mutates user balances.
type UserLedger interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)                              // Returns nil if absent
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error)                     // Locks the user row
	AddBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) // Returns the new balance
}

// HoldingStore reads and mutates currency positions.
type HoldingStore interface {
	GetForUpdate(ctx context.Context, userID uuid.UUID, currency string) (*models.Holding, error)
	Increment(ctx context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) (decimal.Decimal, error)
	SetAmount(ctx context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) error
	Delete(ctx context.Context, userID uuid.UUID, currency string) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Holding, error)
}

// TransactionStore appends and lists trade records.
type TransactionStore interface {
	Save(ctx context.Context, txn *models.Transaction) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error)
}

// RateSource returns the current rate table.
type RateSource interface {
	GetRates(ctx context.Context) (*models.RateTable, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = 50 * time.Millisecond
	defaultRateTimeout  = 5 * time.Second
)

// LedgerService implements fund, buy, sell and the ledger read views.
type LedgerService struct {
	tx          Transactor
	users       UserLedger
	holdings    HoldingStore
	txns        TransactionStore
	rates       RateSource
	kafkaWriter KafkaWriter

	base         string
	maxRetries   int
	retryBackoff time.Duration
	rateTimeout  time.Duration
	now          func() time.Time
}

// LedgerOpt configures a LedgerService.
type LedgerOpt func(*LedgerService)

// WithBaseCurrency sets the currency balances are kept in.
func WithBaseCurrency(code string) LedgerOpt {
	return func(s *LedgerService) {
		if code = models.NormalizeCurrency(code); code != "" {
			s.base = code
		}
	}
}

// WithMaxRetries sets how many times a conflicting transaction is retried.
func WithMaxRetries(n int) LedgerOpt {
	return func(s *LedgerService) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithRetryBackoff sets the backoff step between retries.
func WithRetryBackoff(d time.Duration) LedgerOpt {
	return func(s *LedgerService) {
		s.retryBackoff = d
	}
}

// WithRateTimeout bounds each rate fetch.
func WithRateTimeout(d time.Duration) LedgerOpt {
	return func(s *LedgerService) {
		if d > 0 {
			s.rateTimeout = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) LedgerOpt {
	return func(s *LedgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new LedgerService. kafkaWriter may be nil.
func NewLedgerService(
	tx Transactor,
	users UserLedger,
	holdings HoldingStore,
	txns TransactionStore,
	rates RateSource,
	kafkaWriter KafkaWriter,
	opts ...LedgerOpt,
) *LedgerService {
	s := &LedgerService{
		tx:           tx,
		users:        users,
		holdings:     holdings,
		txns:         txns,
		rates:        rates,
		kafkaWriter:  kafkaWriter,
		base:         models.DefaultBaseCurrency,
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
		rateTimeout:  defaultRateTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseCurrency returns the currency balances are kept in.
func (s *LedgerService) BaseCurrency() string {
	return s.base
}

// Fund credits amount of base currency to the user's balance.
func (s *LedgerService) Fund(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !validAmount(amount, s.base) {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}

	var balance decimal.Decimal
	err := s.runInTx(ctx, "fund", func(ctx context.Context) error {
		if _, err := s.lockUser(ctx, userID); err != nil {
			return err
		}

		var err error
		balance, err = s.users.AddBalance(ctx, userID, amount)
		return err
	})
	if err != nil {
		logger.Log.Errorw("failed to fund account", "userID", userID, "amount", amount, "error", err)
		return decimal.Zero, err
	}

	s.publishEvent(ctx, models.LedgerEvent{
		UserID:   userID.String(),
		Type:     models.EventFund,
		Currency: s.base,
		Amount:   amount,
		Value:    amount,
		Balance:  balance,
	})

	return balance, nil
}

// Buy debits the base-currency cost of amount units of code at the live
// mid rate and adds them to the user's holding.
func (s *LedgerService) Buy(ctx context.Context, userID uuid.UUID, code string, amount decimal.Decimal) (decimal.Decimal, error) {
	code = models.NormalizeCurrency(code)
	if !validAmount(amount, code) {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}

	rate, err := s.currentRate(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}

	cost := models.RoundTo(amount.Mul(rate), s.base)
	if !cost.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}

	var (
		balance decimal.Decimal
		txn     *models.Transaction
	)
	err = s.runInTx(ctx, "buy", func(ctx context.Context) error {
		user, err := s.lockUser(ctx, userID)
		if err != nil {
			return err
		}
		if user.Balance.LessThan(cost) {
			return apperrors.ErrInsufficientBalance
		}

		balance, err = s.users.AddBalance(ctx, userID, cost.Neg())
		if err != nil {
			return err
		}
		if _, err := s.holdings.Increment(ctx, userID, code, amount); err != nil {
			return err
		}

		txn = s.newTransaction(userID, code, amount, models.TransactionBuy, rate, cost)
		return s.txns.Save(ctx, txn)
	})
	if err != nil {
		logger.Log.Errorw("failed to buy currency", "userID", userID, "currency", code, "amount", amount, "error", err)
		return decimal.Zero, err
	}

	s.publishEvent(ctx, transactionEvent(txn, balance))

	return balance, nil
}

// Sell removes amount units of code from the user's holding and credits
// their base-currency value at the live mid rate.
func (s *LedgerService) Sell(ctx context.Context, userID uuid.UUID, code string, amount decimal.Decimal) (decimal.Decimal, error) {
	code = models.NormalizeCurrency(code)
	if !validAmount(amount, code) {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}

	rate, err := s.currentRate(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}

	value := models.RoundTo(amount.Mul(rate), s.base)
	if !value.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}

	var (
		balance decimal.Decimal
		txn     *models.Transaction
	)
	err = s.runInTx(ctx, "sell", func(ctx context.Context) error {
		if _, err := s.lockUser(ctx, userID); err != nil {
			return err
		}

		holding, err := s.holdings.GetForUpdate(ctx, userID, code)
		if err != nil {
			return err
		}
		if holding == nil || holding.Amount.LessThan(amount) {
			return apperrors.ErrInsufficientHoldings
		}

		remaining := holding.Amount.Sub(amount)
		if remaining.IsZero() {
			err = s.holdings.Delete(ctx, userID, code)
		} else {
			err = s.holdings.SetAmount(ctx, userID, code, remaining)
		}
		if err != nil {
			return err
		}

		balance, err = s.users.AddBalance(ctx, userID, value)
		if err != nil {
			return err
		}

		txn = s.newTransaction(userID, code, amount, models.TransactionSell, rate, value)
		return s.txns.Save(ctx, txn)
	})
	if err != nil {
		logger.Log.Errorw("failed to sell currency", "userID", userID, "currency", code, "amount", amount, "error", err)
		return decimal.Zero, err
	}

	s.publishEvent(ctx, transactionEvent(txn, balance))

	return balance, nil
}

// History returns the user's transactions, most recent first.
func (s *LedgerService) History(ctx context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	txns, err := s.txns.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
		return nil, apperrors.Classify(err)
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return txns, nil
}

// Holdings returns the user's positions ordered by currency code.
func (s *LedgerService) Holdings(ctx context.Context, userID uuid.UUID) ([]models.Holding, error) {
	holdings, err := s.holdings.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list holdings", "userID", userID, "error", err)
		return nil, apperrors.Classify(err)
	}
	if holdings == nil {
		holdings = []models.Holding{}
	}
	return holdings, nil
}

// Balance returns the user's base-currency balance.
func (s *LedgerService) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "error", err)
		return decimal.Zero, apperrors.Classify(err)
	}
	if user == nil {
		return decimal.Zero, apperrors.ErrUserNotFound
	}
	return user.Balance, nil
}

func validAmount(amount decimal.Decimal, code string) bool {
	return amount.IsPositive() && models.FitsPrecision(amount, code)
}

// lockUser locks the user row for the rest of the transaction.
func (s *LedgerService) lockUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// currentRate fetches the live table and returns the mid rate of code.
// It never touches the display cache.
func (s *LedgerService) currentRate(ctx context.Context, code string) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, s.rateTimeout)
	defer cancel()

	table, err := s.rates.GetRates(ctx)
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rates", "currency", code, "error", err)
		if errors.Is(err, apperrors.ErrRateFetch) {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrRateFetch, err)
	}
	if err := checkBase(table, s.base); err != nil {
		logger.Log.Errorw("rate table does not match the ledger base", "currency", code, "error", err)
		return decimal.Zero, err
	}

	if code == "" || code == s.base {
		return decimal.Zero, apperrors.ErrUnsupportedCurrency
	}
	r, ok := table.Lookup(code)
	if !ok {
		return decimal.Zero, apperrors.ErrUnsupportedCurrency
	}
	// applied at the scale it is stored with
	mid := models.RoundRate(r.Mid)
	if !mid.IsPositive() {
		return decimal.Zero, apperrors.ErrUnsupportedCurrency
	}
	return mid, nil
}

// runInTx runs fn in a transaction, retrying it while the store reports a
// concurrency conflict.
func (s *LedgerService) runInTx(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	for attempt := 0; ; attempt++ {
		err := apperrors.Classify(s.tx.WithinTx(ctx, fn))
		if err == nil || !errors.Is(err, apperrors.ErrConcurrencyConflict) || attempt >= s.maxRetries {
			return err
		}

		logger.Log.Warnw("retrying ledger transaction", "op", op, "attempt", attempt+1, "error", err)

		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt+1) * s.retryBackoff):
		}
	}
}

func (s *LedgerService) newTransaction(
	userID uuid.UUID,
	code string,
	amount decimal.Decimal,
	typ models.TransactionType,
	rate, value decimal.Decimal,
) *models.Transaction {
	now := s.now().UTC()
	return &models.Transaction{
		ID:        ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		UserID:    userID,
		Currency:  code,
		Amount:    amount,
		Type:      typ,
		Rate:      rate,
		Value:     value,
		Timestamp: now,
	}
}

func transactionEvent(txn *models.Transaction, balance decimal.Decimal) models.LedgerEvent {
	return models.LedgerEvent{
		EventID:   txn.ID,
		UserID:    txn.UserID.String(),
		Type:      string(txn.Type),
		Currency:  txn.Currency,
		Amount:    txn.Amount,
		Rate:      txn.Rate,
		Value:     txn.Value,
		Balance:   balance,
		Timestamp: txn.Timestamp.Unix(),
	}
}

// publishEvent publishes a committed mutation to Kafka. Failures are logged only.
func (s *LedgerService) publishEvent(ctx context.Context, event models.LedgerEvent) {
	if event.EventID == "" {
		event.EventID = ulid.MustNew(ulid.Now(), ulid.DefaultEntropy()).String()
	}
	if event.Timestamp == 0 {
		event.Timestamp = s.now().Unix()
	}

	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal ledger event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish ledger event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Ledger event published to Kafka", "event_id", event.EventID, "type", event.Type)
	}
}
