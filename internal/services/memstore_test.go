package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-currency-ledger/internal/apperrors"
	"github.com/sbilibin2017/gw-currency-ledger/internal/models"
)

type holdingKey struct {
	userID   uuid.UUID
	currency string
}

// memState is an in-memory ledger store. WithinTx serializes transactions
// and restores a snapshot when fn fails.
type memState struct {
	txMu sync.Mutex

	mu       sync.Mutex
	users    map[uuid.UUID]decimal.Decimal
	holdings map[holdingKey]decimal.Decimal
	txns     []models.Transaction
}

func newMemState() *memState {
	return &memState{
		users:    make(map[uuid.UUID]decimal.Decimal),
		holdings: make(map[holdingKey]decimal.Decimal),
	}
}

func (m *memState) addUser(balance string) uuid.UUID {
	id := uuid.New()
	m.mu.Lock()
	m.users[id] = decimal.RequireFromString(balance)
	m.mu.Unlock()
	return id
}

func (m *memState) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	users := make(map[uuid.UUID]decimal.Decimal, len(m.users))
	for k, v := range m.users {
		users[k] = v
	}
	holdings := make(map[holdingKey]decimal.Decimal, len(m.holdings))
	for k, v := range m.holdings {
		holdings[k] = v
	}
	txns := append([]models.Transaction(nil), m.txns...)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.users, m.holdings, m.txns = users, holdings, txns
		m.mu.Unlock()
		return err
	}
	return nil
}

type memUsers struct{ *memState }

func (m memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	balance, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &models.User{ID: id, Balance: balance}, nil
}

func (m memUsers) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.GetByID(ctx, id)
}

func (m memUsers) AddBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	balance, ok := m.users[id]
	if !ok {
		return decimal.Zero, apperrors.ErrUserNotFound
	}
	balance = balance.Add(delta)
	m.users[id] = balance
	return balance, nil
}

type memHoldings struct{ *memState }

func (m memHoldings) GetForUpdate(_ context.Context, userID uuid.UUID, currency string) (*models.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	amount, ok := m.holdings[holdingKey{userID, currency}]
	if !ok {
		return nil, nil
	}
	return &models.Holding{UserID: userID, Currency: currency, Amount: amount}, nil
}

func (m memHoldings) Increment(_ context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := holdingKey{userID, currency}
	m.holdings[k] = m.holdings[k].Add(amount)
	return m.holdings[k], nil
}

func (m memHoldings) SetAmount(_ context.Context, userID uuid.UUID, currency string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := holdingKey{userID, currency}
	if _, ok := m.holdings[k]; !ok {
		return apperrors.ErrInsufficientHoldings
	}
	m.holdings[k] = amount
	return nil
}

func (m memHoldings) Delete(_ context.Context, userID uuid.UUID, currency string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.holdings, holdingKey{userID, currency})
	return nil
}

func (m memHoldings) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Holding{}
	for k, v := range m.holdings {
		if k.userID == userID && v.IsPositive() {
			out = append(out, models.Holding{UserID: userID, Currency: k.currency, Amount: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

type memTxns struct{ *memState }

func (m memTxns) Save(_ context.Context, txn *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, *txn)
	return nil
}

func (m memTxns) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, t := range m.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type staticRates struct {
	table *models.RateTable
	err   error
}

func (s staticRates) GetRates(context.Context) (*models.RateTable, error) {
	return s.table, s.err
}

func rateTable(pairs ...string) *models.RateTable {
	t := &models.RateTable{Base: models.DefaultBaseCurrency, Table: "A"}
	for i := 0; i+1 < len(pairs); i += 2 {
		t.Rates = append(t.Rates, models.Rate{Code: pairs[i], Mid: decimal.RequireFromString(pairs[i+1])})
	}
	return t
}

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	var (
		mu  sync.Mutex
		cur = time.Date(2024, 10, 8, 12, 0, 0, 0, time.UTC)
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}

func newMemLedger(state *memState, rates RateSource, kafkaWriter KafkaWriter, opts ...LedgerOpt) *LedgerService {
	opts = append([]LedgerOpt{WithClock(steppingClock()), WithRetryBackoff(0)}, opts...)
	return NewLedgerService(state, memUsers{state}, memHoldings{state}, memTxns{state}, rates, kafkaWriter, opts...)
}
