package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okhan/bookledger/internal/domain"
	"github.com/okhan/bookledger/internal/usecase"
)

// MockPartyRepository is a mock implementation of usecase.PartyRepository.
// Defaults operate on an in-memory map; set a Func field to override.
type MockPartyRepository struct {
	mu      sync.RWMutex
	parties map[int64]*domain.Party
	nextID  int64

	CreateFunc            func(ctx context.Context, party *domain.Party) error
	GetByIDFunc           func(ctx context.Context, id int64) (*domain.Party, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Party, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Party, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error
	UpdateContactFunc     func(ctx context.Context, party *domain.Party) error
	DeleteFunc            func(ctx context.Context, id int64) error
	ListFunc              func(ctx context.Context, filter usecase.PartyFilter) ([]*domain.Party, error)
}

func NewMockPartyRepository() *MockPartyRepository {
	return &MockPartyRepository{parties: make(map[int64]*domain.Party)}
}

// Seed stores a party directly, bypassing Create.
func (m *MockPartyRepository) Seed(party *domain.Party) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *party
	m.parties[party.ID] = &cp

	if party.ID > m.nextID {
		m.nextID = party.ID
	}
}

// StoredBalance returns the balance currently held for a party.
func (m *MockPartyRepository) StoredBalance(id int64) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if p, ok := m.parties[id]; ok {
		return p.Balance
	}

	return decimal.Zero
}

func (m *MockPartyRepository) Create(ctx context.Context, party *domain.Party) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, party)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	party.ID = m.nextID
	cp := *party
	m.parties[party.ID] = &cp

	return nil
}

func (m *MockPartyRepository) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.parties[id]
	if !ok {
		return nil, domain.ErrPartyNotFound
	}

	cp := *p

	return &cp, nil
}

func (m *MockPartyRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Party, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}

	return m.GetByID(ctx, id)
}

func (m *MockPartyRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Party, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	parties := make([]*domain.Party, 0, len(ids))

	for _, id := range ids {
		if p, ok := m.parties[id]; ok {
			cp := *p
			parties = append(parties, &cp)
		}
	}

	return parties, nil
}

func (m *MockPartyRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.parties[id]
	if !ok {
		return domain.ErrPartyNotFound
	}

	p.Balance = balance
	p.UpdatedAt = updatedAt

	return nil
}

func (m *MockPartyRepository) UpdateContact(ctx context.Context, party *domain.Party) error {
	if m.UpdateContactFunc != nil {
		return m.UpdateContactFunc(ctx, party)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.parties[party.ID]
	if !ok {
		return domain.ErrPartyNotFound
	}

	p.Name = party.Name
	p.Phone = party.Phone
	p.CNIC = party.CNIC
	p.Email = party.Email
	p.Address = party.Address

	return nil
}

func (m *MockPartyRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.parties[id]; !ok {
		return domain.ErrPartyNotFound
	}

	delete(m.parties, id)

	return nil
}

func (m *MockPartyRepository) List(ctx context.Context, filter usecase.PartyFilter) ([]*domain.Party, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	parties := make([]*domain.Party, 0, len(m.parties))

	for _, p := range m.parties {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}

		cp := *p
		parties = append(parties, &cp)
	}

	return parties, nil
}

// MockTransactionRepository is a mock implementation of
// usecase.TransactionRepository backed by a slice.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns []*domain.Transaction

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	ListByPartyFunc   func(ctx context.Context, partyID int64, limit, offset int) ([]*domain.Transaction, error)
	GetByTransferFunc func(ctx context.Context, transferID string) ([]*domain.Transaction, error)
	SumByPartyFunc    func(ctx context.Context, partyID int64, role domain.Role) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Created returns every entry recorded so far.
func (m *MockTransactionRepository) Created() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Transaction, len(m.txns))
	copy(out, m.txns)

	return out
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *txn
	m.txns = append(m.txns, &cp)

	return nil
}

func (m *MockTransactionRepository) ListByParty(ctx context.Context, partyID int64, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByPartyFunc != nil {
		return m.ListByPartyFunc(ctx, partyID, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Transaction

	for _, txn := range m.txns {
		if txn.PartyID == partyID {
			cp := *txn
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (m *MockTransactionRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.Transaction, error) {
	if m.GetByTransferFunc != nil {
		return m.GetByTransferFunc(ctx, transferID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Transaction

	for _, txn := range m.txns {
		if txn.TransferID != nil && *txn.TransferID == transferID {
			cp := *txn
			out = append(out, &cp)
		}
	}

	return out, nil
}

func (m *MockTransactionRepository) SumByParty(ctx context.Context, partyID int64, role domain.Role) (decimal.Decimal, error) {
	if m.SumByPartyFunc != nil {
		return m.SumByPartyFunc(ctx, partyID, role)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	sum := decimal.Zero

	for _, txn := range m.txns {
		if txn.PartyID == partyID {
			sum = sum.Add(txn.Type.BalanceDelta(role, txn.Amount))
		}
	}

	return sum, nil
}

// MockLedgerRepository is a mock implementation of usecase.LedgerRepository.
type MockLedgerRepository struct {
	FindBalanceDriftFunc func(ctx context.Context) ([]*domain.BalanceDrift, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) FindBalanceDrift(ctx context.Context) ([]*domain.BalanceDrift, error) {
	if m.FindBalanceDriftFunc != nil {
		return m.FindBalanceDriftFunc(ctx)
	}

	return nil, nil
}

// MockTransaction records commit/rollback calls.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	m.Committed = true

	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}

	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	// The deferred rollback after a successful commit is a no-op, as with a
	// real database transaction.
	if !m.Committed {
		m.RolledBack = true
	}

	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}

	return nil
}

// MockTransactionManager is a mock implementation of
// usecase.TransactionManager. LastTx exposes the most recent transaction.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu     sync.Mutex
	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &MockTransaction{}
	m.LastTx = tx

	return tx, nil
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu      sync.Mutex
	counter int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++

	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is an in-memory mock implementation of usecase.Cache.
type MockCache struct {
	mu      sync.RWMutex
	entries map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	if !ok {
		return nil, fmt.Errorf("cache miss: %s", key)
	}

	return value, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}

// Has reports whether a key is cached.
func (m *MockCache) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.entries[key]

	return ok
}
