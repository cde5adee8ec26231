package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/kudipay/kudipay/internal/domain"
	"github.com/kudipay/kudipay/internal/usecase"
)

// MockWalletRepository is a mock implementation of WalletRepository. With no
// Func overrides it behaves as an in-memory store.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet

	CreateFunc                 func(ctx context.Context, w *domain.Wallet) error
	GetByIDFunc                func(ctx context.Context, id string) (*domain.Wallet, error)
	GetByEmailFunc             func(ctx context.Context, email string) (*domain.Wallet, error)
	LinkRecipientFunc          func(ctx context.Context, id, recipientCode string) error
	AssignDedicatedAccountFunc func(ctx context.Context, id, number, bankName, accountName string) error
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]*domain.Wallet),
	}
}

// Seed stores a wallet directly, bypassing Create.
func (m *MockWalletRepository) Seed(w *domain.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *w
	m.wallets[w.ID] = &cp
}

// Stored returns the stored wallet by ID, or nil.
func (m *MockWalletRepository) Stored(id string) *domain.Wallet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.wallets[id]
	if !ok {
		return nil
	}
	cp := *w
	return &cp
}

func (m *MockWalletRepository) Create(ctx context.Context, w *domain.Wallet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, w)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.wallets {
		if existing.Email == w.Email {
			return domain.ErrEmailTaken
		}
	}
	cp := *w
	m.wallets[w.ID] = &cp
	return nil
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.wallets[id]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *MockWalletRepository) GetByEmail(ctx context.Context, email string) (*domain.Wallet, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.wallets {
		if w.Email == email {
			cp := *w
			return &cp, nil
		}
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) LinkRecipient(ctx context.Context, id, recipientCode string) error {
	if m.LinkRecipientFunc != nil {
		return m.LinkRecipientFunc(ctx, id, recipientCode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok {
		return domain.ErrWalletNotFound
	}
	if w.RecipientCode != "" {
		return domain.ErrRecipientExists
	}
	w.RecipientCode = recipientCode
	return nil
}

func (m *MockWalletRepository) AssignDedicatedAccount(ctx context.Context, id, number, bankName, accountName string) error {
	if m.AssignDedicatedAccountFunc != nil {
		return m.AssignDedicatedAccountFunc(ctx, id, number, bankName, accountName)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wallets[id]
	if !ok {
		return domain.ErrWalletNotFound
	}
	if w.DVANumber != "" {
		return domain.ErrDedicatedAccountExists
	}
	w.DVANumber = number
	w.DVABank = bankName
	w.DVAAccountName = accountName
	return nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository. The
// default behavior tracks consumed references and mutates seeded wallets in
// an optional backing MockWalletRepository.
type MockLedgerRepository struct {
	mu        sync.Mutex
	applied   map[string]bool
	backing   *MockWalletRepository
	Mutations []usecase.ApplyDeltaInput

	ApplyDeltaFunc func(ctx context.Context, input usecase.ApplyDeltaInput) (usecase.ApplyDeltaResult, error)
}

func NewMockLedgerRepository(backing *MockWalletRepository) *MockLedgerRepository {
	return &MockLedgerRepository{
		applied: make(map[string]bool),
		backing: backing,
	}
}

func (m *MockLedgerRepository) ApplyDelta(ctx context.Context, input usecase.ApplyDeltaInput) (usecase.ApplyDeltaResult, error) {
	if m.ApplyDeltaFunc != nil {
		return m.ApplyDeltaFunc(ctx, input)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.applied[input.Reference] {
		return usecase.DeltaAlreadyApplied, nil
	}

	if m.backing != nil {
		m.backing.mu.Lock()
		w, ok := m.backing.wallets[input.WalletID]
		if !ok {
			m.backing.mu.Unlock()
			return "", domain.ErrWalletNotFound
		}
		w.Balance = w.Balance.Add(input.Amount)
		if input.ClearWithdrawal {
			w.Withdrawing = false
			w.WithdrawingSince = nil
		}
		m.backing.mu.Unlock()
	}

	m.applied[input.Reference] = true
	m.Mutations = append(m.Mutations, input)
	return usecase.DeltaApplied, nil
}

// MockWithdrawalLockRepository is a mock implementation of
// WithdrawalLockRepository backed by an in-memory flag per wallet.
type MockWithdrawalLockRepository struct {
	mu     sync.Mutex
	locked map[string]time.Time

	TryAcquireFunc   func(ctx context.Context, walletID string) (bool, error)
	ReleaseFunc      func(ctx context.Context, walletID string) error
	ReleaseStaleFunc func(ctx context.Context, olderThan time.Duration) (int64, error)
}

func NewMockWithdrawalLockRepository() *MockWithdrawalLockRepository {
	return &MockWithdrawalLockRepository{
		locked: make(map[string]time.Time),
	}
}

// Locked reports whether the wallet currently holds a lock.
func (m *MockWithdrawalLockRepository) Locked(walletID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.locked[walletID]
	return ok
}

// SetLockedAt force-sets a lock with an acquisition time, for stale-lock tests.
func (m *MockWithdrawalLockRepository) SetLockedAt(walletID string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked[walletID] = at
}

func (m *MockWithdrawalLockRepository) TryAcquire(ctx context.Context, walletID string) (bool, error) {
	if m.TryAcquireFunc != nil {
		return m.TryAcquireFunc(ctx, walletID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locked[walletID]; held {
		return false, nil
	}
	m.locked[walletID] = time.Now()
	return true, nil
}

func (m *MockWithdrawalLockRepository) Release(ctx context.Context, walletID string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, walletID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locked, walletID)
	return nil
}

func (m *MockWithdrawalLockRepository) ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	if m.ReleaseStaleFunc != nil {
		return m.ReleaseStaleFunc(ctx, olderThan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	var released int64
	for id, at := range m.locked {
		if at.Before(cutoff) {
			delete(m.locked, id)
			released++
		}
	}
	return released, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
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
	return "01MOCKID" + string(rune('A'+m.counter%26)) + "0000000000000000"
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.Mutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	value := response
	if value == nil {
		value = []byte("processing")
	}
	m.data[key] = value
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

// SyncTaskQueue is a TaskQueue that runs tasks inline, so tests observe
// post-ack effects synchronously.
type SyncTaskQueue struct {
	mu    sync.Mutex
	Names []string

	EnqueueFunc func(name string, fn func(ctx context.Context) error) error
}

func NewSyncTaskQueue() *SyncTaskQueue {
	return &SyncTaskQueue{}
}

func (q *SyncTaskQueue) Enqueue(name string, fn func(ctx context.Context) error) error {
	if q.EnqueueFunc != nil {
		return q.EnqueueFunc(name, fn)
	}
	q.mu.Lock()
	q.Names = append(q.Names, name)
	q.mu.Unlock()
	return fn(context.Background())
}
