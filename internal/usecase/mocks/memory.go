package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/usecase"
)

// MemoryAccountRepository is an in-memory AccountRepository. Lines are counted
// against the entry repository it is linked to.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	entries  *MemoryEntryRepository

	ListFunc func(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
}

// NewMemoryAccountRepository creates an empty repository. entries may be nil.
func NewMemoryAccountRepository(entries *MemoryEntryRepository, accounts ...domain.Account) *MemoryAccountRepository {
	r := &MemoryAccountRepository{
		accounts: make(map[string]*domain.Account),
		entries:  entries,
	}
	for i := range accounts {
		a := accounts[i]
		r.accounts[a.Code] = &a
	}
	return r
}

func (r *MemoryAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.Code]; ok {
		return domain.ErrAccountExists
	}
	cp := *account
	r.accounts[account.Code] = &cp
	return nil
}

func (r *MemoryAccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.accounts[code]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *MemoryAccountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	if r.ListFunc != nil {
		return r.ListFunc(ctx, filter)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		if filter.Match(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *MemoryAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.Code]; !ok {
		return domain.ErrAccountNotFound
	}
	cp := *account
	r.accounts[account.Code] = &cp
	return nil
}

func (r *MemoryAccountRepository) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[code]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, code)
	return nil
}

func (r *MemoryAccountRepository) CountLines(ctx context.Context, code string) (int64, error) {
	if r.entries == nil {
		return 0, nil
	}
	return r.entries.countLines(code), nil
}

// MemoryEntryRepository is an in-memory EntryRepository and LedgerRepository.
type MemoryEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]domain.JournalEntry

	CreateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
}

// NewMemoryEntryRepository creates a repository holding the given entries.
func NewMemoryEntryRepository(entries ...domain.JournalEntry) *MemoryEntryRepository {
	r := &MemoryEntryRepository{entries: make(map[string]domain.JournalEntry)}
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return r
}

func (r *MemoryEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, tx, entry)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; ok {
		return fmt.Errorf("entry %s already exists", entry.ID)
	}
	r.entries[entry.ID] = *entry
	return nil
}

func (r *MemoryEntryRepository) Replace(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	r.entries[entry.ID] = *entry
	return nil
}

func (r *MemoryEntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *MemoryEntryRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[id]; ok {
		return &e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (r *MemoryEntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.JournalEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if filter.From != "" && e.Date < filter.From {
			continue
		}
		if filter.To != "" && e.Date > filter.To {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *MemoryEntryRepository) Totals(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	debit, credit := decimal.Zero, decimal.Zero
	for _, e := range r.entries {
		d, c := e.Totals()
		debit = debit.Add(d)
		credit = credit.Add(c)
	}
	return debit, credit, nil
}

func (r *MemoryEntryRepository) UnbalancedEntries(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, e := range r.entries {
		if d, c := e.Totals(); !d.Equal(c) || !d.IsPositive() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MemoryEntryRepository) countLines(code string) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, e := range r.entries {
		for _, l := range e.Lines {
			if l.AccountCode == code {
				n++
			}
		}
	}
	return n
}

// MemoryTxManager hands out no-op transactions and counts them.
type MemoryTxManager struct {
	mu        sync.Mutex
	Begun     int
	Committed int
}

func (m *MemoryTxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Begun++
	return &memoryTx{mgr: m}, nil
}

type memoryTx struct {
	mgr *MemoryTxManager
}

func (t *memoryTx) Commit(ctx context.Context) error {
	t.mgr.mu.Lock()
	defer t.mgr.mu.Unlock()
	t.mgr.Committed++
	return nil
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	return nil
}

// SequenceIDGenerator returns zero-padded increasing IDs.
type SequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%06d", g.next)
}

// MemoryIdempotencyStore is an in-memory IdempotencyStore.
type MemoryIdempotencyStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{data: make(map[string][]byte)}
}

func (s *MemoryIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.data[key]; ok {
		return true, existing, nil
	}
	if response == nil {
		response = []byte(usecase.IdempotencyPending)
	}
	s.data[key] = response
	return false, nil, nil
}

func (s *MemoryIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = response
	return nil
}

func (s *MemoryIdempotencyStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
