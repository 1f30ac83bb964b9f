package tests

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"driverpay/internal/domain"
	"driverpay/internal/redis"
	"driverpay/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK STORE
// ──────────────────────────────────────────────

// memState is the shared in-memory data behind the mock repositories.
type memState struct {
	mu          sync.RWMutex
	drivers     map[string]*domain.Driver
	trips       map[string]*domain.Trip
	settlements map[string]*domain.Settlement
}

func newMemState() *memState {
	return &memState{
		drivers:     make(map[string]*domain.Driver),
		trips:       make(map[string]*domain.Trip),
		settlements: make(map[string]*domain.Settlement),
	}
}

// snapshot deep-copies the state so a failed transaction can be undone.
func (s *memState) snapshot() *memState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := newMemState()
	for k, v := range s.drivers {
		c := *v
		out.drivers[k] = &c
	}
	for k, v := range s.trips {
		c := *v
		out.trips[k] = &c
	}
	for k, v := range s.settlements {
		c := *v
		out.settlements[k] = &c
	}
	return out
}

func (s *memState) restore(from *memState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers = from.drivers
	s.trips = from.trips
	s.settlements = from.settlements
}

// MockStore is an in-memory repository.Store. WithinTx restores the
// pre-transaction state when fn fails.
type MockStore struct {
	txMu  sync.Mutex
	state *memState

	DriverRepo     *MockDriverRepository
	TripRepo       *MockTripRepository
	SettlementRepo *MockSettlementRepository

	// Counters for verification
	WithinTxCallCount int32
	RollbackCount     int32
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	state := newMemState()
	return &MockStore{
		state:          state,
		DriverRepo:     &MockDriverRepository{state: state},
		TripRepo:       &MockTripRepository{state: state},
		SettlementRepo: &MockSettlementRepository{state: state},
	}
}

func (m *MockStore) Drivers() repository.DriverRepository {
	return m.DriverRepo
}

func (m *MockStore) Trips() repository.TripRepository {
	return m.TripRepo
}

func (m *MockStore) Settlements() repository.SettlementRepository {
	return m.SettlementRepo
}

func (m *MockStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) (err error) {
	atomic.AddInt32(&m.WithinTxCallCount, 1)
	m.txMu.Lock()
	defer m.txMu.Unlock()

	before := m.state.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.state.restore(before)
			panic(p)
		}
		if err != nil {
			atomic.AddInt32(&m.RollbackCount, 1)
			m.state.restore(before)
		}
	}()

	return fn(m)
}

// AddDriver adds a driver to the mock store.
func (m *MockStore) AddDriver(driver *domain.Driver) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	c := *driver
	m.state.drivers[driver.ID] = &c
}

// AddTrip adds a trip to the mock store.
func (m *MockStore) AddTrip(trip *domain.Trip) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	c := *trip
	m.state.trips[trip.ID] = &c
}

// AddSettlement adds a settlement to the mock store.
func (m *MockStore) AddSettlement(settlement *domain.Settlement) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	c := *settlement
	m.state.settlements[settlement.ID] = &c
}

// CountTrips returns the number of stored trips.
func (m *MockStore) CountTrips() int {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return len(m.state.trips)
}

// CountSettlements returns the number of stored settlements.
func (m *MockStore) CountSettlements() int {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return len(m.state.settlements)
}

// SettlementsForTrip returns the stored settlements of a trip, BATTA first.
func (m *MockStore) SettlementsForTrip(tripID string) []*domain.Settlement {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	var out []*domain.Settlement
	for _, s := range m.state.settlements {
		if s.TripID == tripID {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	state *memState

	// Counters for verification
	CreateCallCount  int32
	GetByIDCallCount int32

	// Error injection
	CreateError error
	GetAllError error
	CountError  error
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	c := *driver
	m.state.drivers[driver.ID] = &c
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	driver, ok := m.state.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	c := *driver
	return &c, nil
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.state.drivers))
	for _, d := range m.state.drivers {
		c := *d
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MockDriverRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	return len(m.state.drivers), nil
}

func (m *MockDriverRepository) UpdatePaymentPreference(ctx context.Context, id string, pref domain.PaymentPreference) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	driver, ok := m.state.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.PaymentPreference = pref
	return nil
}

func (m *MockDriverRepository) Delete(ctx context.Context, id string) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	if _, ok := m.state.drivers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.state.drivers, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	state *memState

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
	GetAllError error
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	c := *trip
	m.state.trips[trip.ID] = &c
	return nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.state.trips))
	for _, t := range m.state.trips {
		c := *t
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK SETTLEMENT REPOSITORY
// ──────────────────────────────────────────────

// MockSettlementRepository is a mock implementation of SettlementRepository.
type MockSettlementRepository struct {
	state *memState

	// Counters for verification
	CreateCallCount   int32
	MarkPaidCallCount int32

	// Error injection
	CreateError error
	// FailCreateOfType fails Create only for settlements of this type.
	FailCreateOfType domain.SettlementType
	MarkPaidError    error
	GetAllError      error
}

func (m *MockSettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil && (m.FailCreateOfType == "" || m.FailCreateOfType == settlement.Type) {
		return m.CreateError
	}
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	c := *settlement
	m.state.settlements[settlement.ID] = &c
	return nil
}

func (m *MockSettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	s, ok := m.state.settlements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (m *MockSettlementRepository) GetAll(ctx context.Context) ([]*domain.Settlement, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	result := make([]*domain.Settlement, 0, len(m.state.settlements))
	for _, s := range m.state.settlements {
		c := *s
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MockSettlementRepository) CountPendingByDriverID(ctx context.Context, driverID string) (int, error) {
	m.state.mu.RLock()
	defer m.state.mu.RUnlock()
	n := 0
	for _, s := range m.state.settlements {
		if s.DriverID == driverID && s.Status == domain.SettlementStatusPending {
			n++
		}
	}
	return n, nil
}

func (m *MockSettlementRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (*domain.Settlement, error) {
	atomic.AddInt32(&m.MarkPaidCallCount, 1)
	if m.MarkPaidError != nil {
		return nil, m.MarkPaidError
	}
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	s, ok := m.state.settlements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if s.Status != domain.SettlementStatusPending {
		return nil, repository.ErrStatusConflict
	}
	s.Status = domain.SettlementStatusPaid
	s.PaidAt = paidAt
	c := *s
	return &c, nil
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of CacheStoreInterface.
type MockCacheStore struct {
	mu        sync.Mutex
	drivers   map[string]*redis.CachedDriver
	dashboard *domain.DashboardStats

	// Counters
	GetDashboardCallCount        int32
	SetDashboardCallCount        int32
	InvalidateDashboardCallCount int32
	InvalidateDriverCallCount    int32

	// Error injection
	GetError        error
	SetError        error
	InvalidateError error
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{drivers: make(map[string]*redis.CachedDriver)}
}

func (m *MockCacheStore) GetDriver(ctx context.Context, driverID string) (*redis.CachedDriver, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drivers[driverID]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (m *MockCacheStore) SetDriver(ctx context.Context, driver *redis.CachedDriver) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *driver
	m.drivers[driver.ID] = &c
	return nil
}

func (m *MockCacheStore) InvalidateDriver(ctx context.Context, driverID string) error {
	atomic.AddInt32(&m.InvalidateDriverCallCount, 1)
	if m.InvalidateError != nil {
		return m.InvalidateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drivers, driverID)
	return nil
}

func (m *MockCacheStore) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	atomic.AddInt32(&m.GetDashboardCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dashboard == nil {
		return nil, nil
	}
	c := *m.dashboard
	return &c, nil
}

func (m *MockCacheStore) SetDashboard(ctx context.Context, stats *domain.DashboardStats) error {
	atomic.AddInt32(&m.SetDashboardCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *stats
	m.dashboard = &c
	return nil
}

func (m *MockCacheStore) InvalidateDashboard(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateDashboardCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dashboard = nil
	return nil
}

// HasDashboard reports whether a dashboard is cached (for test assertions).
func (m *MockCacheStore) HasDashboard() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dashboard != nil
}

// CachedDriver returns the cached driver, if any (for test assertions).
func (m *MockCacheStore) CachedDriver(driverID string) *redis.CachedDriver {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drivers[driverID]
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu     sync.Mutex
	locks  map[string]string
	nextID int

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]string)}
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (string, bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForceAcquireFailure {
		return "", false, nil
	}
	if _, held := m.locks[driverID]; held {
		return "", false, nil
	}
	m.nextID++
	token := "token-" + strconv.Itoa(m.nextID)
	m.locks[driverID] = token
	return token, true, nil
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[driverID] == token {
		delete(m.locks, driverID)
	}
	return nil
}

// IsLocked checks if a driver is locked (for test assertions).
func (m *MockLockStore) IsLocked(driverID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, held := m.locks[driverID]
	return held
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)

// Ensure mocks implement interfaces.
var (
	_ repository.Store          = (*MockStore)(nil)
	_ redis.CacheStoreInterface = (*MockCacheStore)(nil)
	_ redis.LockStoreInterface  = (*MockLockStore)(nil)
)
