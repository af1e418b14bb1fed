package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/khrisnaSoluix/lending-engine/internal/domain"
	"github.com/khrisnaSoluix/lending-engine/internal/usecase"
)

// MockLoanRepository is a mock implementation of LoanRepository.
type MockLoanRepository struct {
	mu    sync.RWMutex
	loans map[string]*domain.LoanAccount

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, loan *domain.LoanAccount) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.LoanAccount, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.LoanAccount, error)
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error)
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{
		loans: make(map[string]*domain.LoanAccount),
	}
}

func (m *MockLoanRepository) Create(ctx context.Context, tx usecase.Transaction, loan *domain.LoanAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans[loan.ID] = loan
	return nil
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*domain.LoanAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if loan, ok := m.loans[id]; ok {
		return loan, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockLoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LoanAccount, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockLoanRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.AccountStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if loan, ok := m.loans[id]; ok {
		loan.Status = status
		loan.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockLoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var loans []*domain.LoanAccount
	for _, loan := range m.loans {
		loans = append(loans, loan)
	}
	return loans, nil
}

// MockParameterRepository is a mock implementation of ParameterRepository.
type MockParameterRepository struct {
	mu        sync.RWMutex
	timelines map[string]*domain.ParameterTimeline

	SaveFunc     func(ctx context.Context, tx usecase.Transaction, accountID string, effectiveAt time.Time, params domain.Parameters) error
	TimelineFunc func(ctx context.Context, accountID string) (*domain.ParameterTimeline, error)
}

func NewMockParameterRepository() *MockParameterRepository {
	return &MockParameterRepository{
		timelines: make(map[string]*domain.ParameterTimeline),
	}
}

func (m *MockParameterRepository) Save(ctx context.Context, tx usecase.Transaction, accountID string, effectiveAt time.Time, params domain.Parameters) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, accountID, effectiveAt, params)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	timeline, ok := m.timelines[accountID]
	if !ok {
		timeline = domain.NewParameterTimeline()
		m.timelines[accountID] = timeline
	}
	timeline.Append(effectiveAt, params)
	return nil
}

func (m *MockParameterRepository) Timeline(ctx context.Context, accountID string) (*domain.ParameterTimeline, error) {
	if m.TimelineFunc != nil {
		return m.TimelineFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if timeline, ok := m.timelines[accountID]; ok {
		return timeline, nil
	}
	return nil, domain.ErrAccountNotFound
}

// MockPostingRepository is a mock implementation of PostingRepository.
type MockPostingRepository struct {
	mu       sync.RWMutex
	postings map[string][]*domain.PostingInstruction

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, accountID string, posting *domain.PostingInstruction) error
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.PostingInstruction, error)
}

func NewMockPostingRepository() *MockPostingRepository {
	return &MockPostingRepository{
		postings: make(map[string][]*domain.PostingInstruction),
	}
}

func (m *MockPostingRepository) Create(ctx context.Context, tx usecase.Transaction, accountID string, posting *domain.PostingInstruction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, accountID, posting)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postings[accountID] = append(m.postings[accountID], posting)
	return nil
}

func (m *MockPostingRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.PostingInstruction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.postings[accountID], nil
}

// Committed returns every posting stored for an account, for assertions.
func (m *MockPostingRepository) Committed(accountID string) []*domain.PostingInstruction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.postings[accountID]
}

// MockBalanceRepository keeps running balances in memory, replaying every
// applied posting onto a per-account snapshot.
type MockBalanceRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.BalanceSnapshot

	SnapshotFunc          func(ctx context.Context, accountID, denomination string) (*domain.BalanceSnapshot, error)
	SnapshotForUpdateFunc func(ctx context.Context, tx usecase.Transaction, accountID, denomination string) (*domain.BalanceSnapshot, error)
	ApplyPostingFunc      func(ctx context.Context, tx usecase.Transaction, accountID string, posting *domain.PostingInstruction) error
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		snapshots: make(map[string]*domain.BalanceSnapshot),
	}
}

func (m *MockBalanceRepository) store(accountID, denomination string) *domain.BalanceSnapshot {
	snap, ok := m.snapshots[accountID]
	if !ok {
		snap = domain.NewBalanceSnapshot(accountID, denomination)
		m.snapshots[accountID] = snap
	}
	return snap
}

// Seed replaces the stored snapshot for an account.
func (m *MockBalanceRepository) Seed(snap *domain.BalanceSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snap.AccountID] = snap
}

// Live exposes the stored snapshot itself, for staging balances in tests.
func (m *MockBalanceRepository) Live(accountID, denomination string) *domain.BalanceSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store(accountID, denomination)
}

// Snapshot returns a copy, as a database read would.
func (m *MockBalanceRepository) Snapshot(ctx context.Context, accountID, denomination string) (*domain.BalanceSnapshot, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx, accountID, denomination)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store(accountID, denomination).Clone(), nil
}

func (m *MockBalanceRepository) SnapshotForUpdate(ctx context.Context, tx usecase.Transaction, accountID, denomination string) (*domain.BalanceSnapshot, error) {
	if m.SnapshotForUpdateFunc != nil {
		return m.SnapshotForUpdateFunc(ctx, tx, accountID, denomination)
	}
	return m.Snapshot(ctx, accountID, denomination)
}

func (m *MockBalanceRepository) ApplyPosting(ctx context.Context, tx usecase.Transaction, accountID string, posting *domain.PostingInstruction) error {
	if m.ApplyPostingFunc != nil {
		return m.ApplyPostingFunc(ctx, tx, accountID, posting)
	}
	if len(posting.Movements) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(accountID, posting.Movements[0].Denomination).Apply(posting)
	return nil
}

// MockScheduleRepository is a mock implementation of ScheduleRepository.
type MockScheduleRepository struct {
	mu     sync.RWMutex
	events map[string]map[domain.EventType]domain.ScheduleEvent

	UpsertFunc  func(ctx context.Context, tx usecase.Transaction, accountID string, event domain.ScheduleEvent) error
	ListDueFunc func(ctx context.Context, before time.Time, limit int) ([]*usecase.ScheduledJob, error)
}

func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{
		events: make(map[string]map[domain.EventType]domain.ScheduleEvent),
	}
}

func (m *MockScheduleRepository) Upsert(ctx context.Context, tx usecase.Transaction, accountID string, event domain.ScheduleEvent) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, accountID, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if event.NextRunAt.IsZero() {
		delete(m.events[accountID], event.Type)
		return nil
	}
	if m.events[accountID] == nil {
		m.events[accountID] = make(map[domain.EventType]domain.ScheduleEvent)
	}
	m.events[accountID][event.Type] = event
	return nil
}

func (m *MockScheduleRepository) ListDue(ctx context.Context, before time.Time, limit int) ([]*usecase.ScheduledJob, error) {
	if m.ListDueFunc != nil {
		return m.ListDueFunc(ctx, before, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var jobs []*usecase.ScheduledJob
	for accountID, byType := range m.events {
		for _, event := range byType {
			if event.NextRunAt.Before(before) && len(jobs) < limit {
				jobs = append(jobs, &usecase.ScheduledJob{
					AccountID: accountID,
					Type:      event.Type,
					RunAt:     event.NextRunAt,
				})
			}
		}
	}
	return jobs, nil
}

// Scheduled returns the stored event for an account and type, for
// assertions.
func (m *MockScheduleRepository) Scheduled(accountID string, eventType domain.EventType) (domain.ScheduleEvent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	event, ok := m.events[accountID][eventType]
	return event, ok
}

// MockFlagRepository is a mock implementation of FlagRepository.
type MockFlagRepository struct {
	mu   sync.RWMutex
	sets map[string]*domain.PolicySet

	PolicySetFunc func(ctx context.Context, accountID string) (*domain.PolicySet, error)
	AddFunc       func(ctx context.Context, accountID string, flag domain.Flag, from time.Time, until *time.Time) error
}

func NewMockFlagRepository() *MockFlagRepository {
	return &MockFlagRepository{
		sets: make(map[string]*domain.PolicySet),
	}
}

func (m *MockFlagRepository) PolicySet(ctx context.Context, accountID string) (*domain.PolicySet, error) {
	if m.PolicySetFunc != nil {
		return m.PolicySetFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if set, ok := m.sets[accountID]; ok {
		return set, nil
	}
	return domain.NewPolicySet(), nil
}

func (m *MockFlagRepository) Add(ctx context.Context, accountID string, flag domain.Flag, from time.Time, until *time.Time) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, accountID, flag, from, until)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[accountID]
	if !ok {
		set = domain.NewPolicySet()
		m.sets[accountID] = set
	}
	set.Add(flag, from, until)
	return nil
}

// MockReferenceStore is a mock implementation of ReferenceStore.
type MockReferenceStore struct {
	mu      sync.Mutex
	claimed map[string]bool

	ClaimFunc func(ctx context.Context, reference string, ttl time.Duration) (bool, error)
}

func NewMockReferenceStore() *MockReferenceStore {
	return &MockReferenceStore{
		claimed: make(map[string]bool),
	}
}

func (m *MockReferenceStore) Claim(ctx context.Context, reference string, ttl time.Duration) (bool, error) {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(ctx, reference, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimed[reference] {
		return false, nil
	}
	m.claimed[reference] = true
	return true, nil
}

// MockNotifier records published notifications.
type MockNotifier struct {
	mu        sync.Mutex
	Published []PublishedNotice

	PublishFunc func(ctx context.Context, accountID, noticeType string, details map[string]string) error
}

type PublishedNotice struct {
	AccountID string
	Type      string
	Details   map[string]string
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Publish(ctx context.Context, accountID, noticeType string, details map[string]string) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, accountID, noticeType, details)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, PublishedNotice{
		AccountID: accountID,
		Type:      noticeType,
		Details:   details,
	})
	return nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
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
	return fmt.Sprintf("id-%06d", m.counter)
}
