//	mockgen -source=internal/usecase/interfaces.go -destination=internal/usecase/mocks/mock_interfaces.go -package=mocks
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	time "time"

	domain "github.com/khrisnaSoluix/lending-engine/internal/domain"
	usecase "github.com/khrisnaSoluix/lending-engine/internal/usecase"
	gomock "go.uber.org/mock/gomock"
)

// MockLoanRepositoryCtrl is a mock of LoanRepository interface.
type MockLoanRepositoryCtrl struct {
	ctrl     *gomock.Controller
	recorder *MockLoanRepositoryCtrlMockRecorder
	isgomock struct{}
}

// MockLoanRepositoryCtrlMockRecorder is the mock recorder for MockLoanRepositoryCtrl.
type MockLoanRepositoryCtrlMockRecorder struct {
	mock *MockLoanRepositoryCtrl
}

// NewMockLoanRepositoryCtrl creates a new mock instance.
func NewMockLoanRepositoryCtrl(ctrl *gomock.Controller) *MockLoanRepositoryCtrl {
	mock := &MockLoanRepositoryCtrl{ctrl: ctrl}
	mock.recorder = &MockLoanRepositoryCtrlMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLoanRepositoryCtrl) EXPECT() *MockLoanRepositoryCtrlMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockLoanRepositoryCtrl) Create(ctx context.Context, tx usecase.Transaction, loan *domain.LoanAccount) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, tx, loan)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockLoanRepositoryCtrlMockRecorder) Create(ctx, tx, loan any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockLoanRepositoryCtrl)(nil).Create), ctx, tx, loan)
}

// GetByID mocks base method.
func (m *MockLoanRepositoryCtrl) GetByID(ctx context.Context, id string) (*domain.LoanAccount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.LoanAccount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockLoanRepositoryCtrlMockRecorder) GetByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockLoanRepositoryCtrl)(nil).GetByID), ctx, id)
}

// GetByIDForUpdate mocks base method.
func (m *MockLoanRepositoryCtrl) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LoanAccount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByIDForUpdate", ctx, tx, id)
	ret0, _ := ret[0].(*domain.LoanAccount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByIDForUpdate indicates an expected call of GetByIDForUpdate.
func (mr *MockLoanRepositoryCtrlMockRecorder) GetByIDForUpdate(ctx, tx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByIDForUpdate", reflect.TypeOf((*MockLoanRepositoryCtrl)(nil).GetByIDForUpdate), ctx, tx, id)
}

// List mocks base method.
func (m *MockLoanRepositoryCtrl) List(ctx context.Context, limit, offset int) ([]*domain.LoanAccount, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, limit, offset)
	ret0, _ := ret[0].([]*domain.LoanAccount)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockLoanRepositoryCtrlMockRecorder) List(ctx, limit, offset any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockLoanRepositoryCtrl)(nil).List), ctx, limit, offset)
}

// UpdateStatus mocks base method.
func (m *MockLoanRepositoryCtrl) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.AccountStatus, updatedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateStatus", ctx, tx, id, status, updatedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateStatus indicates an expected call of UpdateStatus.
func (mr *MockLoanRepositoryCtrlMockRecorder) UpdateStatus(ctx, tx, id, status, updatedAt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateStatus", reflect.TypeOf((*MockLoanRepositoryCtrl)(nil).UpdateStatus), ctx, tx, id, status, updatedAt)
}

// MockReferenceStoreCtrl is a mock of ReferenceStore interface.
type MockReferenceStoreCtrl struct {
	ctrl     *gomock.Controller
	recorder *MockReferenceStoreCtrlMockRecorder
	isgomock struct{}
}

// MockReferenceStoreCtrlMockRecorder is the mock recorder for MockReferenceStoreCtrl.
type MockReferenceStoreCtrlMockRecorder struct {
	mock *MockReferenceStoreCtrl
}

// NewMockReferenceStoreCtrl creates a new mock instance.
func NewMockReferenceStoreCtrl(ctrl *gomock.Controller) *MockReferenceStoreCtrl {
	mock := &MockReferenceStoreCtrl{ctrl: ctrl}
	mock.recorder = &MockReferenceStoreCtrlMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockReferenceStoreCtrl) EXPECT() *MockReferenceStoreCtrlMockRecorder {
	return m.recorder
}

// Claim mocks base method.
func (m *MockReferenceStoreCtrl) Claim(ctx context.Context, reference string, ttl time.Duration) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Claim", ctx, reference, ttl)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Claim indicates an expected call of Claim.
func (mr *MockReferenceStoreCtrlMockRecorder) Claim(ctx, reference, ttl any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Claim", reflect.TypeOf((*MockReferenceStoreCtrl)(nil).Claim), ctx, reference, ttl)
}

// MockNotifierCtrl is a mock of Notifier interface.
type MockNotifierCtrl struct {
	ctrl     *gomock.Controller
	recorder *MockNotifierCtrlMockRecorder
	isgomock struct{}
}

// MockNotifierCtrlMockRecorder is the mock recorder for MockNotifierCtrl.
type MockNotifierCtrlMockRecorder struct {
	mock *MockNotifierCtrl
}

// NewMockNotifierCtrl creates a new mock instance.
func NewMockNotifierCtrl(ctrl *gomock.Controller) *MockNotifierCtrl {
	mock := &MockNotifierCtrl{ctrl: ctrl}
	mock.recorder = &MockNotifierCtrlMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockNotifierCtrl) EXPECT() *MockNotifierCtrlMockRecorder {
	return m.recorder
}

// Publish mocks base method.
func (m *MockNotifierCtrl) Publish(ctx context.Context, accountID, noticeType string, details map[string]string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Publish", ctx, accountID, noticeType, details)
	ret0, _ := ret[0].(error)
	return ret0
}

// Publish indicates an expected call of Publish.
func (mr *MockNotifierCtrlMockRecorder) Publish(ctx, accountID, noticeType, details any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Publish", reflect.TypeOf((*MockNotifierCtrl)(nil).Publish), ctx, accountID, noticeType, details)
}

// MockIDGeneratorCtrl is a mock of IDGenerator interface.
type MockIDGeneratorCtrl struct {
	ctrl     *gomock.Controller
	recorder *MockIDGeneratorCtrlMockRecorder
	isgomock struct{}
}

// MockIDGeneratorCtrlMockRecorder is the mock recorder for MockIDGeneratorCtrl.
type MockIDGeneratorCtrlMockRecorder struct {
	mock *MockIDGeneratorCtrl
}

// NewMockIDGeneratorCtrl creates a new mock instance.
func NewMockIDGeneratorCtrl(ctrl *gomock.Controller) *MockIDGeneratorCtrl {
	mock := &MockIDGeneratorCtrl{ctrl: ctrl}
	mock.recorder = &MockIDGeneratorCtrlMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockIDGeneratorCtrl) EXPECT() *MockIDGeneratorCtrlMockRecorder {
	return m.recorder
}

// Generate mocks base method.
func (m *MockIDGeneratorCtrl) Generate() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Generate")
	ret0, _ := ret[0].(string)
	return ret0
}

// Generate indicates an expected call of Generate.
func (mr *MockIDGeneratorCtrlMockRecorder) Generate() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Generate", reflect.TypeOf((*MockIDGeneratorCtrl)(nil).Generate))
}
