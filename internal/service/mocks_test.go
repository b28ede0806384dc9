package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"hevatrack/internal/model"
	"hevatrack/internal/repository"
)

// MockBeneficiaryRepository is a mock implementation of BeneficiaryRepository.
type MockBeneficiaryRepository struct {
	mock.Mock

	// TxFlows is handed to the WithTransaction callback as the
	// transaction-scoped flow repository.
	TxFlows repository.FundingFlowRepository
}

func (m *MockBeneficiaryRepository) Create(ctx context.Context, b *model.Beneficiary) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) Update(ctx context.Context, b *model.Beneficiary) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBeneficiaryRepository) FindByID(ctx context.Context, id uint) (*model.Beneficiary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Beneficiary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) List(ctx context.Context, page, perPage int) ([]model.Beneficiary, int64, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Beneficiary), args.Get(1).(int64), args.Error(2)
}

func (m *MockBeneficiaryRepository) ListAll(ctx context.Context) ([]model.Beneficiary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) ListRequested(ctx context.Context) ([]model.Beneficiary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) ListByFundingStatus(ctx context.Context, status model.FundingStatus) ([]model.Beneficiary, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) ListPendingForUpdate(ctx context.Context) ([]model.Beneficiary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBeneficiaryRepository) CountHighRisk(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBeneficiaryRepository) CountRequested(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBeneficiaryRepository) CountByFundingStatus(ctx context.Context, status model.FundingStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBeneficiaryRepository) CountRegisteredBetween(ctx context.Context, start, end string) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBeneficiaryRepository) SumApprovedAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBeneficiaryRepository) DistributionBy(ctx context.Context, column string) ([]repository.CountRow, error) {
	args := m.Called(ctx, column)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CountRow), args.Error(1)
}

// WithTransaction runs the callback against this mock and TxFlows, mirroring
// how the real implementation hands out transaction-scoped repositories. The
// registered expectation's error, if any, is returned without running fn, to
// simulate a transaction that cannot start.
func (m *MockBeneficiaryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, beneficiaries repository.BeneficiaryRepository, flows repository.FundingFlowRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m, m.TxFlows)
}

// MockFundingFlowRepository is a mock implementation of FundingFlowRepository.
type MockFundingFlowRepository struct {
	mock.Mock
}

func (m *MockFundingFlowRepository) Create(ctx context.Context, flow *model.FundingFlow) error {
	args := m.Called(ctx, flow)
	return args.Error(0)
}

func (m *MockFundingFlowRepository) Update(ctx context.Context, flow *model.FundingFlow) error {
	args := m.Called(ctx, flow)
	return args.Error(0)
}

func (m *MockFundingFlowRepository) FindByID(ctx context.Context, id uint) (*model.FundingFlow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FundingFlow), args.Error(1)
}

func (m *MockFundingFlowRepository) List(ctx context.Context) ([]model.FundingFlow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FundingFlow), args.Error(1)
}

func (m *MockFundingFlowRepository) ListRecent(ctx context.Context, limit int) ([]model.FundingFlow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FundingFlow), args.Error(1)
}

func (m *MockFundingFlowRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFundingFlowRepository) CountDistinctPrograms(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFundingFlowRepository) SumAllocated(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockFundingFlowRepository) SumDisbursed(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// MockAssessmentRepository is a mock implementation of AssessmentRepository.
type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, a *model.VulnerabilityAssessment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssessmentRepository) ListByAssessor(ctx context.Context, assessorID uint, limit int) ([]model.VulnerabilityAssessment, error) {
	args := m.Called(ctx, assessorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VulnerabilityAssessment), args.Error(1)
}

func (m *MockAssessmentRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssessmentRepository) CountByAssessorSince(ctx context.Context, assessorID uint, since string) (int64, error) {
	args := m.Called(ctx, assessorID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssessmentRepository) CountBetween(ctx context.Context, start, end string) (int64, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssessmentRepository) Averages(ctx context.Context) (*repository.ScoreAverages, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ScoreAverages), args.Error(1)
}

// MockFinancialRecordRepository is a mock implementation of FinancialRecordRepository.
type MockFinancialRecordRepository struct {
	mock.Mock
}

func (m *MockFinancialRecordRepository) Create(ctx context.Context, rec *model.FinancialRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockFinancialRecordRepository) ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]model.FinancialRecord, error) {
	args := m.Called(ctx, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FinancialRecord), args.Error(1)
}

func (m *MockFinancialRecordRepository) CountWithBankAccount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockDigitalAccessRepository is a mock implementation of DigitalAccessRepository.
type MockDigitalAccessRepository struct {
	mock.Mock
}

func (m *MockDigitalAccessRepository) Create(ctx context.Context, rec *model.DigitalAccess) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockDigitalAccessRepository) ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]model.DigitalAccess, error) {
	args := m.Called(ctx, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DigitalAccess), args.Error(1)
}

func (m *MockDigitalAccessRepository) CountWithSmartphone(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCreativeBusinessRepository is a mock implementation of CreativeBusinessRepository.
type MockCreativeBusinessRepository struct {
	mock.Mock
}

func (m *MockCreativeBusinessRepository) Create(ctx context.Context, biz *model.CreativeBusiness) error {
	args := m.Called(ctx, biz)
	return args.Error(0)
}

func (m *MockCreativeBusinessRepository) List(ctx context.Context) ([]model.CreativeBusiness, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CreativeBusiness), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
