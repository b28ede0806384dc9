package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"hevatrack/internal/errors"
	"hevatrack/internal/model"
)

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func pendingBeneficiary(id uint, amount int64) *model.Beneficiary {
	return &model.Beneficiary{
		ID:               id,
		Name:             "Grace Wanjiru",
		FundingRequested: true,
		FundingAmount:    amountPtr(amount),
		FundingStatus:    model.FundingStatusPending,
	}
}

var (
	agentActor   = model.Actor{ID: 10, FullName: "Field Agent", Role: model.RoleFieldAgent}
	managerActor = model.Actor{ID: 20, FullName: "HEVA Manager", Role: model.RoleManager}
	adminActor   = model.Actor{ID: 30, FullName: "System Administrator", Role: model.RoleAdmin}
	analystActor = model.Actor{ID: 40, FullName: "Financial Analyst", Role: model.RoleAnalyst}
)

func TestFundingService_SubmitRequest(t *testing.T) {
	tests := []struct {
		name          string
		actor         model.Actor
		amount        *decimal.Decimal
		setupMock     func(*MockBeneficiaryRepository)
		expectedError error
	}{
		{
			name:   "new request moves to pending",
			actor:  agentActor,
			amount: amountPtr(15000),
			setupMock: func(m *MockBeneficiaryRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Beneficiary{ID: 1, Name: "Grace Wanjiru"}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Beneficiary")).Return(nil)
			},
		},
		{
			name:   "resubmission while pending overwrites",
			actor:  managerActor,
			amount: amountPtr(20000),
			setupMock: func(m *MockBeneficiaryRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(pendingBeneficiary(1, 15000), nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Beneficiary")).Return(nil)
			},
		},
		{
			name:          "analyst cannot submit",
			actor:         analystActor,
			amount:        amountPtr(5000),
			setupMock:     func(m *MockBeneficiaryRepository) {},
			expectedError: errors.ErrPermissionDenied,
		},
		{
			name:          "missing amount rejected",
			actor:         agentActor,
			amount:        nil,
			setupMock:     func(m *MockBeneficiaryRepository) {},
			expectedError: errors.ErrInvalidAmount,
		},
		{
			name:          "non positive amount rejected",
			actor:         agentActor,
			amount:        amountPtr(0),
			setupMock:     func(m *MockBeneficiaryRepository) {},
			expectedError: errors.ErrInvalidAmount,
		},
		{
			name:   "approved request cannot be reopened",
			actor:  agentActor,
			amount: amountPtr(5000),
			setupMock: func(m *MockBeneficiaryRepository) {
				b := pendingBeneficiary(1, 15000)
				b.FundingStatus = model.FundingStatusApproved
				m.On("FindByID", mock.Anything, uint(1)).Return(b, nil)
			},
			expectedError: errors.ErrInvalidState,
		},
		{
			name:   "declined request cannot be reopened",
			actor:  agentActor,
			amount: amountPtr(5000),
			setupMock: func(m *MockBeneficiaryRepository) {
				b := pendingBeneficiary(1, 15000)
				b.FundingStatus = model.FundingStatusDeclined
				m.On("FindByID", mock.Anything, uint(1)).Return(b, nil)
			},
			expectedError: errors.ErrInvalidState,
		},
		{
			name:   "unknown beneficiary",
			actor:  agentActor,
			amount: amountPtr(5000),
			setupMock: func(m *MockBeneficiaryRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrBeneficiaryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBeneficiaryRepository)
			mockFlows := new(MockFundingFlowRepository)
			tt.setupMock(mockRepo)

			svc := NewFundingService(mockRepo, mockFlows)
			b, err := svc.SubmitRequest(context.Background(), tt.actor, 1, tt.amount, "school fees")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, b)
			} else {
				assert.NoError(t, err)
				assert.True(t, b.FundingRequested)
				assert.Equal(t, model.FundingStatusPending, b.FundingStatus)
				assert.True(t, tt.amount.Equal(*b.FundingAmount))
				assert.Equal(t, "school fees", b.FundingNotes)
				assert.Nil(t, b.FundingApprovedBy)
				assert.Nil(t, b.FundingApprovedDate)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFundingService_Approve(t *testing.T) {
	mockFlows := new(MockFundingFlowRepository)
	mockRepo := &MockBeneficiaryRepository{TxFlows: mockFlows}

	mockRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockRepo.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(pendingBeneficiary(1, 15000), nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Beneficiary")).Return(nil)
	mockFlows.On("Create", mock.Anything, mock.AnythingOfType("*model.FundingFlow")).Return(nil)

	svc := NewFundingService(mockRepo, mockFlows)
	b, err := svc.Approve(context.Background(), managerActor, 1, "verified need")

	assert.NoError(t, err)
	assert.Equal(t, model.FundingStatusApproved, b.FundingStatus)
	assert.Equal(t, managerActor.ID, *b.FundingApprovedBy)
	assert.NotNil(t, b.FundingApprovedDate)
	assert.Equal(t, "Approved by HEVA Manager: verified need", b.FundingNotes)

	// Exactly one ledger entry, mirroring the approved amount.
	mockFlows.AssertNumberOfCalls(t, "Create", 1)
	flow := mockFlows.Calls[0].Arguments.Get(1).(*model.FundingFlow)
	assert.Equal(t, "Beneficiary Support - Grace Wanjiru", flow.ProgramName)
	assert.True(t, flow.AllocatedAmount.Equal(decimal.NewFromInt(15000)))
	assert.True(t, flow.DisbursedAmount.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, uint(1), *flow.RecipientBeneficiaryID)
	assert.Equal(t, managerActor.ID, flow.ReportedBy)
	assert.NotNil(t, flow.DisbursementDate)

	mockRepo.AssertExpectations(t)
	mockFlows.AssertExpectations(t)
}

func TestFundingService_ApproveTwiceFails(t *testing.T) {
	mockFlows := new(MockFundingFlowRepository)
	mockRepo := &MockBeneficiaryRepository{TxFlows: mockFlows}

	b := pendingBeneficiary(7, 15000)
	mockRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockRepo.On("FindByIDForUpdate", mock.Anything, uint(7)).Return(b, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Beneficiary")).Return(nil)
	mockFlows.On("Create", mock.Anything, mock.AnythingOfType("*model.FundingFlow")).Return(nil)

	svc := NewFundingService(mockRepo, mockFlows)

	_, err := svc.Approve(context.Background(), managerActor, 7, "first pass")
	assert.NoError(t, err)

	// The second decision sees the row already approved and is refused.
	_, err = svc.Approve(context.Background(), adminActor, 7, "second pass")
	assert.ErrorIs(t, err, errors.ErrInvalidState)

	mockFlows.AssertNumberOfCalls(t, "Create", 1)
}

func TestFundingService_Decline(t *testing.T) {
	mockFlows := new(MockFundingFlowRepository)
	mockRepo := &MockBeneficiaryRepository{TxFlows: mockFlows}

	mockRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockRepo.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(pendingBeneficiary(1, 15000), nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Beneficiary")).Return(nil)

	svc := NewFundingService(mockRepo, mockFlows)
	b, err := svc.Decline(context.Background(), adminActor, 1, "insufficient documentation")

	assert.NoError(t, err)
	assert.Equal(t, model.FundingStatusDeclined, b.FundingStatus)
	assert.Equal(t, "Declined by System Administrator: insufficient documentation", b.FundingNotes)

	// Declines never touch the ledger.
	mockFlows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestFundingService_DecidePermissions(t *testing.T) {
	for _, actor := range []model.Actor{agentActor, analystActor} {
		t.Run(string(actor.Role), func(t *testing.T) {
			mockFlows := new(MockFundingFlowRepository)
			mockRepo := &MockBeneficiaryRepository{TxFlows: mockFlows}

			svc := NewFundingService(mockRepo, mockFlows)

			_, err := svc.Approve(context.Background(), actor, 1, "")
			assert.ErrorIs(t, err, errors.ErrPermissionDenied)
			_, err = svc.Decline(context.Background(), actor, 1, "")
			assert.ErrorIs(t, err, errors.ErrPermissionDenied)
			_, err = svc.ApproveAllPending(context.Background(), actor, "")
			assert.ErrorIs(t, err, errors.ErrPermissionDenied)

			mockRepo.AssertNotCalled(t, "WithTransaction", mock.Anything)
		})
	}
}

func TestFundingService_ApproveAllPending(t *testing.T) {
	mockFlows := new(MockFundingFlowRepository)
	mockRepo := &MockBeneficiaryRepository{TxFlows: mockFlows}

	pending := []model.Beneficiary{
		*pendingBeneficiary(1, 5000),
		*pendingBeneficiary(2, 7500),
		*pendingBeneficiary(3, 10000),
	}
	mockRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockRepo.On("ListPendingForUpdate", mock.Anything).Return(pending, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Beneficiary")).Return(nil)
	mockFlows.On("Create", mock.Anything, mock.AnythingOfType("*model.FundingFlow")).Return(nil)

	svc := NewFundingService(mockRepo, mockFlows)
	n, err := svc.ApproveAllPending(context.Background(), managerActor, "Bulk approval")

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	mockRepo.AssertNumberOfCalls(t, "Update", 3)
	mockFlows.AssertNumberOfCalls(t, "Create", 3)
}

func TestFundingService_ApproveAllPendingRollsBack(t *testing.T) {
	mockFlows := new(MockFundingFlowRepository)
	mockRepo := &MockBeneficiaryRepository{TxFlows: mockFlows}

	pending := []model.Beneficiary{
		*pendingBeneficiary(1, 5000),
		*pendingBeneficiary(2, 7500),
	}
	mockRepo.On("WithTransaction", mock.Anything).Return(nil)
	mockRepo.On("ListPendingForUpdate", mock.Anything).Return(pending, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Beneficiary")).Return(nil)
	mockFlows.On("Create", mock.Anything, mock.AnythingOfType("*model.FundingFlow")).Return(nil).Once()
	mockFlows.On("Create", mock.Anything, mock.AnythingOfType("*model.FundingFlow")).Return(gorm.ErrInvalidDB)

	svc := NewFundingService(mockRepo, mockFlows)
	n, err := svc.ApproveAllPending(context.Background(), adminActor, "Bulk approval")

	assert.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestFundingService_RecordFlow(t *testing.T) {
	recipient := uint(5)
	tests := []struct {
		name          string
		actor         model.Actor
		input         RecordFlowInput
		expectedError error
	}{
		{
			name:  "manager records a flow",
			actor: managerActor,
			input: RecordFlowInput{
				ProgramName:     "Creative Grants 2026",
				AllocatedAmount: decimal.NewFromInt(100000),
				DisbursedAmount: decimal.NewFromInt(40000),
				RecipientID:     &recipient,
				Notes:           "Q1 tranche",
			},
		},
		{
			name:  "field agent denied",
			actor: agentActor,
			input: RecordFlowInput{
				ProgramName:     "Creative Grants 2026",
				AllocatedAmount: decimal.NewFromInt(100000),
				DisbursedAmount: decimal.NewFromInt(40000),
			},
			expectedError: errors.ErrPermissionDenied,
		},
		{
			name:  "program name required",
			actor: adminActor,
			input: RecordFlowInput{
				AllocatedAmount: decimal.NewFromInt(100000),
				DisbursedAmount: decimal.NewFromInt(40000),
			},
			expectedError: errors.ErrInvalidInput,
		},
		{
			name:  "allocation must be positive",
			actor: adminActor,
			input: RecordFlowInput{
				ProgramName:     "Creative Grants 2026",
				AllocatedAmount: decimal.Zero,
			},
			expectedError: errors.ErrInvalidAmount,
		},
		{
			name:  "disbursement cannot be negative",
			actor: adminActor,
			input: RecordFlowInput{
				ProgramName:     "Creative Grants 2026",
				AllocatedAmount: decimal.NewFromInt(100000),
				DisbursedAmount: decimal.NewFromInt(-1),
			},
			expectedError: errors.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBeneficiaryRepository)
			mockFlows := new(MockFundingFlowRepository)
			if tt.expectedError == nil {
				mockFlows.On("Create", mock.Anything, mock.AnythingOfType("*model.FundingFlow")).Return(nil)
			}

			svc := NewFundingService(mockRepo, mockFlows)
			flow, err := svc.RecordFlow(context.Background(), tt.actor, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, flow)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input.ProgramName, flow.ProgramName)
				assert.Equal(t, tt.actor.ID, flow.ReportedBy)
				assert.False(t, flow.AuditFlag)
			}

			mockFlows.AssertExpectations(t)
		})
	}
}

func TestFundingService_ToggleAuditFlag(t *testing.T) {
	t.Run("admin toggles flag", func(t *testing.T) {
		mockRepo := new(MockBeneficiaryRepository)
		mockFlows := new(MockFundingFlowRepository)
		mockFlows.On("FindByID", mock.Anything, uint(3)).Return(&model.FundingFlow{ID: 3, AuditFlag: false}, nil)
		mockFlows.On("Update", mock.Anything, mock.AnythingOfType("*model.FundingFlow")).Return(nil)

		svc := NewFundingService(mockRepo, mockFlows)
		flow, err := svc.ToggleAuditFlag(context.Background(), adminActor, 3)

		assert.NoError(t, err)
		assert.True(t, flow.AuditFlag)
		mockFlows.AssertExpectations(t)
	})

	t.Run("manager denied", func(t *testing.T) {
		mockRepo := new(MockBeneficiaryRepository)
		mockFlows := new(MockFundingFlowRepository)

		svc := NewFundingService(mockRepo, mockFlows)
		_, err := svc.ToggleAuditFlag(context.Background(), managerActor, 3)

		assert.ErrorIs(t, err, errors.ErrPermissionDenied)
		mockFlows.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown flow", func(t *testing.T) {
		mockRepo := new(MockBeneficiaryRepository)
		mockFlows := new(MockFundingFlowRepository)
		mockFlows.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewFundingService(mockRepo, mockFlows)
		_, err := svc.ToggleAuditFlag(context.Background(), adminActor, 99)

		assert.ErrorIs(t, err, errors.ErrFlowNotFound)
	})
}
