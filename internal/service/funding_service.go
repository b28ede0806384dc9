package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hevatrack/internal/errors"
	"hevatrack/internal/model"
	"hevatrack/internal/repository"
)

// FundingService owns the funding request state machine on a beneficiary:
// none -> pending -> {approved, declined}, with approved and declined
// terminal. All entry points share one transition function so the pending
// guard is enforced exactly once, and every operation takes the acting
// user explicitly.
type FundingService interface {
	SubmitRequest(ctx context.Context, actor model.Actor, beneficiaryID uint, amount *decimal.Decimal, notes string) (*model.Beneficiary, error)
	Approve(ctx context.Context, actor model.Actor, beneficiaryID uint, notes string) (*model.Beneficiary, error)
	Decline(ctx context.Context, actor model.Actor, beneficiaryID uint, notes string) (*model.Beneficiary, error)
	ApproveAllPending(ctx context.Context, actor model.Actor, notes string) (int, error)
	RecordFlow(ctx context.Context, actor model.Actor, input RecordFlowInput) (*model.FundingFlow, error)
	ToggleAuditFlag(ctx context.Context, actor model.Actor, flowID uint) (*model.FundingFlow, error)
}

// RecordFlowInput describes a manually reported ledger entry, for
// disbursements made outside the per-beneficiary request workflow.
type RecordFlowInput struct {
	ProgramName     string
	AllocatedAmount decimal.Decimal
	DisbursedAmount decimal.Decimal
	RecipientID     *uint
	Notes           string
}

type fundingService struct {
	beneficiaryRepo repository.BeneficiaryRepository
	flowRepo        repository.FundingFlowRepository
}

// NewFundingService creates the funding workflow service.
func NewFundingService(
	beneficiaryRepo repository.BeneficiaryRepository,
	flowRepo repository.FundingFlowRepository,
) FundingService {
	return &fundingService{
		beneficiaryRepo: beneficiaryRepo,
		flowRepo:        flowRepo,
	}
}

func roleIn(role model.Role, allowed ...model.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// SubmitRequest places or refreshes a funding request. Re-submission while
// pending overwrites amount and notes; approved and declined requests are
// final and cannot be re-opened.
func (s *fundingService) SubmitRequest(ctx context.Context, actor model.Actor, beneficiaryID uint, amount *decimal.Decimal, notes string) (*model.Beneficiary, error) {
	if !roleIn(actor.Role, model.RoleFieldAgent, model.RoleManager, model.RoleAdmin) {
		return nil, errors.ErrPermissionDenied
	}
	if amount == nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.ErrInvalidAmount
	}

	b, err := s.beneficiaryRepo.FindByID(ctx, beneficiaryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBeneficiaryNotFound
		}
		return nil, fmt.Errorf("load beneficiary: %w", err)
	}

	switch b.FundingStatus {
	case model.FundingStatusApproved, model.FundingStatusDeclined:
		return nil, errors.ErrInvalidState
	}

	b.FundingRequested = true
	b.FundingAmount = amount
	b.FundingStatus = model.FundingStatusPending
	b.FundingNotes = notes
	b.FundingApprovedBy = nil
	b.FundingApprovedDate = nil

	if err := s.beneficiaryRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("save funding request: %w", err)
	}
	return b, nil
}

// Approve decides a pending request favorably and appends the matching
// ledger entry. The status mutation and the ledger insert commit together
// or not at all.
func (s *fundingService) Approve(ctx context.Context, actor model.Actor, beneficiaryID uint, notes string) (*model.Beneficiary, error) {
	return s.decideOne(ctx, actor, beneficiaryID, model.FundingStatusApproved, notes)
}

// Decline decides a pending request unfavorably. No ledger entry is written.
func (s *fundingService) Decline(ctx context.Context, actor model.Actor, beneficiaryID uint, notes string) (*model.Beneficiary, error) {
	return s.decideOne(ctx, actor, beneficiaryID, model.FundingStatusDeclined, notes)
}

func (s *fundingService) decideOne(ctx context.Context, actor model.Actor, beneficiaryID uint, outcome model.FundingStatus, notes string) (*model.Beneficiary, error) {
	if !roleIn(actor.Role, model.RoleManager, model.RoleAdmin) {
		return nil, errors.ErrPermissionDenied
	}

	var decided *model.Beneficiary
	err := s.beneficiaryRepo.WithTransaction(ctx, func(ctx context.Context, beneficiaries repository.BeneficiaryRepository, flows repository.FundingFlowRepository) error {
		b, err := beneficiaries.FindByIDForUpdate(ctx, beneficiaryID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBeneficiaryNotFound
			}
			return fmt.Errorf("lock beneficiary: %w", err)
		}

		now := time.Now()
		if err := decide(b, outcome, actor, notes, now); err != nil {
			return err
		}
		if err := beneficiaries.Update(ctx, b); err != nil {
			return fmt.Errorf("save decision: %w", err)
		}
		if outcome == model.FundingStatusApproved {
			if err := flows.Create(ctx, disbursementFlow(b, actor, now)); err != nil {
				return fmt.Errorf("append funding flow: %w", err)
			}
		}
		decided = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// decide applies the shared transition guard and decision effect to a
// locked beneficiary row. Every decision path in the system funnels
// through here; there is no second, unguarded route.
func decide(b *model.Beneficiary, outcome model.FundingStatus, actor model.Actor, notes string, now time.Time) error {
	if !b.FundingRequested || b.FundingStatus != model.FundingStatusPending {
		return errors.ErrInvalidState
	}

	b.FundingStatus = outcome
	b.FundingApprovedBy = &actor.ID
	b.FundingApprovedDate = &now
	switch outcome {
	case model.FundingStatusApproved:
		b.FundingNotes = fmt.Sprintf("Approved by %s: %s", actor.FullName, notes)
	case model.FundingStatusDeclined:
		b.FundingNotes = fmt.Sprintf("Declined by %s: %s", actor.FullName, notes)
	}
	return nil
}

// disbursementFlow builds the ledger entry mirroring an approval: allocated
// and disbursed both equal the requested amount.
func disbursementFlow(b *model.Beneficiary, actor model.Actor, now time.Time) *model.FundingFlow {
	amount := decimal.Zero
	if b.FundingAmount != nil {
		amount = *b.FundingAmount
	}
	recipientID := b.ID
	return &model.FundingFlow{
		ProgramName:            fmt.Sprintf("Beneficiary Support - %s", b.Name),
		AllocatedAmount:        amount,
		DisbursedAmount:        amount,
		RecipientBeneficiaryID: &recipientID,
		DisbursementDate:       &now,
		ReportedBy:             actor.ID,
		Notes:                  fmt.Sprintf("Approved funding for %s", b.Name),
	}
}

// ApproveAllPending approves every currently pending request as one batch.
// A failure anywhere rolls the whole batch back: either all requests are
// approved with their ledger entries, or none are.
func (s *fundingService) ApproveAllPending(ctx context.Context, actor model.Actor, notes string) (int, error) {
	if !roleIn(actor.Role, model.RoleManager, model.RoleAdmin) {
		return 0, errors.ErrPermissionDenied
	}

	approved := 0
	err := s.beneficiaryRepo.WithTransaction(ctx, func(ctx context.Context, beneficiaries repository.BeneficiaryRepository, flows repository.FundingFlowRepository) error {
		pending, err := beneficiaries.ListPendingForUpdate(ctx)
		if err != nil {
			return fmt.Errorf("list pending requests: %w", err)
		}

		now := time.Now()
		for i := range pending {
			b := &pending[i]
			if err := decide(b, model.FundingStatusApproved, actor, notes, now); err != nil {
				return err
			}
			if err := beneficiaries.Update(ctx, b); err != nil {
				return fmt.Errorf("save decision for beneficiary %d: %w", b.ID, err)
			}
			if err := flows.Create(ctx, disbursementFlow(b, actor, now)); err != nil {
				return fmt.Errorf("append funding flow for beneficiary %d: %w", b.ID, err)
			}
			approved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return approved, nil
}

// RecordFlow appends a manually reported ledger entry.
func (s *fundingService) RecordFlow(ctx context.Context, actor model.Actor, input RecordFlowInput) (*model.FundingFlow, error) {
	if !roleIn(actor.Role, model.RoleManager, model.RoleAdmin) {
		return nil, errors.ErrPermissionDenied
	}
	if input.ProgramName == "" {
		return nil, errors.ErrInvalidInput
	}
	if input.AllocatedAmount.LessThanOrEqual(decimal.Zero) || input.DisbursedAmount.LessThan(decimal.Zero) {
		return nil, errors.ErrInvalidAmount
	}

	flow := &model.FundingFlow{
		ProgramName:            input.ProgramName,
		AllocatedAmount:        input.AllocatedAmount,
		DisbursedAmount:        input.DisbursedAmount,
		RecipientBeneficiaryID: input.RecipientID,
		ReportedBy:             actor.ID,
		Notes:                  input.Notes,
	}
	if err := s.flowRepo.Create(ctx, flow); err != nil {
		return nil, fmt.Errorf("record funding flow: %w", err)
	}
	return flow, nil
}

// ToggleAuditFlag flips the audit flag on a ledger entry. Administrative
// escape hatch; the only permitted mutation of an existing entry.
func (s *fundingService) ToggleAuditFlag(ctx context.Context, actor model.Actor, flowID uint) (*model.FundingFlow, error) {
	if actor.Role != model.RoleAdmin {
		return nil, errors.ErrPermissionDenied
	}

	flow, err := s.flowRepo.FindByID(ctx, flowID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrFlowNotFound
		}
		return nil, fmt.Errorf("load funding flow: %w", err)
	}

	flow.AuditFlag = !flow.AuditFlag
	if err := s.flowRepo.Update(ctx, flow); err != nil {
		return nil, fmt.Errorf("update audit flag: %w", err)
	}
	return flow, nil
}
