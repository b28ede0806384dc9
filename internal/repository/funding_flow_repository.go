package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hevatrack/internal/model"
)

// FundingFlowRepository defines funding ledger persistence operations.
// The ledger is append-only; Update exists solely for the admin
// audit-flag toggle.
type FundingFlowRepository interface {
	Create(ctx context.Context, flow *model.FundingFlow) error
	Update(ctx context.Context, flow *model.FundingFlow) error
	FindByID(ctx context.Context, id uint) (*model.FundingFlow, error)
	List(ctx context.Context) ([]model.FundingFlow, error)
	ListRecent(ctx context.Context, limit int) ([]model.FundingFlow, error)
	Count(ctx context.Context) (int64, error)
	CountDistinctPrograms(ctx context.Context) (int64, error)
	SumAllocated(ctx context.Context) (decimal.Decimal, error)
	SumDisbursed(ctx context.Context) (decimal.Decimal, error)
}

type fundingFlowRepository struct {
	db *gorm.DB
}

// NewFundingFlowRepository creates a GORM-backed funding flow repository.
func NewFundingFlowRepository(db *gorm.DB) FundingFlowRepository {
	return &fundingFlowRepository{db: db}
}

func (r *fundingFlowRepository) Create(ctx context.Context, flow *model.FundingFlow) error {
	return r.db.WithContext(ctx).Create(flow).Error
}

func (r *fundingFlowRepository) Update(ctx context.Context, flow *model.FundingFlow) error {
	return r.db.WithContext(ctx).Save(flow).Error
}

func (r *fundingFlowRepository) FindByID(ctx context.Context, id uint) (*model.FundingFlow, error) {
	var flow model.FundingFlow
	if err := r.db.WithContext(ctx).First(&flow, id).Error; err != nil {
		return nil, err
	}
	return &flow, nil
}

func (r *fundingFlowRepository) List(ctx context.Context) ([]model.FundingFlow, error) {
	var flows []model.FundingFlow
	if err := r.db.WithContext(ctx).Order("id").Find(&flows).Error; err != nil {
		return nil, err
	}
	return flows, nil
}

func (r *fundingFlowRepository) ListRecent(ctx context.Context, limit int) ([]model.FundingFlow, error) {
	if limit < 1 {
		limit = 10
	}
	var flows []model.FundingFlow
	if err := r.db.WithContext(ctx).
		Order("disbursement_date DESC").
		Limit(limit).
		Find(&flows).Error; err != nil {
		return nil, err
	}
	return flows, nil
}

func (r *fundingFlowRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.FundingFlow{}).Count(&n).Error
	return n, err
}

func (r *fundingFlowRepository) CountDistinctPrograms(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.FundingFlow{}).
		Distinct("program_name").Count(&n).Error
	return n, err
}

func (r *fundingFlowRepository) SumAllocated(ctx context.Context) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "allocated_amount")
}

func (r *fundingFlowRepository) SumDisbursed(ctx context.Context) (decimal.Decimal, error) {
	return r.sumColumn(ctx, "disbursed_amount")
}

func (r *fundingFlowRepository) sumColumn(ctx context.Context, column string) (decimal.Decimal, error) {
	var raw struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.FundingFlow{}).
		Select("COALESCE(SUM(" + column + "), 0) AS total").
		Scan(&raw).Error
	return raw.Total, err
}
