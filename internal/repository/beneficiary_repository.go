package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hevatrack/internal/model"
)

// CountRow is one bucket of a group-by aggregation.
type CountRow struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// BeneficiaryRepository defines beneficiary persistence operations.
type BeneficiaryRepository interface {
	Create(ctx context.Context, b *model.Beneficiary) error
	Update(ctx context.Context, b *model.Beneficiary) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Beneficiary, error)
	// FindByIDForUpdate takes a row-level lock; callers use it inside
	// WithTransaction so funding transition guards are race free.
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Beneficiary, error)
	List(ctx context.Context, page, perPage int) ([]model.Beneficiary, int64, error)
	ListAll(ctx context.Context) ([]model.Beneficiary, error)
	ListRequested(ctx context.Context) ([]model.Beneficiary, error)
	ListByFundingStatus(ctx context.Context, status model.FundingStatus) ([]model.Beneficiary, error)
	ListPendingForUpdate(ctx context.Context) ([]model.Beneficiary, error)
	Count(ctx context.Context) (int64, error)
	CountHighRisk(ctx context.Context) (int64, error)
	CountRequested(ctx context.Context) (int64, error)
	CountByFundingStatus(ctx context.Context, status model.FundingStatus) (int64, error)
	CountRegisteredBetween(ctx context.Context, start, end string) (int64, error)
	SumApprovedAmount(ctx context.Context) (decimal.Decimal, error)
	DistributionBy(ctx context.Context, column string) ([]CountRow, error)

	// WithTransaction runs fn against transaction-scoped beneficiary and
	// funding flow repositories. Everything fn writes commits together or
	// not at all.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, beneficiaries BeneficiaryRepository, flows FundingFlowRepository) error) error
}

type beneficiaryRepository struct {
	db *gorm.DB
}

// NewBeneficiaryRepository creates a GORM-backed beneficiary repository.
func NewBeneficiaryRepository(db *gorm.DB) BeneficiaryRepository {
	return &beneficiaryRepository{db: db}
}

func (r *beneficiaryRepository) Create(ctx context.Context, b *model.Beneficiary) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *beneficiaryRepository) Update(ctx context.Context, b *model.Beneficiary) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *beneficiaryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Beneficiary{}, id).Error
}

func (r *beneficiaryRepository) FindByID(ctx context.Context, id uint) (*model.Beneficiary, error) {
	var b model.Beneficiary
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *beneficiaryRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Beneficiary, error) {
	var b model.Beneficiary
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *beneficiaryRepository) List(ctx context.Context, page, perPage int) ([]model.Beneficiary, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Beneficiary{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []model.Beneficiary
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *beneficiaryRepository) ListAll(ctx context.Context) ([]model.Beneficiary, error) {
	var items []model.Beneficiary
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *beneficiaryRepository) ListRequested(ctx context.Context) ([]model.Beneficiary, error) {
	var items []model.Beneficiary
	if err := r.db.WithContext(ctx).
		Where("funding_requested = ?", true).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *beneficiaryRepository) ListByFundingStatus(ctx context.Context, status model.FundingStatus) ([]model.Beneficiary, error) {
	var items []model.Beneficiary
	if err := r.db.WithContext(ctx).
		Where("funding_requested = ? AND funding_status = ?", true, status).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *beneficiaryRepository) ListPendingForUpdate(ctx context.Context) ([]model.Beneficiary, error) {
	var items []model.Beneficiary
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("funding_requested = ? AND funding_status = ?", true, model.FundingStatusPending).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *beneficiaryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Beneficiary{}).Count(&n).Error
	return n, err
}

func (r *beneficiaryRepository) CountHighRisk(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Beneficiary{}).
		Where("is_high_risk = ?", true).Count(&n).Error
	return n, err
}

func (r *beneficiaryRepository) CountRequested(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Beneficiary{}).
		Where("funding_requested = ?", true).Count(&n).Error
	return n, err
}

func (r *beneficiaryRepository) CountByFundingStatus(ctx context.Context, status model.FundingStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Beneficiary{}).
		Where("funding_requested = ? AND funding_status = ?", true, status).Count(&n).Error
	return n, err
}

func (r *beneficiaryRepository) CountRegisteredBetween(ctx context.Context, start, end string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Beneficiary{}).
		Where("registration_date >= ? AND registration_date < ?", start, end).Count(&n).Error
	return n, err
}

func (r *beneficiaryRepository) SumApprovedAmount(ctx context.Context) (decimal.Decimal, error) {
	var raw struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Beneficiary{}).
		Select("COALESCE(SUM(funding_amount), 0) AS total").
		Where("funding_status = ?", model.FundingStatusApproved).
		Scan(&raw).Error
	return raw.Total, err
}

// DistributionBy groups beneficiaries by one of a fixed set of columns.
// The column is validated against an allow list; it never comes from user
// input unchecked.
func (r *beneficiaryRepository) DistributionBy(ctx context.Context, column string) ([]CountRow, error) {
	switch column {
	case "gender", "county", "vulnerability_type", "funding_status":
	default:
		return nil, gorm.ErrInvalidField
	}
	var rows []CountRow
	err := r.db.WithContext(ctx).Model(&model.Beneficiary{}).
		Select(column + " AS label, COUNT(id) AS count").
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *beneficiaryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, beneficiaries BeneficiaryRepository, flows FundingFlowRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &beneficiaryRepository{db: tx}, &fundingFlowRepository{db: tx})
	})
}
