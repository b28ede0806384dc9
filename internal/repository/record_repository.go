package repository

import (
	"context"

	"gorm.io/gorm"

	"hevatrack/internal/model"
)

// FinancialRecordRepository persists financial inclusion records.
type FinancialRecordRepository interface {
	Create(ctx context.Context, rec *model.FinancialRecord) error
	ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]model.FinancialRecord, error)
	CountWithBankAccount(ctx context.Context) (int64, error)
}

type financialRecordRepository struct {
	db *gorm.DB
}

// NewFinancialRecordRepository creates a GORM-backed financial record repository.
func NewFinancialRecordRepository(db *gorm.DB) FinancialRecordRepository {
	return &financialRecordRepository{db: db}
}

func (r *financialRecordRepository) Create(ctx context.Context, rec *model.FinancialRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *financialRecordRepository) ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]model.FinancialRecord, error) {
	var items []model.FinancialRecord
	if err := r.db.WithContext(ctx).
		Where("beneficiary_id = ?", beneficiaryID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *financialRecordRepository) CountWithBankAccount(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.FinancialRecord{}).
		Where("has_bank_account = ?", true).Count(&n).Error
	return n, err
}

// DigitalAccessRepository persists device and internet access records.
type DigitalAccessRepository interface {
	Create(ctx context.Context, rec *model.DigitalAccess) error
	ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]model.DigitalAccess, error)
	CountWithSmartphone(ctx context.Context) (int64, error)
}

type digitalAccessRepository struct {
	db *gorm.DB
}

// NewDigitalAccessRepository creates a GORM-backed digital access repository.
func NewDigitalAccessRepository(db *gorm.DB) DigitalAccessRepository {
	return &digitalAccessRepository{db: db}
}

func (r *digitalAccessRepository) Create(ctx context.Context, rec *model.DigitalAccess) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *digitalAccessRepository) ListByBeneficiary(ctx context.Context, beneficiaryID uint) ([]model.DigitalAccess, error) {
	var items []model.DigitalAccess
	if err := r.db.WithContext(ctx).
		Where("beneficiary_id = ?", beneficiaryID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *digitalAccessRepository) CountWithSmartphone(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.DigitalAccess{}).
		Where("owns_smartphone = ?", true).Count(&n).Error
	return n, err
}

// CreativeBusinessRepository persists creative-sector business records.
type CreativeBusinessRepository interface {
	Create(ctx context.Context, biz *model.CreativeBusiness) error
	List(ctx context.Context) ([]model.CreativeBusiness, error)
}

type creativeBusinessRepository struct {
	db *gorm.DB
}

// NewCreativeBusinessRepository creates a GORM-backed creative business repository.
func NewCreativeBusinessRepository(db *gorm.DB) CreativeBusinessRepository {
	return &creativeBusinessRepository{db: db}
}

func (r *creativeBusinessRepository) Create(ctx context.Context, biz *model.CreativeBusiness) error {
	return r.db.WithContext(ctx).Create(biz).Error
}

func (r *creativeBusinessRepository) List(ctx context.Context) ([]model.CreativeBusiness, error) {
	var items []model.CreativeBusiness
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
