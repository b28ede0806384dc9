package repository

import (
	"context"

	"gorm.io/gorm"

	"hevatrack/internal/model"
)

// ScoreAverages holds mean assessment scores across all assessments.
type ScoreAverages struct {
	Poverty       float64 `json:"poverty"`
	Literacy      float64 `json:"literacy"`
	DigitalAccess float64 `json:"digital_access"`
}

// AssessmentRepository defines vulnerability assessment persistence operations.
type AssessmentRepository interface {
	Create(ctx context.Context, a *model.VulnerabilityAssessment) error
	ListByAssessor(ctx context.Context, assessorID uint, limit int) ([]model.VulnerabilityAssessment, error)
	Count(ctx context.Context) (int64, error)
	CountByAssessorSince(ctx context.Context, assessorID uint, since string) (int64, error)
	CountBetween(ctx context.Context, start, end string) (int64, error)
	Averages(ctx context.Context) (*ScoreAverages, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository creates a GORM-backed assessment repository.
func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, a *model.VulnerabilityAssessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assessmentRepository) ListByAssessor(ctx context.Context, assessorID uint, limit int) ([]model.VulnerabilityAssessment, error) {
	q := r.db.WithContext(ctx).
		Preload("Beneficiary").
		Where("assessor_id = ?", assessorID).
		Order("assessment_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var items []model.VulnerabilityAssessment
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *assessmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VulnerabilityAssessment{}).Count(&n).Error
	return n, err
}

func (r *assessmentRepository) CountByAssessorSince(ctx context.Context, assessorID uint, since string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VulnerabilityAssessment{}).
		Where("assessor_id = ? AND assessment_date >= ?", assessorID, since).
		Count(&n).Error
	return n, err
}

func (r *assessmentRepository) CountBetween(ctx context.Context, start, end string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.VulnerabilityAssessment{}).
		Where("assessment_date >= ? AND assessment_date < ?", start, end).
		Count(&n).Error
	return n, err
}

func (r *assessmentRepository) Averages(ctx context.Context) (*ScoreAverages, error) {
	var raw struct {
		Poverty       float64
		Literacy      float64
		DigitalAccess float64
	}
	err := r.db.WithContext(ctx).Model(&model.VulnerabilityAssessment{}).
		Select("COALESCE(AVG(poverty_score), 0) AS poverty, COALESCE(AVG(literacy_score), 0) AS literacy, COALESCE(AVG(digital_access_score), 0) AS digital_access").
		Scan(&raw).Error
	if err != nil {
		return nil, err
	}
	return &ScoreAverages{
		Poverty:       raw.Poverty,
		Literacy:      raw.Literacy,
		DigitalAccess: raw.DigitalAccess,
	}, nil
}
