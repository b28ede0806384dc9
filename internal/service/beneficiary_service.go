package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hevatrack/internal/county"
	"hevatrack/internal/errors"
	"hevatrack/internal/model"
	"hevatrack/internal/repository"
)

// BeneficiaryInput carries the caller-supplied fields for registering or
// updating a case record. Funding fields are absent on purpose; only the
// funding workflow mutates those.
type BeneficiaryInput struct {
	Name              string
	Age               *int
	Gender            string
	VulnerabilityType model.VulnerabilityType
	Location          string
	County            string
	ContactInfo       string
	IsHighRisk        bool
	Notes             string
}

// BeneficiaryPage is one page of the beneficiary listing.
type BeneficiaryPage struct {
	Items   []model.Beneficiary `json:"items"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
}

// BeneficiaryService handles case registry CRUD and the attribute records
// hanging off a beneficiary.
type BeneficiaryService interface {
	Create(ctx context.Context, actor model.Actor, input BeneficiaryInput) (*model.Beneficiary, error)
	Update(ctx context.Context, actor model.Actor, id uint, input BeneficiaryInput) (*model.Beneficiary, error)
	Delete(ctx context.Context, actor model.Actor, id uint) error
	Get(ctx context.Context, id uint) (*model.Beneficiary, error)
	List(ctx context.Context, page, perPage int) (*BeneficiaryPage, error)
	ListAll(ctx context.Context) ([]model.Beneficiary, error)

	CreateAssessment(ctx context.Context, actor model.Actor, a *model.VulnerabilityAssessment) error
	ListAssessments(ctx context.Context, actor model.Actor) ([]model.VulnerabilityAssessment, error)
	CreateFinancialRecord(ctx context.Context, actor model.Actor, rec *model.FinancialRecord) error
	CreateDigitalAccess(ctx context.Context, actor model.Actor, rec *model.DigitalAccess) error
	CreateCreativeBusiness(ctx context.Context, actor model.Actor, biz *model.CreativeBusiness) error
	ListCreativeBusinesses(ctx context.Context) ([]model.CreativeBusiness, error)
}

type beneficiaryService struct {
	beneficiaryRepo repository.BeneficiaryRepository
	assessmentRepo  repository.AssessmentRepository
	financialRepo   repository.FinancialRecordRepository
	digitalRepo     repository.DigitalAccessRepository
	creativeRepo    repository.CreativeBusinessRepository
}

// NewBeneficiaryService creates a new beneficiary registry service.
func NewBeneficiaryService(
	beneficiaryRepo repository.BeneficiaryRepository,
	assessmentRepo repository.AssessmentRepository,
	financialRepo repository.FinancialRecordRepository,
	digitalRepo repository.DigitalAccessRepository,
	creativeRepo repository.CreativeBusinessRepository,
) BeneficiaryService {
	return &beneficiaryService{
		beneficiaryRepo: beneficiaryRepo,
		assessmentRepo:  assessmentRepo,
		financialRepo:   financialRepo,
		digitalRepo:     digitalRepo,
		creativeRepo:    creativeRepo,
	}
}

func canManageCases(role model.Role) bool {
	return roleIn(role, model.RoleAdmin, model.RoleFieldAgent)
}

func (s *beneficiaryService) Create(ctx context.Context, actor model.Actor, input BeneficiaryInput) (*model.Beneficiary, error) {
	if !canManageCases(actor.Role) {
		return nil, errors.ErrPermissionDenied
	}
	if input.Name == "" || input.VulnerabilityType == "" {
		return nil, errors.ErrInvalidInput
	}

	b := &model.Beneficiary{
		RegistrationDate:  time.Now(),
		Name:              input.Name,
		Age:               input.Age,
		Gender:            input.Gender,
		VulnerabilityType: input.VulnerabilityType,
		Location:          input.Location,
		County:            input.County,
		ContactInfo:       input.ContactInfo,
		IsHighRisk:        input.IsHighRisk,
		Notes:             input.Notes,
		FundingStatus:     model.FundingStatusNone,
	}
	if c := county.ByName(input.County); c != nil {
		b.CountyCode = c.Code
	}

	if err := s.beneficiaryRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create beneficiary: %w", err)
	}
	return b, nil
}

func (s *beneficiaryService) Update(ctx context.Context, actor model.Actor, id uint, input BeneficiaryInput) (*model.Beneficiary, error) {
	if !canManageCases(actor.Role) {
		return nil, errors.ErrPermissionDenied
	}

	b, err := s.beneficiaryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBeneficiaryNotFound
		}
		return nil, fmt.Errorf("load beneficiary: %w", err)
	}

	if input.Name != "" {
		b.Name = input.Name
	}
	if input.VulnerabilityType != "" {
		b.VulnerabilityType = input.VulnerabilityType
	}
	if input.Age != nil {
		b.Age = input.Age
	}
	if input.Gender != "" {
		b.Gender = input.Gender
	}
	if input.Location != "" {
		b.Location = input.Location
	}
	if input.County != "" {
		b.County = input.County
		if c := county.ByName(input.County); c != nil {
			b.CountyCode = c.Code
		}
	}
	if input.ContactInfo != "" {
		b.ContactInfo = input.ContactInfo
	}
	if input.Notes != "" {
		b.Notes = input.Notes
	}
	b.IsHighRisk = input.IsHighRisk

	if err := s.beneficiaryRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update beneficiary: %w", err)
	}
	return b, nil
}

func (s *beneficiaryService) Delete(ctx context.Context, actor model.Actor, id uint) error {
	if !canManageCases(actor.Role) {
		return errors.ErrPermissionDenied
	}
	b, err := s.beneficiaryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBeneficiaryNotFound
		}
		return fmt.Errorf("load beneficiary: %w", err)
	}
	// Ledger references must outlive the case record.
	if b.FundingStatus == model.FundingStatusApproved {
		return errors.ErrInvalidState
	}
	return s.beneficiaryRepo.Delete(ctx, id)
}

func (s *beneficiaryService) Get(ctx context.Context, id uint) (*model.Beneficiary, error) {
	b, err := s.beneficiaryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBeneficiaryNotFound
		}
		return nil, fmt.Errorf("load beneficiary: %w", err)
	}
	return b, nil
}

func (s *beneficiaryService) List(ctx context.Context, page, perPage int) (*BeneficiaryPage, error) {
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	items, total, err := s.beneficiaryRepo.List(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	return &BeneficiaryPage{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *beneficiaryService) ListAll(ctx context.Context) ([]model.Beneficiary, error) {
	return s.beneficiaryRepo.ListAll(ctx)
}

func (s *beneficiaryService) CreateAssessment(ctx context.Context, actor model.Actor, a *model.VulnerabilityAssessment) error {
	if !canManageCases(actor.Role) {
		return errors.ErrPermissionDenied
	}
	if a.BeneficiaryID == 0 {
		return errors.ErrInvalidInput
	}
	if _, err := s.beneficiaryRepo.FindByID(ctx, a.BeneficiaryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBeneficiaryNotFound
		}
		return fmt.Errorf("load beneficiary: %w", err)
	}
	a.AssessorID = actor.ID
	if a.AssessmentDate.IsZero() {
		a.AssessmentDate = time.Now()
	}
	return s.assessmentRepo.Create(ctx, a)
}

func (s *beneficiaryService) ListAssessments(ctx context.Context, actor model.Actor) ([]model.VulnerabilityAssessment, error) {
	return s.assessmentRepo.ListByAssessor(ctx, actor.ID, 0)
}

func (s *beneficiaryService) CreateFinancialRecord(ctx context.Context, actor model.Actor, rec *model.FinancialRecord) error {
	if !canManageCases(actor.Role) {
		return errors.ErrPermissionDenied
	}
	if rec.BeneficiaryID == 0 {
		return errors.ErrInvalidInput
	}
	rec.LastUpdated = time.Now()
	return s.financialRepo.Create(ctx, rec)
}

func (s *beneficiaryService) CreateDigitalAccess(ctx context.Context, actor model.Actor, rec *model.DigitalAccess) error {
	if !canManageCases(actor.Role) {
		return errors.ErrPermissionDenied
	}
	if rec.BeneficiaryID == 0 {
		return errors.ErrInvalidInput
	}
	rec.LastUpdated = time.Now()
	return s.digitalRepo.Create(ctx, rec)
}

func (s *beneficiaryService) CreateCreativeBusiness(ctx context.Context, actor model.Actor, biz *model.CreativeBusiness) error {
	if !canManageCases(actor.Role) {
		return errors.ErrPermissionDenied
	}
	if biz.OwnerID == 0 || biz.BusinessModel == "" || biz.Sector == "" {
		return errors.ErrInvalidInput
	}
	return s.creativeRepo.Create(ctx, biz)
}

func (s *beneficiaryService) ListCreativeBusinesses(ctx context.Context) ([]model.CreativeBusiness, error) {
	return s.creativeRepo.List(ctx)
}
