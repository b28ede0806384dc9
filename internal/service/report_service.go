package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hevatrack/internal/cache"
	"hevatrack/internal/errors"
	"hevatrack/internal/model"
	"hevatrack/internal/repository"
)

const (
	managerDashboardCacheKey = "dashboard:manager"
	analystDashboardCacheKey = "dashboard:analyst"
)

// FundingStats is the aggregate view across all funding requests.
type FundingStats struct {
	TotalRequests       int64               `json:"total_requests"`
	ApprovedRequests    int64               `json:"approved_requests"`
	DeclinedRequests    int64               `json:"declined_requests"`
	PendingRequests     int64               `json:"pending_requests"`
	TotalApprovedAmount decimal.Decimal     `json:"total_approved_amount"`
	RecentFlows         []model.FundingFlow `json:"recent_flows"`
}

// FundingReport groups requested beneficiaries by decision status.
type FundingReport struct {
	Summary struct {
		TotalRequests       int             `json:"total_requests"`
		ApprovedCount       int             `json:"approved_count"`
		PendingCount        int             `json:"pending_count"`
		DeclinedCount       int             `json:"declined_count"`
		TotalApprovedAmount decimal.Decimal `json:"total_approved_amount"`
		TotalPendingAmount  decimal.Decimal `json:"total_pending_amount"`
	} `json:"summary"`
	Approved    []model.Beneficiary `json:"approved_beneficiaries"`
	Pending     []model.Beneficiary `json:"pending_beneficiaries"`
	Declined    []model.Beneficiary `json:"declined_beneficiaries"`
	GeneratedAt time.Time           `json:"report_generated_at"`
}

// FieldAgentStats is the field agent dashboard payload.
type FieldAgentStats struct {
	TotalBeneficiaries        int64                `json:"total_beneficiaries"`
	AssessmentsThisMonth      int64                `json:"assessments_this_month"`
	HighRiskCases             int64                `json:"high_risk_cases"`
	GenderDistribution        []repository.CountRow `json:"gender_distribution"`
	RegionDistribution        []repository.CountRow `json:"region_distribution"`
	VulnerabilityDistribution []repository.CountRow `json:"vulnerability_distribution"`
	LastUpdated               time.Time            `json:"last_updated"`
}

// MonthlyTrends carries per-month counters for the last six months.
type MonthlyTrends struct {
	Labels        []string `json:"labels"`
	Beneficiaries []int64  `json:"beneficiaries"`
	Assessments   []int64  `json:"assessments"`
}

// ManagerDashboard is the strategic overview payload.
type ManagerDashboard struct {
	TotalBeneficiaries  int64                 `json:"total_beneficiaries"`
	ActivePrograms      int64                 `json:"active_programs"`
	FundUtilizationPct  float64               `json:"fund_utilization"`
	ImpactScore         float64               `json:"impact_score"`
	FundingDistribution []repository.CountRow `json:"funding_distribution"`
	RegionDistribution  []repository.CountRow `json:"regional_distribution"`
	MonthlyTrends       MonthlyTrends         `json:"monthly_trends"`
}

// AnalystDashboard is the analyst overview payload.
type AnalystDashboard struct {
	TotalBeneficiaries        int64                     `json:"total_beneficiaries"`
	TotalAssessments          int64                     `json:"total_assessments"`
	HighRiskCases             int64                     `json:"high_risk_cases"`
	AvgVulnerabilityScore     float64                   `json:"avg_vulnerability_score"`
	AssessmentScores          *repository.ScoreAverages `json:"assessment_scores"`
	VulnerabilityDistribution []repository.CountRow     `json:"vulnerability_distribution"`
	GeographicDistribution    []repository.CountRow     `json:"geographic_distribution"`
	MonthlyTrends             MonthlyTrends             `json:"monthly_trends"`
}

// ReportService serves read-only aggregates for the role dashboards. It
// reflects committed state at query time; it never writes to the registry
// or the ledger.
type ReportService interface {
	FundingStats(ctx context.Context, actor model.Actor) (*FundingStats, error)
	PendingRequests(ctx context.Context, actor model.Actor) ([]model.Beneficiary, error)
	FundingTracking(ctx context.Context, actor model.Actor) ([]model.Beneficiary, error)
	FundingReport(ctx context.Context, actor model.Actor) (*FundingReport, error)
	FieldAgentStats(ctx context.Context, actor model.Actor) (*FieldAgentStats, error)
	ManagerDashboard(ctx context.Context, actor model.Actor) (*ManagerDashboard, error)
	AnalystDashboard(ctx context.Context, actor model.Actor) (*AnalystDashboard, error)
}

type reportService struct {
	beneficiaryRepo repository.BeneficiaryRepository
	flowRepo        repository.FundingFlowRepository
	assessmentRepo  repository.AssessmentRepository
	financialRepo   repository.FinancialRecordRepository
	digitalRepo     repository.DigitalAccessRepository
	cache           *cache.Client
	dashboardTTL    time.Duration
}

// NewReportService creates a new reporting service.
func NewReportService(
	beneficiaryRepo repository.BeneficiaryRepository,
	flowRepo repository.FundingFlowRepository,
	assessmentRepo repository.AssessmentRepository,
	financialRepo repository.FinancialRecordRepository,
	digitalRepo repository.DigitalAccessRepository,
	cacheClient *cache.Client,
	dashboardTTL time.Duration,
) ReportService {
	if dashboardTTL <= 0 {
		dashboardTTL = time.Minute
	}
	return &reportService{
		beneficiaryRepo: beneficiaryRepo,
		flowRepo:        flowRepo,
		assessmentRepo:  assessmentRepo,
		financialRepo:   financialRepo,
		digitalRepo:     digitalRepo,
		cache:           cacheClient,
		dashboardTTL:    dashboardTTL,
	}
}

func (s *reportService) FundingStats(ctx context.Context, actor model.Actor) (*FundingStats, error) {
	if !roleIn(actor.Role, model.RoleAdmin, model.RoleManager, model.RoleFieldAgent) {
		return nil, errors.ErrPermissionDenied
	}

	stats := &FundingStats{}
	var err error
	if stats.TotalRequests, err = s.beneficiaryRepo.CountRequested(ctx); err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}
	if stats.ApprovedRequests, err = s.beneficiaryRepo.CountByFundingStatus(ctx, model.FundingStatusApproved); err != nil {
		return nil, fmt.Errorf("count approved: %w", err)
	}
	if stats.DeclinedRequests, err = s.beneficiaryRepo.CountByFundingStatus(ctx, model.FundingStatusDeclined); err != nil {
		return nil, fmt.Errorf("count declined: %w", err)
	}
	if stats.PendingRequests, err = s.beneficiaryRepo.CountByFundingStatus(ctx, model.FundingStatusPending); err != nil {
		return nil, fmt.Errorf("count pending: %w", err)
	}
	if stats.TotalApprovedAmount, err = s.beneficiaryRepo.SumApprovedAmount(ctx); err != nil {
		return nil, fmt.Errorf("sum approved amount: %w", err)
	}
	if stats.RecentFlows, err = s.flowRepo.ListRecent(ctx, 10); err != nil {
		return nil, fmt.Errorf("list recent flows: %w", err)
	}
	return stats, nil
}

func (s *reportService) PendingRequests(ctx context.Context, actor model.Actor) ([]model.Beneficiary, error) {
	if !roleIn(actor.Role, model.RoleAdmin, model.RoleManager) {
		return nil, errors.ErrPermissionDenied
	}
	return s.beneficiaryRepo.ListByFundingStatus(ctx, model.FundingStatusPending)
}

func (s *reportService) FundingTracking(ctx context.Context, actor model.Actor) ([]model.Beneficiary, error) {
	if !roleIn(actor.Role, model.RoleAdmin, model.RoleManager, model.RoleFieldAgent) {
		return nil, errors.ErrPermissionDenied
	}
	return s.beneficiaryRepo.ListRequested(ctx)
}

func (s *reportService) FundingReport(ctx context.Context, actor model.Actor) (*FundingReport, error) {
	if !roleIn(actor.Role, model.RoleAdmin, model.RoleManager, model.RoleFieldAgent) {
		return nil, errors.ErrPermissionDenied
	}

	all, err := s.beneficiaryRepo.ListRequested(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requested: %w", err)
	}

	report := &FundingReport{GeneratedAt: time.Now()}
	report.Summary.TotalApprovedAmount = decimal.Zero
	report.Summary.TotalPendingAmount = decimal.Zero
	for _, b := range all {
		amount := decimal.Zero
		if b.FundingAmount != nil {
			amount = *b.FundingAmount
		}
		switch b.FundingStatus {
		case model.FundingStatusApproved:
			report.Approved = append(report.Approved, b)
			report.Summary.TotalApprovedAmount = report.Summary.TotalApprovedAmount.Add(amount)
		case model.FundingStatusPending:
			report.Pending = append(report.Pending, b)
			report.Summary.TotalPendingAmount = report.Summary.TotalPendingAmount.Add(amount)
		case model.FundingStatusDeclined:
			report.Declined = append(report.Declined, b)
		}
	}
	report.Summary.TotalRequests = len(all)
	report.Summary.ApprovedCount = len(report.Approved)
	report.Summary.PendingCount = len(report.Pending)
	report.Summary.DeclinedCount = len(report.Declined)
	return report, nil
}

func (s *reportService) FieldAgentStats(ctx context.Context, actor model.Actor) (*FieldAgentStats, error) {
	if !roleIn(actor.Role, model.RoleAdmin, model.RoleManager, model.RoleFieldAgent) {
		return nil, errors.ErrPermissionDenied
	}

	stats := &FieldAgentStats{LastUpdated: time.Now()}
	var err error
	if stats.TotalBeneficiaries, err = s.beneficiaryRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count beneficiaries: %w", err)
	}
	startOfMonth := monthStart(time.Now())
	if stats.AssessmentsThisMonth, err = s.assessmentRepo.CountByAssessorSince(ctx, actor.ID, startOfMonth.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("count assessments: %w", err)
	}
	if stats.HighRiskCases, err = s.beneficiaryRepo.CountHighRisk(ctx); err != nil {
		return nil, fmt.Errorf("count high risk: %w", err)
	}
	if stats.GenderDistribution, err = s.beneficiaryRepo.DistributionBy(ctx, "gender"); err != nil {
		return nil, fmt.Errorf("gender distribution: %w", err)
	}
	if stats.RegionDistribution, err = s.beneficiaryRepo.DistributionBy(ctx, "county"); err != nil {
		return nil, fmt.Errorf("county distribution: %w", err)
	}
	if stats.VulnerabilityDistribution, err = s.beneficiaryRepo.DistributionBy(ctx, "vulnerability_type"); err != nil {
		return nil, fmt.Errorf("vulnerability distribution: %w", err)
	}
	return stats, nil
}

func (s *reportService) ManagerDashboard(ctx context.Context, actor model.Actor) (*ManagerDashboard, error) {
	if !roleIn(actor.Role, model.RoleAdmin, model.RoleManager) {
		return nil, errors.ErrPermissionDenied
	}

	var cached ManagerDashboard
	if hit, _ := s.cache.GetJSON(ctx, managerDashboardCacheKey, &cached); hit {
		return &cached, nil
	}

	d := &ManagerDashboard{}
	var err error
	if d.TotalBeneficiaries, err = s.beneficiaryRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count beneficiaries: %w", err)
	}
	if d.ActivePrograms, err = s.flowRepo.CountDistinctPrograms(ctx); err != nil {
		return nil, fmt.Errorf("count programs: %w", err)
	}
	if d.FundUtilizationPct, err = s.fundUtilization(ctx); err != nil {
		return nil, err
	}
	if d.ImpactScore, err = s.impactScore(ctx, d.TotalBeneficiaries); err != nil {
		return nil, err
	}
	if d.FundingDistribution, err = s.beneficiaryRepo.DistributionBy(ctx, "funding_status"); err != nil {
		return nil, fmt.Errorf("funding distribution: %w", err)
	}
	if d.RegionDistribution, err = s.beneficiaryRepo.DistributionBy(ctx, "county"); err != nil {
		return nil, fmt.Errorf("county distribution: %w", err)
	}
	if d.MonthlyTrends, err = s.monthlyTrends(ctx); err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, managerDashboardCacheKey, d, s.dashboardTTL)
	return d, nil
}

func (s *reportService) AnalystDashboard(ctx context.Context, actor model.Actor) (*AnalystDashboard, error) {
	if actor.Role != model.RoleAnalyst {
		return nil, errors.ErrPermissionDenied
	}

	var cached AnalystDashboard
	if hit, _ := s.cache.GetJSON(ctx, analystDashboardCacheKey, &cached); hit {
		return &cached, nil
	}

	d := &AnalystDashboard{}
	var err error
	if d.TotalBeneficiaries, err = s.beneficiaryRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count beneficiaries: %w", err)
	}
	if d.TotalAssessments, err = s.assessmentRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count assessments: %w", err)
	}
	if d.HighRiskCases, err = s.beneficiaryRepo.CountHighRisk(ctx); err != nil {
		return nil, fmt.Errorf("count high risk: %w", err)
	}
	if d.AssessmentScores, err = s.assessmentRepo.Averages(ctx); err != nil {
		return nil, fmt.Errorf("assessment averages: %w", err)
	}
	d.AvgVulnerabilityScore = (d.AssessmentScores.Poverty + d.AssessmentScores.Literacy + d.AssessmentScores.DigitalAccess) / 3
	if d.VulnerabilityDistribution, err = s.beneficiaryRepo.DistributionBy(ctx, "vulnerability_type"); err != nil {
		return nil, fmt.Errorf("vulnerability distribution: %w", err)
	}
	if d.GeographicDistribution, err = s.beneficiaryRepo.DistributionBy(ctx, "county"); err != nil {
		return nil, fmt.Errorf("county distribution: %w", err)
	}
	if d.MonthlyTrends, err = s.monthlyTrends(ctx); err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, analystDashboardCacheKey, d, s.dashboardTTL)
	return d, nil
}

// fundUtilization is disbursed over allocated, as a percentage.
func (s *reportService) fundUtilization(ctx context.Context) (float64, error) {
	allocated, err := s.flowRepo.SumAllocated(ctx)
	if err != nil {
		return 0, fmt.Errorf("sum allocated: %w", err)
	}
	if allocated.IsZero() {
		return 0, nil
	}
	disbursed, err := s.flowRepo.SumDisbursed(ctx)
	if err != nil {
		return 0, fmt.Errorf("sum disbursed: %w", err)
	}
	pct, _ := disbursed.Div(allocated).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return pct, nil
}

// impactScore weights funding approvals, smartphone access and bank account
// coverage into a 0-100 score.
func (s *reportService) impactScore(ctx context.Context, total int64) (float64, error) {
	if total == 0 {
		return 0, nil
	}
	approved, err := s.beneficiaryRepo.CountByFundingStatus(ctx, model.FundingStatusApproved)
	if err != nil {
		return 0, fmt.Errorf("count approved: %w", err)
	}
	smartphones, err := s.digitalRepo.CountWithSmartphone(ctx)
	if err != nil {
		return 0, fmt.Errorf("count smartphones: %w", err)
	}
	banked, err := s.financialRepo.CountWithBankAccount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count banked: %w", err)
	}

	t := float64(total)
	score := float64(approved)/t*40 + float64(smartphones)/t*30 + float64(banked)/t*30
	return float64(int(score*10+0.5)) / 10, nil
}

// monthlyTrends counts registrations and assessments per month for the
// last six months, oldest first.
func (s *reportService) monthlyTrends(ctx context.Context) (MonthlyTrends, error) {
	trends := MonthlyTrends{}
	now := time.Now()
	for i := 5; i >= 0; i-- {
		start := monthStart(now.AddDate(0, -i, 0))
		end := start.AddDate(0, 1, 0)
		startStr := start.Format("2006-01-02")
		endStr := end.Format("2006-01-02")

		beneficiaries, err := s.beneficiaryRepo.CountRegisteredBetween(ctx, startStr, endStr)
		if err != nil {
			return trends, fmt.Errorf("count registrations %s: %w", startStr, err)
		}
		assessments, err := s.assessmentRepo.CountBetween(ctx, startStr, endStr)
		if err != nil {
			return trends, fmt.Errorf("count assessments %s: %w", startStr, err)
		}

		trends.Labels = append(trends.Labels, start.Format("Jan"))
		trends.Beneficiaries = append(trends.Beneficiaries, beneficiaries)
		trends.Assessments = append(trends.Assessments, assessments)
	}
	return trends, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
