package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// VulnerabilityType categorizes why a beneficiary is in the program.
type VulnerabilityType string

const (
	VulnerabilityPoverty     VulnerabilityType = "poverty"
	VulnerabilityRefugee     VulnerabilityType = "refugee"
	VulnerabilityDisability  VulnerabilityType = "disability"
	VulnerabilityLGBTQI      VulnerabilityType = "LGBTQI+"
	VulnerabilityLowLiteracy VulnerabilityType = "low_literacy"
	VulnerabilityOther       VulnerabilityType = "other"
)

// FundingStatus is the state of a beneficiary's funding request.
// Transitions: none -> pending -> {approved, declined}. Approved and
// declined are terminal.
type FundingStatus string

const (
	FundingStatusNone     FundingStatus = "none"
	FundingStatusPending  FundingStatus = "pending"
	FundingStatusApproved FundingStatus = "approved"
	FundingStatusDeclined FundingStatus = "declined"
)

// Beneficiary represents an individual receiving support from the program.
// The funding_* columns form the funding request sub-record; they are
// mutated only by the funding workflow service.
type Beneficiary struct {
	ID                uint              `json:"beneficiary_id" gorm:"primaryKey"`
	RegistrationDate  time.Time         `json:"registration_date" gorm:"not null"`
	Name              string            `json:"name" gorm:"size:100;not null"`
	Age               *int              `json:"age,omitempty"`
	Gender            string            `json:"gender,omitempty" gorm:"size:20"`
	VulnerabilityType VulnerabilityType `json:"vulnerability_type" gorm:"type:varchar(20);not null;index"`
	Location          string            `json:"location,omitempty" gorm:"size:100"`
	County            string            `json:"county,omitempty" gorm:"size:100;index"`
	CountyCode        string            `json:"county_code,omitempty" gorm:"size:10"`
	ContactInfo       string            `json:"contact_info,omitempty" gorm:"size:100"`
	IsHighRisk        bool              `json:"is_high_risk" gorm:"default:false;index"`
	Notes             string            `json:"notes,omitempty" gorm:"type:text"`

	FundingRequested    bool             `json:"funding_requested" gorm:"default:false;index"`
	FundingAmount       *decimal.Decimal `json:"funding_amount,omitempty" gorm:"type:decimal(12,2)"`
	FundingStatus       FundingStatus    `json:"funding_status" gorm:"type:varchar(20);not null;default:'none';index"`
	FundingApprovedBy   *uint            `json:"funding_approved_by,omitempty"`
	FundingApprovedDate *time.Time       `json:"funding_approved_date,omitempty"`
	FundingNotes        string           `json:"funding_notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Assessments      []VulnerabilityAssessment `json:"assessments,omitempty" gorm:"foreignKey:BeneficiaryID"`
	FinancialRecords []FinancialRecord         `json:"financial_records,omitempty" gorm:"foreignKey:BeneficiaryID"`
	DigitalAccess    []DigitalAccess           `json:"digital_access,omitempty" gorm:"foreignKey:BeneficiaryID"`
	FundingFlows     []FundingFlow             `json:"funding_flows,omitempty" gorm:"foreignKey:RecipientBeneficiaryID"`
}
