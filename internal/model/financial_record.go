package model

import "time"

// CreditAccess describes what kind of credit a beneficiary can reach.
type CreditAccess string

const (
	CreditAccessNone         CreditAccess = "none"
	CreditAccessInformal     CreditAccess = "informal"
	CreditAccessFormal       CreditAccess = "formal"
	CreditAccessMicrofinance CreditAccess = "microfinance"
)

// RiskRating is a coarse low/medium/high classification.
type RiskRating string

const (
	RiskLow    RiskRating = "low"
	RiskMedium RiskRating = "medium"
	RiskHigh   RiskRating = "high"
)

// FinancialRecord tracks financial inclusion metrics for a beneficiary.
type FinancialRecord struct {
	ID                     uint         `json:"record_id" gorm:"primaryKey"`
	BeneficiaryID          uint         `json:"beneficiary_id" gorm:"not null;index"`
	HasBankAccount         bool         `json:"has_bank_account" gorm:"default:false"`
	MobileMoneyUsage       bool         `json:"mobile_money_usage" gorm:"default:false"`
	CreditAccess           CreditAccess `json:"credit_access" gorm:"type:varchar(20);not null"`
	CollateralAvailable    bool         `json:"collateral_available" gorm:"default:false"`
	FinancialLiteracyScore int          `json:"financial_literacy_score"`
	RiskRating             RiskRating   `json:"risk_rating" gorm:"type:varchar(10);not null"`
	LastUpdated            time.Time    `json:"last_updated"`

	// Relations
	Beneficiary Beneficiary `json:"-" gorm:"foreignKey:BeneficiaryID"`
}

// InternetAccess describes how a beneficiary reaches the internet.
type InternetAccess string

const (
	InternetNone         InternetAccess = "none"
	InternetMobileData   InternetAccess = "mobile_data"
	InternetHomeWifi     InternetAccess = "home_wifi"
	InternetPublicAccess InternetAccess = "public_access"
)

// DigitalAccess tracks device and internet access for a beneficiary.
type DigitalAccess struct {
	ID                          uint           `json:"access_id" gorm:"primaryKey"`
	BeneficiaryID               uint           `json:"beneficiary_id" gorm:"not null;index"`
	OwnsSmartphone              bool           `json:"owns_smartphone" gorm:"default:false"`
	InternetAccess              InternetAccess `json:"internet_access" gorm:"type:varchar(20);not null"`
	InternetAffordabilityScore  int            `json:"internet_affordability_score"`
	DigitalLiteracyScore        int            `json:"digital_literacy_score"`
	LastUpdated                 time.Time      `json:"last_updated"`

	// Relations
	Beneficiary Beneficiary `json:"-" gorm:"foreignKey:BeneficiaryID"`
}

// CreativeBusiness describes a creative-sector business owned by a beneficiary.
type CreativeBusiness struct {
	ID             uint       `json:"business_id" gorm:"primaryKey"`
	OwnerID        uint       `json:"owner_id" gorm:"not null;index"`
	BusinessModel  string     `json:"business_model" gorm:"size:100;not null"`
	Sector         string     `json:"sector" gorm:"size:50;not null"`
	RevenueCycle   string     `json:"revenue_cycle,omitempty" gorm:"size:20"`
	RiskAssessment RiskRating `json:"risk_assessment,omitempty" gorm:"type:varchar(10)"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	LastEvaluation *time.Time `json:"last_evaluation,omitempty"`

	// Relations
	Owner Beneficiary `json:"-" gorm:"foreignKey:OwnerID"`
}
