package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundingFlow is an immutable record of an actual fund allocation or
// disbursement event. Entries are append-only from the workflow's
// perspective; only the admin audit-flag toggle mutates them afterwards.
type FundingFlow struct {
	ID                     uint            `json:"flow_id" gorm:"primaryKey"`
	ProgramName            string          `json:"program_name" gorm:"size:100;not null"`
	AllocatedAmount        decimal.Decimal `json:"allocated_amount" gorm:"type:decimal(12,2);not null"`
	DisbursedAmount        decimal.Decimal `json:"disbursed_amount" gorm:"type:decimal(12,2);not null"`
	RecipientBeneficiaryID *uint           `json:"recipient_beneficiary_id,omitempty" gorm:"index"`
	DisbursementDate       *time.Time      `json:"disbursement_date,omitempty"`
	ReportedBy             uint            `json:"reported_by" gorm:"not null;index"`
	AuditFlag              bool            `json:"audit_flag" gorm:"default:false"`
	Notes                  string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt              time.Time       `json:"created_at"`

	// Relations
	Recipient *Beneficiary `json:"-" gorm:"foreignKey:RecipientBeneficiaryID"`
	Reporter  User         `json:"-" gorm:"foreignKey:ReportedBy"`
}
