package model

import "time"

// VulnerabilityAssessment is a field assessment scoring a beneficiary's
// situation on 1-5 scales.
type VulnerabilityAssessment struct {
	ID                 uint      `json:"assessment_id" gorm:"primaryKey"`
	BeneficiaryID      uint      `json:"beneficiary_id" gorm:"not null;index"`
	AssessorID         uint      `json:"assessor_id" gorm:"not null;index"`
	AssessmentDate     time.Time `json:"assessment_date" gorm:"not null"`
	PovertyScore       int       `json:"poverty_score"`
	LiteracyScore      int       `json:"literacy_score"`
	DigitalAccessScore int       `json:"digital_access_score"`
	DisabilityStatus   bool      `json:"disability_status" gorm:"default:false"`
	LGBTQIStatus       bool      `json:"lgbtqi_status" gorm:"default:false"`
	RefugeeStatus      bool      `json:"refugee_status" gorm:"default:false"`

	// Relations
	Beneficiary Beneficiary `json:"-" gorm:"foreignKey:BeneficiaryID"`
	Assessor    User        `json:"-" gorm:"foreignKey:AssessorID"`
}
