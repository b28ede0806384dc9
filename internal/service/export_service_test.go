package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hevatrack/internal/model"
)

func TestExportService_BeneficiaryReportPDF(t *testing.T) {
	svc := NewExportService()

	b := *pendingBeneficiary(1, 15000)
	b.County = "Nairobi"
	b.VulnerabilityType = model.VulnerabilityPoverty

	data, err := svc.BeneficiaryReportPDF([]model.Beneficiary{b}, "funding")
	assert.NoError(t, err)
	assert.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportService_BeneficiaryReportPDFEmpty(t *testing.T) {
	svc := NewExportService()

	data, err := svc.BeneficiaryReportPDF(nil, "all")
	assert.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestExportService_FundingReportPDF(t *testing.T) {
	svc := NewExportService()

	report := &FundingReport{GeneratedAt: time.Now()}
	report.Summary.TotalRequests = 2
	report.Summary.ApprovedCount = 1
	report.Summary.PendingCount = 1
	report.Summary.TotalApprovedAmount = decimal.NewFromInt(10000)
	report.Summary.TotalPendingAmount = decimal.NewFromInt(5000)
	approved := *pendingBeneficiary(1, 10000)
	approved.FundingStatus = model.FundingStatusApproved
	report.Approved = []model.Beneficiary{approved}
	report.Pending = []model.Beneficiary{*pendingBeneficiary(2, 5000)}

	data, err := svc.FundingReportPDF(report)
	assert.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
