package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hevatrack/internal/errors"
	"hevatrack/internal/model"
	"hevatrack/internal/service"
)

// ExportHandler serves PDF report downloads.
type ExportHandler struct {
	beneficiaryService service.BeneficiaryService
	reportService      service.ReportService
	exportService      service.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(
	beneficiaryService service.BeneficiaryService,
	reportService service.ReportService,
	exportService service.ExportService,
) *ExportHandler {
	return &ExportHandler{
		beneficiaryService: beneficiaryService,
		reportService:      reportService,
		exportService:      exportService,
	}
}

// BeneficiaryReport godoc
// @Summary Download a beneficiary report as PDF
// @Tags exports
// @Produce application/pdf
// @Security BearerAuth
// @Param type query string false "Report type" Enums(all, funding, high_risk) default(all)
// @Success 200 {file} binary
// @Failure 403 {object} errors.ErrorResponse
// @Router /exports/beneficiaries [get]
func (h *ExportHandler) BeneficiaryReport(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if actor.Role != model.RoleAdmin && actor.Role != model.RoleManager && actor.Role != model.RoleAnalyst {
		return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: "insufficient permissions",
			Code:  "PERMISSION_DENIED",
		})
	}

	reportType := c.QueryParam("type")
	if reportType == "" {
		reportType = "all"
	}

	beneficiaries, err := h.beneficiaryService.ListAll(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	switch reportType {
	case "funding":
		beneficiaries = filterBeneficiaries(beneficiaries, func(b model.Beneficiary) bool {
			return b.FundingRequested
		})
	case "high_risk":
		beneficiaries = filterBeneficiaries(beneficiaries, func(b model.Beneficiary) bool {
			return b.IsHighRisk
		})
	}

	pdf, err := h.exportService.BeneficiaryReportPDF(beneficiaries, reportType)
	if err != nil {
		return domainError(err)
	}
	return servePDF(c, pdf, fmt.Sprintf("beneficiary_report_%s", reportType))
}

// FundingReport godoc
// @Summary Download the funding report as PDF
// @Tags exports
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 403 {object} errors.ErrorResponse
// @Router /exports/funding [get]
func (h *ExportHandler) FundingReport(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.FundingReport(c.Request().Context(), actor)
	if err != nil {
		return domainError(err)
	}
	pdf, err := h.exportService.FundingReportPDF(report)
	if err != nil {
		return domainError(err)
	}
	return servePDF(c, pdf, "funding_report")
}

func filterBeneficiaries(in []model.Beneficiary, keep func(model.Beneficiary) bool) []model.Beneficiary {
	out := in[:0]
	for _, b := range in {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func servePDF(c echo.Context, data []byte, baseName string) error {
	filename := fmt.Sprintf("%s_%s.pdf", baseName, time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/pdf", data)
}
