package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hevatrack/internal/county"
	"hevatrack/internal/errors"
	"hevatrack/internal/service"
)

// ReportHandler serves dashboard and reporting endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// FieldAgentStats godoc
// @Summary Activity statistics for the calling field agent
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.FieldAgentStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /reports/field-agent/stats [get]
func (h *ReportHandler) FieldAgentStats(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	stats, err := h.reportService.FieldAgentStats(c.Request().Context(), actor)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// FundingTracking godoc
// @Summary List beneficiaries with an active funding request
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Beneficiary
// @Failure 403 {object} errors.ErrorResponse
// @Router /reports/funding/tracking [get]
func (h *ReportHandler) FundingTracking(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	beneficiaries, err := h.reportService.FundingTracking(c.Request().Context(), actor)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, beneficiaries)
}

// FundingReport godoc
// @Summary Aggregate funding report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.FundingReport
// @Failure 403 {object} errors.ErrorResponse
// @Router /reports/funding/report [get]
func (h *ReportHandler) FundingReport(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.FundingReport(c.Request().Context(), actor)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// ManagerDashboard godoc
// @Summary Program manager dashboard
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ManagerDashboard
// @Failure 403 {object} errors.ErrorResponse
// @Router /dashboards/manager [get]
func (h *ReportHandler) ManagerDashboard(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	dashboard, err := h.reportService.ManagerDashboard(c.Request().Context(), actor)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// AnalystDashboard godoc
// @Summary Data analyst dashboard
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AnalystDashboard
// @Failure 403 {object} errors.ErrorResponse
// @Router /dashboards/analyst [get]
func (h *ReportHandler) AnalystDashboard(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	dashboard, err := h.reportService.AnalystDashboard(c.Request().Context(), actor)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// ListCounties godoc
// @Summary List all Kenya counties
// @Tags counties
// @Produce json
// @Security BearerAuth
// @Success 200 {array} county.County
// @Router /counties [get]
func (h *ReportHandler) ListCounties(c echo.Context) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, county.Counties)
}

// CountiesByRegion godoc
// @Summary Group counties by region
// @Tags counties
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]county.County
// @Router /counties/regions [get]
func (h *ReportHandler) CountiesByRegion(c echo.Context) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, county.ByRegion())
}

// GetCounty godoc
// @Summary Look up a county by code
// @Tags counties
// @Produce json
// @Security BearerAuth
// @Param code path string true "County code"
// @Success 200 {object} county.County
// @Failure 404 {object} errors.ErrorResponse
// @Router /counties/{code} [get]
func (h *ReportHandler) GetCounty(c echo.Context) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}

	found := county.ByCode(c.Param("code"))
	if found == nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "county not found",
			Code:  "NOT_FOUND",
		})
	}
	return c.JSON(http.StatusOK, found)
}
