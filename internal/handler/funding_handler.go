package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"hevatrack/internal/errors"
	"hevatrack/internal/repository"
	"hevatrack/internal/service"
)

// FundingHandler exposes the funding workflow and ledger endpoints.
type FundingHandler struct {
	fundingService service.FundingService
	reportService  service.ReportService
	flowRepo       repository.FundingFlowRepository
}

// NewFundingHandler creates a new funding handler.
func NewFundingHandler(fundingService service.FundingService, reportService service.ReportService, flowRepo repository.FundingFlowRepository) *FundingHandler {
	return &FundingHandler{
		fundingService: fundingService,
		reportService:  reportService,
		flowRepo:       flowRepo,
	}
}

// FundingRequestBody is the submit-request payload.
type FundingRequestBody struct {
	BeneficiaryID uint   `json:"beneficiary_id" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	Notes         string `json:"notes"`
}

// FundingDecisionBody is the approve/decline payload.
type FundingDecisionBody struct {
	BeneficiaryID uint   `json:"beneficiary_id" validate:"required"`
	Notes         string `json:"notes"`
}

// ApproveAllBody is the bulk approval payload.
type ApproveAllBody struct {
	Notes string `json:"notes"`
}

// RecordFlowBody is the manual ledger entry payload.
type RecordFlowBody struct {
	ProgramName     string `json:"program_name" validate:"required"`
	AllocatedAmount string `json:"allocated_amount" validate:"required"`
	DisbursedAmount string `json:"disbursed_amount" validate:"required"`
	RecipientID     *uint  `json:"recipient_id"`
	Notes           string `json:"notes"`
}

// SubmitRequest godoc
// @Summary Submit or refresh a funding request for a beneficiary
// @Tags funding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FundingRequestBody true "Funding request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /funding/request [post]
func (h *FundingHandler) SubmitRequest(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req FundingRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return domainError(errors.ErrInvalidAmount)
	}

	b, err := h.fundingService.SubmitRequest(c.Request().Context(), actor, req.BeneficiaryID, &amount, req.Notes)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":        "funding request submitted successfully",
		"beneficiary_id": b.ID,
		"amount":         b.FundingAmount,
		"status":         b.FundingStatus,
	})
}

// ApproveRequest godoc
// @Summary Approve a pending funding request
// @Tags funding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FundingDecisionBody true "Approval"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /funding/approve-request [post]
func (h *FundingHandler) ApproveRequest(c echo.Context) error {
	return h.decide(c, true)
}

// DeclineRequest godoc
// @Summary Decline a pending funding request
// @Tags funding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FundingDecisionBody true "Decline"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /funding/decline-request [post]
func (h *FundingHandler) DeclineRequest(c echo.Context) error {
	return h.decide(c, false)
}

func (h *FundingHandler) decide(c echo.Context, approve bool) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req FundingDecisionBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	ctx := c.Request().Context()
	if approve {
		b, err := h.fundingService.Approve(ctx, actor, req.BeneficiaryID, req.Notes)
		if err != nil {
			return domainError(err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":        "funding request approved successfully",
			"beneficiary_id": b.ID,
			"amount":         b.FundingAmount,
		})
	}

	b, err := h.fundingService.Decline(ctx, actor, req.BeneficiaryID, req.Notes)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "funding request declined successfully",
		"beneficiary_id": b.ID,
	})
}

// ApproveAll godoc
// @Summary Approve every pending funding request as one batch
// @Tags funding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ApproveAllBody true "Bulk approval"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Router /funding/approve-all [post]
func (h *FundingHandler) ApproveAll(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req ApproveAllBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if req.Notes == "" {
		req.Notes = "Bulk approval"
	}

	count, err := h.fundingService.ApproveAllPending(c.Request().Context(), actor, req.Notes)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":        "bulk approval completed",
		"approved_count": count,
	})
}

// FundingStats godoc
// @Summary Funding request statistics
// @Tags funding
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.FundingStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /funding/funding-stats [get]
func (h *FundingHandler) FundingStats(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	stats, err := h.reportService.FundingStats(c.Request().Context(), actor)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// PendingRequests godoc
// @Summary List pending funding requests awaiting decision
// @Tags funding
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Beneficiary
// @Failure 403 {object} errors.ErrorResponse
// @Router /funding/pending-requests [get]
func (h *FundingHandler) PendingRequests(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	pending, err := h.reportService.PendingRequests(c.Request().Context(), actor)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, pending)
}

// RecordFlow godoc
// @Summary Record a funding flow ledger entry
// @Tags funding
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordFlowBody true "Ledger entry"
// @Success 201 {object} model.FundingFlow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /funding/funding [post]
func (h *FundingHandler) RecordFlow(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req RecordFlowBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	allocated, err := decimal.NewFromString(req.AllocatedAmount)
	if err != nil {
		return domainError(errors.ErrInvalidAmount)
	}
	disbursed, err := decimal.NewFromString(req.DisbursedAmount)
	if err != nil {
		return domainError(errors.ErrInvalidAmount)
	}

	flow, err := h.fundingService.RecordFlow(c.Request().Context(), actor, service.RecordFlowInput{
		ProgramName:     req.ProgramName,
		AllocatedAmount: allocated,
		DisbursedAmount: disbursed,
		RecipientID:     req.RecipientID,
		Notes:           req.Notes,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, flow)
}

// ToggleAuditFlag godoc
// @Summary Toggle the audit flag on a ledger entry
// @Tags funding
// @Produce json
// @Security BearerAuth
// @Param id path int true "Flow ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /funding/funding/{id}/flag [put]
func (h *FundingHandler) ToggleAuditFlag(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	flowID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	flow, err := h.fundingService.ToggleAuditFlag(c.Request().Context(), actor, flowID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "audit flag updated",
		"new_status": flow.AuditFlag,
	})
}

// FlowView is the flat ledger listing row.
type FlowView struct {
	ID        uint   `json:"id"`
	Program   string `json:"program"`
	Allocated string `json:"allocated"`
	Disbursed string `json:"disbursed"`
	AuditFlag bool   `json:"audit_flag"`
}

// ListFlows godoc
// @Summary List funding flow ledger entries
// @Tags funding
// @Produce json
// @Security BearerAuth
// @Success 200 {array} FlowView
// @Failure 403 {object} errors.ErrorResponse
// @Router /funding/funding [get]
func (h *FundingHandler) ListFlows(c echo.Context) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}

	flows, err := h.flowRepo.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}

	views := make([]FlowView, 0, len(flows))
	for _, f := range flows {
		views = append(views, FlowView{
			ID:        f.ID,
			Program:   f.ProgramName,
			Allocated: f.AllocatedAmount.StringFixed(2),
			Disbursed: f.DisbursedAmount.StringFixed(2),
			AuditFlag: f.AuditFlag,
		})
	}
	return c.JSON(http.StatusOK, views)
}
