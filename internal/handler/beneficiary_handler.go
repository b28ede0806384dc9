package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"hevatrack/internal/errors"
	"hevatrack/internal/model"
	"hevatrack/internal/service"
)

// BeneficiaryHandler handles the case registry and the attribute records
// attached to a beneficiary.
type BeneficiaryHandler struct {
	beneficiaryService service.BeneficiaryService
}

// NewBeneficiaryHandler creates a new beneficiary handler.
func NewBeneficiaryHandler(beneficiaryService service.BeneficiaryService) *BeneficiaryHandler {
	return &BeneficiaryHandler{beneficiaryService: beneficiaryService}
}

// BeneficiaryBody is the request payload for creating or updating a
// beneficiary. Funding fields are not accepted here.
type BeneficiaryBody struct {
	Name              string `json:"name" validate:"required,min=2,max=100"`
	Age               *int   `json:"age" validate:"omitempty,min=0,max=130"`
	Gender            string `json:"gender" validate:"omitempty,oneof=male female other"`
	VulnerabilityType string `json:"vulnerability_type" validate:"required"`
	Location          string `json:"location"`
	County            string `json:"county"`
	ContactInfo       string `json:"contact_info"`
	IsHighRisk        bool   `json:"is_high_risk"`
	Notes             string `json:"notes"`
}

func (b *BeneficiaryBody) toInput() service.BeneficiaryInput {
	return service.BeneficiaryInput{
		Name:              b.Name,
		Age:               b.Age,
		Gender:            b.Gender,
		VulnerabilityType: model.VulnerabilityType(b.VulnerabilityType),
		Location:          b.Location,
		County:            b.County,
		ContactInfo:       b.ContactInfo,
		IsHighRisk:        b.IsHighRisk,
		Notes:             b.Notes,
	}
}

// AssessmentBody is the request payload for recording a vulnerability
// assessment.
type AssessmentBody struct {
	BeneficiaryID      uint `json:"beneficiary_id" validate:"required"`
	PovertyScore       int  `json:"poverty_score" validate:"min=1,max=5"`
	LiteracyScore      int  `json:"literacy_score" validate:"min=1,max=5"`
	DigitalAccessScore int  `json:"digital_access_score" validate:"min=1,max=5"`
	DisabilityStatus   bool `json:"disability_status"`
	LGBTQIStatus       bool `json:"lgbtqi_status"`
	RefugeeStatus      bool `json:"refugee_status"`
}

// FinancialRecordBody is the request payload for a financial inclusion record.
type FinancialRecordBody struct {
	BeneficiaryID          uint   `json:"beneficiary_id" validate:"required"`
	HasBankAccount         bool   `json:"has_bank_account"`
	MobileMoneyUsage       bool   `json:"mobile_money_usage"`
	CreditAccess           string `json:"credit_access" validate:"required,oneof=none informal formal microfinance"`
	CollateralAvailable    bool   `json:"collateral_available"`
	FinancialLiteracyScore int    `json:"financial_literacy_score" validate:"min=0,max=10"`
	RiskRating             string `json:"risk_rating" validate:"required,oneof=low medium high"`
}

// DigitalAccessBody is the request payload for a digital access record.
type DigitalAccessBody struct {
	BeneficiaryID              uint   `json:"beneficiary_id" validate:"required"`
	OwnsSmartphone             bool   `json:"owns_smartphone"`
	InternetAccess             string `json:"internet_access" validate:"required,oneof=none mobile_data home_wifi public_access"`
	InternetAffordabilityScore int    `json:"internet_affordability_score" validate:"min=0,max=10"`
	DigitalLiteracyScore       int    `json:"digital_literacy_score" validate:"min=0,max=10"`
}

// CreativeBusinessBody is the request payload for a creative business record.
type CreativeBusinessBody struct {
	OwnerID        uint   `json:"owner_id" validate:"required"`
	BusinessModel  string `json:"business_model" validate:"required,max=100"`
	Sector         string `json:"sector" validate:"required,max=50"`
	RevenueCycle   string `json:"revenue_cycle" validate:"omitempty,max=20"`
	RiskAssessment string `json:"risk_assessment" validate:"omitempty,oneof=low medium high"`
}

// Create godoc
// @Summary Register a new beneficiary
// @Tags beneficiaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BeneficiaryBody true "Beneficiary data"
// @Success 201 {object} model.Beneficiary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /beneficiaries [post]
func (h *BeneficiaryHandler) Create(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var body BeneficiaryBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	beneficiary, err := h.beneficiaryService.Create(c.Request().Context(), actor, body.toInput())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, beneficiary)
}

// Update godoc
// @Summary Update a beneficiary record
// @Tags beneficiaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Beneficiary ID"
// @Param request body BeneficiaryBody true "Beneficiary data"
// @Success 200 {object} model.Beneficiary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /beneficiaries/{id} [put]
func (h *BeneficiaryHandler) Update(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var body BeneficiaryBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	beneficiary, err := h.beneficiaryService.Update(c.Request().Context(), actor, id, body.toInput())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, beneficiary)
}

// Delete godoc
// @Summary Delete a beneficiary record
// @Tags beneficiaries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Beneficiary ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /beneficiaries/{id} [delete]
func (h *BeneficiaryHandler) Delete(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.beneficiaryService.Delete(c.Request().Context(), actor, id); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "beneficiary deleted",
	})
}

// Get godoc
// @Summary Fetch a single beneficiary
// @Tags beneficiaries
// @Produce json
// @Security BearerAuth
// @Param id path int true "Beneficiary ID"
// @Success 200 {object} model.Beneficiary
// @Failure 404 {object} errors.ErrorResponse
// @Router /beneficiaries/{id} [get]
func (h *BeneficiaryHandler) Get(c echo.Context) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	beneficiary, err := h.beneficiaryService.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, beneficiary)
}

// List godoc
// @Summary List beneficiaries with pagination
// @Tags beneficiaries
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} service.BeneficiaryPage
// @Router /beneficiaries [get]
func (h *BeneficiaryHandler) List(c echo.Context) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}

	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", 20)

	result, err := h.beneficiaryService.List(c.Request().Context(), page, perPage)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// CreateAssessment godoc
// @Summary Record a vulnerability assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AssessmentBody true "Assessment data"
// @Success 201 {object} model.VulnerabilityAssessment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /assessments [post]
func (h *BeneficiaryHandler) CreateAssessment(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var body AssessmentBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	assessment := &model.VulnerabilityAssessment{
		BeneficiaryID:      body.BeneficiaryID,
		AssessmentDate:     time.Now().UTC(),
		PovertyScore:       body.PovertyScore,
		LiteracyScore:      body.LiteracyScore,
		DigitalAccessScore: body.DigitalAccessScore,
		DisabilityStatus:   body.DisabilityStatus,
		LGBTQIStatus:       body.LGBTQIStatus,
		RefugeeStatus:      body.RefugeeStatus,
	}
	if err := h.beneficiaryService.CreateAssessment(c.Request().Context(), actor, assessment); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, assessment)
}

// ListAssessments godoc
// @Summary List assessments recorded by the caller
// @Tags assessments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.VulnerabilityAssessment
// @Failure 403 {object} errors.ErrorResponse
// @Router /assessments [get]
func (h *BeneficiaryHandler) ListAssessments(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	assessments, err := h.beneficiaryService.ListAssessments(c.Request().Context(), actor)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, assessments)
}

// CreateFinancialRecord godoc
// @Summary Record financial inclusion data for a beneficiary
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FinancialRecordBody true "Financial record data"
// @Success 201 {object} model.FinancialRecord
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/financial [post]
func (h *BeneficiaryHandler) CreateFinancialRecord(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var body FinancialRecordBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	record := &model.FinancialRecord{
		BeneficiaryID:          body.BeneficiaryID,
		HasBankAccount:         body.HasBankAccount,
		MobileMoneyUsage:       body.MobileMoneyUsage,
		CreditAccess:           model.CreditAccess(body.CreditAccess),
		CollateralAvailable:    body.CollateralAvailable,
		FinancialLiteracyScore: body.FinancialLiteracyScore,
		RiskRating:             model.RiskRating(body.RiskRating),
		LastUpdated:            time.Now().UTC(),
	}
	if err := h.beneficiaryService.CreateFinancialRecord(c.Request().Context(), actor, record); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, record)
}

// CreateDigitalAccess godoc
// @Summary Record digital access data for a beneficiary
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DigitalAccessBody true "Digital access data"
// @Success 201 {object} model.DigitalAccess
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/digital [post]
func (h *BeneficiaryHandler) CreateDigitalAccess(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var body DigitalAccessBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	record := &model.DigitalAccess{
		BeneficiaryID:              body.BeneficiaryID,
		OwnsSmartphone:             body.OwnsSmartphone,
		InternetAccess:             model.InternetAccess(body.InternetAccess),
		InternetAffordabilityScore: body.InternetAffordabilityScore,
		DigitalLiteracyScore:       body.DigitalLiteracyScore,
		LastUpdated:                time.Now().UTC(),
	}
	if err := h.beneficiaryService.CreateDigitalAccess(c.Request().Context(), actor, record); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, record)
}

// CreateCreativeBusiness godoc
// @Summary Record a creative business owned by a beneficiary
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreativeBusinessBody true "Business data"
// @Success 201 {object} model.CreativeBusiness
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/business [post]
func (h *BeneficiaryHandler) CreateCreativeBusiness(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var body CreativeBusinessBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	biz := &model.CreativeBusiness{
		OwnerID:        body.OwnerID,
		BusinessModel:  body.BusinessModel,
		Sector:         body.Sector,
		RevenueCycle:   body.RevenueCycle,
		RiskAssessment: model.RiskRating(body.RiskAssessment),
	}
	if err := h.beneficiaryService.CreateCreativeBusiness(c.Request().Context(), actor, biz); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, biz)
}

// ListCreativeBusinesses godoc
// @Summary List creative businesses
// @Tags records
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CreativeBusiness
// @Router /records/business [get]
func (h *BeneficiaryHandler) ListCreativeBusinesses(c echo.Context) error {
	if _, err := actorFromContext(c); err != nil {
		return err
	}

	businesses, err := h.beneficiaryService.ListCreativeBusinesses(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, businesses)
}

// queryInt reads an integer query parameter, falling back when absent or
// malformed.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
