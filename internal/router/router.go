package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hevatrack/internal/auth"
	"hevatrack/internal/config"
	"hevatrack/internal/errors"
	"hevatrack/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	beneficiaryHandler *handler.BeneficiaryHandler,
	fundingHandler *handler.FundingHandler,
	reportHandler *handler.ReportHandler,
	exportHandler *handler.ExportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "token is missing or invalid",
				Code:  "TOKEN_INVALID",
			})
		},
	}), blacklistMiddleware(tokenStore))

	secured.GET("/me", func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "token is missing or invalid",
				Code:  "TOKEN_INVALID",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"token_claims": token.Claims})
	})

	// Auth administration routes
	secured.POST("/auth/logout", authHandler.Logout)
	secured.POST("/auth/admin/create-user", authHandler.CreateUser)
	secured.GET("/auth/user/:id", authHandler.GetUser)
	secured.PUT("/auth/user/:id/active", authHandler.SetUserActive)

	// Beneficiary registry routes
	secured.POST("/beneficiaries", beneficiaryHandler.Create)
	secured.GET("/beneficiaries", beneficiaryHandler.List)
	secured.GET("/beneficiaries/:id", beneficiaryHandler.Get)
	secured.PUT("/beneficiaries/:id", beneficiaryHandler.Update)
	secured.DELETE("/beneficiaries/:id", beneficiaryHandler.Delete)

	// Assessment and attribute record routes
	secured.POST("/assessments", beneficiaryHandler.CreateAssessment)
	secured.GET("/assessments", beneficiaryHandler.ListAssessments)
	secured.POST("/records/financial", beneficiaryHandler.CreateFinancialRecord)
	secured.POST("/records/digital", beneficiaryHandler.CreateDigitalAccess)
	secured.POST("/records/business", beneficiaryHandler.CreateCreativeBusiness)
	secured.GET("/records/business", beneficiaryHandler.ListCreativeBusinesses)

	// Funding workflow routes
	secured.POST("/funding/request", fundingHandler.SubmitRequest)
	secured.POST("/funding/approve-request", fundingHandler.ApproveRequest)
	secured.POST("/funding/decline-request", fundingHandler.DeclineRequest)
	secured.POST("/funding/approve-all", fundingHandler.ApproveAll)
	secured.GET("/funding/funding-stats", fundingHandler.FundingStats)
	secured.GET("/funding/pending-requests", fundingHandler.PendingRequests)
	secured.POST("/funding/funding", fundingHandler.RecordFlow)
	secured.GET("/funding/funding", fundingHandler.ListFlows)
	secured.PUT("/funding/funding/:id/flag", fundingHandler.ToggleAuditFlag)

	// Report and dashboard routes
	secured.GET("/reports/field-agent/stats", reportHandler.FieldAgentStats)
	secured.GET("/reports/funding/tracking", reportHandler.FundingTracking)
	secured.GET("/reports/funding/report", reportHandler.FundingReport)
	secured.GET("/dashboards/manager", reportHandler.ManagerDashboard)
	secured.GET("/dashboards/analyst", reportHandler.AnalystDashboard)

	// County reference routes
	secured.GET("/counties", reportHandler.ListCounties)
	secured.GET("/counties/regions", reportHandler.CountiesByRegion)
	secured.GET("/counties/:code", reportHandler.GetCounty)

	// Export routes
	secured.GET("/exports/beneficiaries", exportHandler.BeneficiaryReport)
	secured.GET("/exports/funding", exportHandler.FundingReport)
}

// blacklistMiddleware rejects tokens revoked through logout.
func blacklistMiddleware(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
			if raw != "" {
				revoked, err := tokenStore.IsTokenBlacklisted(c.Request().Context(), raw)
				if err == nil && revoked {
					return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
						Error: "token has been revoked",
						Code:  "TOKEN_REVOKED",
					})
				}
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
