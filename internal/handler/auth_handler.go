package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"hevatrack/internal/errors"
	"hevatrack/internal/model"
	"hevatrack/internal/service"
)

// AuthHandler handles authentication and user administration endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a field agent self-registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest represents an admin user provisioning request.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=manager analyst"`
	FullName string `json:"full_name"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	Token        string     `json:"token"`
	UserID       uint       `json:"user_id"`
	Role         model.Role `json:"role"`
	IsPredefined bool       `json:"is_predefined"`
}

// Register godoc
// @Summary Self-register a field agent account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
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

	user, err := h.authService.RegisterFieldAgent(c.Request().Context(), req.Username, req.Password, req.FullName, req.Email)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "field agent registered successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary Login with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
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

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, LoginResponse{
		Token:        token,
		UserID:       user.ID,
		Role:         user.Role,
		IsPredefined: user.IsPredefined,
	})
}

// Logout godoc
// @Summary Revoke the presented session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := bearerToken(c)
	if token == "" {
		return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: "token is missing",
			Code:  "TOKEN_MISSING",
		})
	}
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// CreateUser godoc
// @Summary Provision a manager or analyst account
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/admin/create-user [post]
func (h *AuthHandler) CreateUser(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req CreateUserRequest
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

	user, err := h.authService.CreateUser(c.Request().Context(), actor, req.Username, req.Password, model.Role(req.Role), req.FullName, req.Email)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": string(user.Role) + " user created successfully",
		"user":    user,
	})
}

// GetUser godoc
// @Summary Fetch a user record
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/user/{id} [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.authService.GetUser(c.Request().Context(), actor, userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// SetUserActive godoc
// @Summary Activate or deactivate a user account
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/user/{id}/active [put]
func (h *AuthHandler) SetUserActive(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := h.authService.SetUserActive(c.Request().Context(), actor, userID, req.Active); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "user status updated",
	})
}

// bearerToken extracts the token from the Authorization header, with or
// without the Bearer prefix.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
