package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"hevatrack/internal/auth"
	"hevatrack/internal/errors"
	"hevatrack/internal/model"
)

// actorFromContext resolves the authenticated actor from the JWT the
// middleware verified. Workflow services receive this explicitly; nothing
// downstream reads the request context for identity.
func actorFromContext(c echo.Context) (model.Actor, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return model.Actor{}, echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: "token is missing",
			Code:  "TOKEN_MISSING",
		})
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return model.Actor{}, echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: "token is invalid",
			Code:  "TOKEN_INVALID",
		})
	}
	return claims.Actor(), nil
}

// domainError converts a service error into the standard HTTP error shape.
func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// parseUintParam reads a numeric path parameter.
func parseUintParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid " + name,
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}
