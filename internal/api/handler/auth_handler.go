package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identity-core/auth-service/internal/api/metrics"
	"github.com/identity-core/auth-service/internal/api/middleware"
	"github.com/identity-core/auth-service/internal/core/domain"
	"github.com/identity-core/auth-service/internal/core/ports"
)

// AuthHandler handles HTTP requests for registration, login, and role
// switching.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUp registers a new USER-role account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signUpRequest  true  "Registration details"
// @Success      200   {object}  dataResponse{data=userResponse}
// @Failure      400   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrInvalidInput
	}

	user, err := h.authService.SignUp(c.Request().Context(), req.Username, req.Password, req.Nickname)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusOK, dataResponse{Data: toUserResponse(user)})
}

// AdminSignUp registers a new ADMIN-role account, gated by the configured
// admin registration key.
//
// @Summary      Register a new admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      adminSignUpRequest  true  "Registration details plus admin key"
// @Success      200   {object}  dataResponse{data=userResponse}
// @Failure      400   {object}  errorResponse
// @Router       /admin/signup [post]
func (h *AuthHandler) AdminSignUp(c echo.Context) error {
	var req adminSignUpRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrInvalidInput
	}

	user, err := h.authService.AdminSignUp(c.Request().Context(), req.Username, req.Password, req.Nickname, req.AdminKey)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues(user.Role).Inc()
	return c.JSON(http.StatusOK, dataResponse{Data: toUserResponse(user)})
}

// Login authenticates a user and returns a bearer token. The token is echoed
// in both the response body and the Authorization response header.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrInvalidInput
	}

	tok, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.Response().Header().Set(echo.HeaderAuthorization, tok)
	return c.JSON(http.StatusOK, loginResponse{Token: tok})
}

// SwitchRole promotes the target user to ADMIN. The route policy restricts
// this to admins; the service repeats the check as defense in depth.
//
// @Summary      Grant admin role to a user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Target user id"
// @Success      200      {object}  dataResponse{data=userResponse}
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Router       /admin/users/{user_id}/roles [patch]
func (h *AuthHandler) SwitchRole(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.ErrInvalidToken
	}

	user, err := h.authService.SwitchRole(c.Request().Context(), p, c.Param("user_id"))
	if err != nil {
		return err
	}

	metrics.RolePromotionsTotal.Inc()
	return c.JSON(http.StatusOK, dataResponse{Data: toUserResponse(user)})
}
