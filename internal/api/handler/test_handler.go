package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TestHandler exposes two access probes: one for any authenticated
// principal, one restricted to admins by the route policy.
type TestHandler struct{}

func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// Authenticated handles GET /api/test — reachable by any valid token.
//
// @Summary      Authenticated access probe
// @Tags         test
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/test [get]
func (h *TestHandler) Authenticated(c echo.Context) error {
	return c.JSON(http.StatusOK, dataResponse{Data: "USER"})
}

// AdminOnly handles GET /api/test/admin — reachable only by admins.
//
// @Summary      Admin access probe
// @Tags         test
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/test/admin [get]
func (h *TestHandler) AdminOnly(c echo.Context) error {
	return c.JSON(http.StatusOK, dataResponse{Data: "ADMIN"})
}
