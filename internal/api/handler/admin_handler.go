package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/phoenix-council/election-api/internal/core/ports"
)

// ReconcileRunner is the slice of the reconciler the handler needs.
type ReconcileRunner interface {
	Run(ctx context.Context) (int, error)
}

// AdminHandler handles the administrative surface. Every route is mounted
// behind Auth + RBAC(admin); no unprotected variant exists.
type AdminHandler struct {
	service    ports.AdminService
	reconciler ReconcileRunner
}

func NewAdminHandler(service ports.AdminService, reconciler ReconcileRunner) *AdminHandler {
	return &AdminHandler{service: service, reconciler: reconciler}
}

type adminAuthRequest struct {
	Password string `json:"password" validate:"required"`
}

type statusResponse struct {
	IsOpen  bool   `json:"is_open"`
	Message string `json:"message,omitempty"`
}

// Auth handles POST /api/admin/auth: the legacy password login.
//
// @Summary      Password-based admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminAuthRequest  true  "Admin password"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  errorResponse
// @Router       /api/admin/auth [post]
func (h *AdminHandler) Auth(c echo.Context) error {
	var req adminAuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.service.PasswordLogin(c.Request().Context(), req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Admin authenticated",
		"token":   token,
	})
}

// Status handles GET /api/admin/status.
//
// @Summary      Election status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/status [get]
func (h *AdminHandler) Status(c echo.Context) error {
	status, err := h.service.Status(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{IsOpen: status.IsOpen})
}

// Toggle handles POST /api/admin/toggle.
//
// @Summary      Toggle election open/closed
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statusResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/toggle [post]
func (h *AdminHandler) Toggle(c echo.Context) error {
	status, err := h.service.Toggle(c.Request().Context())
	if err != nil {
		return err
	}

	word := "closed"
	if status.IsOpen {
		word = "open"
	}
	return c.JSON(http.StatusOK, statusResponse{
		IsOpen:  status.IsOpen,
		Message: fmt.Sprintf("Election is now %s", word),
	})
}

// Export handles GET /api/admin/export: the raw ballot export.
//
// @Summary      Export all ballots as JSON
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.BallotExport
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/export [get]
func (h *AdminHandler) Export(c echo.Context) error {
	export, err := h.service.Export(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, export)
}

// ExportCSV handles GET /api/admin/export-csv: the denormalized
// per-position projection with candidate names.
//
// @Summary      Export ballots as per-position CSV
// @Tags         admin
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/export-csv [get]
func (h *AdminHandler) ExportCSV(c echo.Context) error {
	data, err := h.service.ExportCSV(c.Request().Context())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment;filename=ballots_export.csv`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// Reconcile handles POST /api/admin/reconcile: an on-demand repair pass
// for ballots whose session flag update failed.
//
// @Summary      Run a session reconciliation pass
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/reconcile [post]
func (h *AdminHandler) Reconcile(c echo.Context) error {
	repaired, err := h.reconciler.Run(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"repaired": repaired})
}
