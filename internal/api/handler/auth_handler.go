package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/phoenix-council/election-api/internal/core/ports"
)

// AuthHandler handles voter session endpoints.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	// Assertion is the signed identity assertion issued by the external
	// identity provider after a successful login.
	Assertion string `json:"assertion" validate:"required"`
}

type sessionUserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token    string              `json:"token"`
	User     sessionUserResponse `json:"user"`
	IsAdmin  bool                `json:"is_admin"`
	HasVoted bool                `json:"has_voted"`
}

type sessionInfoResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          sessionUserResponse `json:"user"`
	HasVoted      bool                `json:"has_voted"`
	IsAdmin       bool                `json:"is_admin"`
}

// Login handles POST /api/auth/login.
//
// @Summary      Create a voter session from a verified identity
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Identity assertion"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.sessions.Login(c.Request().Context(), req.Assertion)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: result.Token,
		User: sessionUserResponse{
			Name:  result.Session.DisplayName,
			Email: result.Session.Email,
		},
		IsAdmin:  result.Session.IsAdmin,
		HasVoted: result.Session.HasVoted,
	})
}

// DemoLogin handles POST /api/auth/demo: a demo session for a synthesized
// identity, never admin.
//
// @Summary      Create a demo voter session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth/demo [post]
func (h *AuthHandler) DemoLogin(c echo.Context) error {
	result, err := h.sessions.DemoLogin(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: result.Token,
		User: sessionUserResponse{
			Name:  result.Session.DisplayName,
			Email: result.Session.Email,
		},
	})
}

// Session handles GET /api/auth/session.
//
// @Summary      Current voter session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionInfoResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sessionID, err := ctxSession(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.GetSession(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionInfoResponse{
		Authenticated: true,
		User: sessionUserResponse{
			Name:  session.DisplayName,
			Email: session.Email,
		},
		HasVoted: session.HasVoted,
		IsAdmin:  session.IsAdmin,
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless; logout is an
// acknowledgement that the client discards its token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
