package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/phoenix-council/election-api/internal/core/ports"
)

// TokenHandler handles the legacy/demo one-time voter token endpoints.
type TokenHandler struct {
	service ports.TokenService
}

func NewTokenHandler(service ports.TokenService) *TokenHandler {
	return &TokenHandler{service: service}
}

type requestTokenRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	PhoneLast4 string `json:"phone_last4" validate:"required,len=4,numeric"`
}

type requestTokenResponse struct {
	Message string `json:"message"`
	VoterID string `json:"voter_id"`
}

type verifyTokenRequest struct {
	VoterID string `json:"voter_id" validate:"required"`
}

// Request handles POST /api/votes/request-id.
//
// @Summary      Request a one-time voter token
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        body  body      requestTokenRequest  true  "Contact details"
// @Success      200   {object}  requestTokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/votes/request-id [post]
func (h *TokenHandler) Request(c echo.Context) error {
	var req requestTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.service.Request(c.Request().Context(), req.Email, req.PhoneLast4)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, requestTokenResponse{
		Message: "Voter ID generated successfully",
		VoterID: token,
	})
}

// Verify handles POST /api/votes/verify-id. The token is consumed exactly
// once; a second verify fails.
//
// @Summary      Verify a one-time voter token
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        body  body      verifyTokenRequest  true  "Voter token"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/votes/verify-id [post]
func (h *TokenHandler) Verify(c echo.Context) error {
	var req verifyTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Verify(c.Request().Context(), req.VoterID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Voter ID verified successfully"})
}
