package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/phoenix-council/election-api/internal/core/ports"
)

// VoteHandler handles ballot submission.
type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

type submitBallotRequest struct {
	CouncilSelection   []string `json:"council_selection"   validate:"required,min=1,dive,required"`
	ExecutiveSelection []string `json:"executive_selection" validate:"required,min=1,dive,required"`
}

type submitBallotResponse struct {
	Message   string    `json:"message"`
	BallotID  string    `json:"ballot_id"`
	CastAt    time.Time `json:"cast_at"`
	DemoVoter bool      `json:"demo_voter,omitempty"`
}

// Submit handles POST /api/votes/submit.
//
// @Summary      Submit a ballot
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitBallotRequest  true  "Council and executive selections"
// @Success      200   {object}  submitBallotResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/votes/submit [post]
func (h *VoteHandler) Submit(c echo.Context) error {
	var req submitBallotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Submit(c.Request().Context(), ports.SubmitBallotInput{
		SessionID:          ctxOptionalSession(c),
		CouncilSelection:   req.CouncilSelection,
		ExecutiveSelection: req.ExecutiveSelection,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, submitBallotResponse{
		Message:   "Vote submitted successfully",
		BallotID:  result.BallotID,
		CastAt:    result.CastAt,
		DemoVoter: result.DemoVoter,
	})
}
