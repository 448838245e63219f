package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/httpresp"
	"github.com/PedrohFolster/inkspiration/internal/middleware"
	ratingUC "github.com/PedrohFolster/inkspiration/internal/usecase/rating"
)

type RatingHandler struct {
	rate *ratingUC.RateAppointment
	get  *ratingUC.GetRating
	list *ratingUC.ListRatings
}

func NewRatingHandler(
	rate *ratingUC.RateAppointment,
	get *ratingUC.GetRating,
	list *ratingUC.ListRatings,
) *RatingHandler {
	return &RatingHandler{rate: rate, get: get, list: list}
}

type RateRequest struct {
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// Rate attaches the caller's rating to a completed appointment.
func (h *RatingHandler) Rate(c *gin.Context) {
	appointmentID, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rt, err := h.rate.Execute(c.Request.Context(), ratingUC.RateInput{
		AppointmentID: appointmentID,
		ClientID:      middleware.UserID(c),
		Score:         req.Score,
		Description:   req.Description,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewRatingDTO(*rt))
}

func (h *RatingHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *RatingHandler) ListMine(c *gin.Context) {
	out, err := h.list.ByClient(c.Request.Context(), middleware.UserID(c), pageFromQuery(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}
