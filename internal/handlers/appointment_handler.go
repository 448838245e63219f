package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/httpresp"
	"github.com/PedrohFolster/inkspiration/internal/middleware"
	"github.com/PedrohFolster/inkspiration/internal/models"
	apUC "github.com/PedrohFolster/inkspiration/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *apUC.CreateAppointment
	get      *apUC.GetAppointment
	cancel   *apUC.CancelAppointment
	complete *apUC.CompleteAppointment
	mine     *apUC.ListClientAppointments

	loc *time.Location
}

func NewAppointmentHandler(
	create *apUC.CreateAppointment,
	get *apUC.GetAppointment,
	cancel *apUC.CancelAppointment,
	complete *apUC.CompleteAppointment,
	mine *apUC.ListClientAppointments,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   create,
		get:      get,
		cancel:   cancel,
		complete: complete,
		mine:     mine,
		loc:      loc,
	}
}

// ======================================================
// REQUEST
// ======================================================

type CreateAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	Start          string `json:"start" binding:"required"`
	End            string `json:"end" binding:"required"`
	Service        string `json:"service" binding:"max=100"`
	Notes          string `json:"notes" binding:"max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := parseInstant(h.loc, "start", req.Start)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	end, err := parseInstant(h.loc, "end", req.End)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), apUC.CreateAppointmentInput{
		ProfessionalID: req.ProfessionalID,
		ClientID:       middleware.UserID(c),
		Start:          start,
		End:            end,
		Service:        req.Service,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(*ap))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentDTO(*ap))
}

// ListMine pages the caller's bookings; scope is upcoming (default) or past.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	var upcoming bool
	switch c.DefaultQuery("scope", "upcoming") {
	case "upcoming":
		upcoming = true
	case "past":
		upcoming = false
	default:
		httperr.FromError(c, httperr.ErrInvalidArgument("scope", "must be upcoming or past"))
		return
	}

	out, err := h.mine.Execute(c.Request.Context(), middleware.UserID(c), upcoming, pageFromQuery(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancel.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.complete.Execute)
}

type transitionFunc func(ctx context.Context, actorID, appointmentID uint) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, fn transitionFunc) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := fn(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentDTO(*ap))
}
