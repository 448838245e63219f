package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apDomain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/dto"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/httpresp"
	"github.com/PedrohFolster/inkspiration/internal/middleware"
	"github.com/PedrohFolster/inkspiration/internal/storage"
	apUC "github.com/PedrohFolster/inkspiration/internal/usecase/appointment"
	profUC "github.com/PedrohFolster/inkspiration/internal/usecase/professional"
	ratingUC "github.com/PedrohFolster/inkspiration/internal/usecase/rating"
)

const maxSlotDuration = 12 * time.Hour

// ======================================================
// HANDLER
// ======================================================

type ProfessionalHandler struct {
	create       *profUC.CreateCompleteProfessional
	get          *profUC.GetProfessional
	list         *profUC.ListProfessionals
	exists       *profUC.ExistsProfile
	availability *profUC.ReplaceAvailability
	upload       *profUC.UploadPortfolioImage
	remove       *profUC.DeleteProfessional

	conflict     *apUC.HasConflict
	slots        *apUC.GetSlots
	appointments *apUC.ListProfessionalAppointments
	ratings      *ratingUC.ListRatings

	loc *time.Location
}

type ProfessionalUsecases struct {
	Create       *profUC.CreateCompleteProfessional
	Get          *profUC.GetProfessional
	List         *profUC.ListProfessionals
	Exists       *profUC.ExistsProfile
	Availability *profUC.ReplaceAvailability
	Upload       *profUC.UploadPortfolioImage
	Delete       *profUC.DeleteProfessional

	Conflict     *apUC.HasConflict
	Slots        *apUC.GetSlots
	Appointments *apUC.ListProfessionalAppointments
	Ratings      *ratingUC.ListRatings
}

func NewProfessionalHandler(uc ProfessionalUsecases, loc *time.Location) *ProfessionalHandler {
	return &ProfessionalHandler{
		create:       uc.Create,
		get:          uc.Get,
		list:         uc.List,
		exists:       uc.Exists,
		availability: uc.Availability,
		upload:       uc.Upload,
		remove:       uc.Delete,
		conflict:     uc.Conflict,
		slots:        uc.Slots,
		appointments: uc.Appointments,
		ratings:      uc.Ratings,
		loc:          loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PortfolioRequest struct {
	Description string `json:"description"`
	Specialty   string `json:"specialty"`
	Experience  string `json:"experience"`
	Website     string `json:"website"`
	Instagram   string `json:"instagram"`
	TikTok      string `json:"tiktok"`
	Facebook    string `json:"facebook"`
	Twitter     string `json:"twitter"`
}

type CreateProfessionalRequest struct {
	AddressID    uint             `json:"address_id" binding:"required"`
	Portfolio    PortfolioRequest `json:"portfolio"`
	Availability []string         `json:"availability"`
}

type AvailabilityRequest struct {
	Availability []string `json:"availability"`
}

// ======================================================
// CREATE
// ======================================================

// Create builds the caller's professional profile in one shot.
func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.create.Execute(c.Request.Context(), profUC.CreateCompleteInput{
		UserID:    middleware.UserID(c),
		AddressID: req.AddressID,
		Portfolio: profUC.PortfolioInput{
			Description: req.Portfolio.Description,
			Specialty:   req.Portfolio.Specialty,
			Experience:  req.Portfolio.Experience,
			Website:     req.Portfolio.Website,
			Instagram:   req.Portfolio.Instagram,
			TikTok:      req.Portfolio.TikTok,
			Facebook:    req.Portfolio.Facebook,
			Twitter:     req.Portfolio.Twitter,
		},
		Availability: req.Availability,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// READ
// ======================================================

func (h *ProfessionalHandler) Get(c *gin.Context) {
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

func (h *ProfessionalHandler) GetMine(c *gin.Context) {
	out, err := h.get.ByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

// Exists answers whether the user already has a professional profile.
func (h *ProfessionalHandler) Exists(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ok, err := h.exists.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"user_id": userID, "exists": ok})
}

func (h *ProfessionalHandler) Ratings(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out, err := h.ratings.ByProfessional(c.Request.Context(), id, pageFromQuery(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// AGENDA
// ======================================================

// Conflicts reports whether start..end collides with an active appointment
// under the configured overlap mode: half-open in strict mode, closed at
// both ends in legacy mode.
func (h *ProfessionalHandler) Conflicts(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	start, err := parseInstant(h.loc, "start", c.Query("start"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	end, err := parseInstant(h.loc, "end", c.Query("end"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	conflict, err := h.conflict.Execute(c.Request.Context(), id, start, end)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.ConflictDTO{
		ProfessionalID: id,
		Start:          start,
		End:            end,
		Conflict:       conflict,
	})
}

// Appointments lists the agenda for [from, to). Both bounds are dates in the
// studio timezone; to is inclusive.
func (h *ProfessionalHandler) Appointments(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	from, err := parseDate(h.loc, "from", c.Query("from"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	to, err := parseDate(h.loc, "to", c.Query("to"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out, err := h.appointments.Execute(c.Request.Context(), id, from, to.AddDate(0, 0, 1))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *ProfessionalHandler) Slots(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	date, err := parseDate(h.loc, "date", c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	minutes, err := strconv.Atoi(c.Query("duration"))
	duration := time.Duration(minutes) * time.Minute
	if err != nil || duration <= 0 || duration > maxSlotDuration {
		httperr.FromError(c, httperr.ErrInvalidArgument("duration", "must be a number of minutes between 1 and 720"))
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), apDomain.SlotsInput{
		ProfessionalID: id,
		Date:           date,
		Duration:       duration,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":     date.Format(dateLayout),
		"duration": minutes,
		"slots":    slots,
	})
}

// ======================================================
// WRITE (owner only)
// ======================================================

func (h *ProfessionalHandler) ReplaceAvailability(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), middleware.UserID(c), id, req.Availability)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"availability": out})
}

// UploadImage takes a multipart "image" field.
func (h *ProfessionalHandler) UploadImage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes)

	fh, err := c.FormFile("image")
	if err != nil {
		httperr.FromError(c, httperr.ErrInvalidArgument("image", "multipart field image is required (max 8MB)"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	defer f.Close()

	out, err := h.upload.Execute(c.Request.Context(), middleware.UserID(c), id, f)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Created(c, out)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
