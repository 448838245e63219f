package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/httpresp"
	"github.com/PedrohFolster/inkspiration/internal/middleware"
	"github.com/PedrohFolster/inkspiration/internal/models"
)

// MeHandler serves the authenticated user's own account and addresses.
type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.FromError(c, httperr.ErrNotFound("user", userID))
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": userView(&user)})
}

// ======================================================
// Endereços
// ======================================================

type AddressRequest struct {
	CEP        string   `json:"cep"`
	Street     string   `json:"street" binding:"required"`
	Number     string   `json:"number"`
	Complement string   `json:"complement"`
	District   string   `json:"district"`
	City       string   `json:"city" binding:"required"`
	State      string   `json:"state" binding:"required,len=2"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

func (h *MeHandler) CreateAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	addr := models.Address{
		UserID:     middleware.UserID(c),
		CEP:        strings.TrimSpace(req.CEP),
		Street:     strings.TrimSpace(req.Street),
		Number:     req.Number,
		Complement: req.Complement,
		District:   req.District,
		City:       strings.TrimSpace(req.City),
		State:      strings.ToUpper(req.State),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&addr).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, addr)
}

func (h *MeHandler) ListAddresses(c *gin.Context) {
	var out []models.Address
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", middleware.UserID(c)).
		Order("id ASC").
		Find(&out).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}
