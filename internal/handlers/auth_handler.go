package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	"github.com/PedrohFolster/inkspiration/internal/config"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/httpresp"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher

	// emailDomainOK is swapped in tests to avoid DNS lookups.
	emailDomainOK func(string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{
		db:            db,
		config:        cfg,
		audit:         audit,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emailDomainOK(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid.")
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "E-mail already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	// Every account starts as a client; creating a professional profile
	// promotes it.
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleClient,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err, "") {
			httperr.Conflict(c, "email_already_registered", "E-mail already registered.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.Created(c, gin.H{
		"user":  userView(&user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid e-mail or password.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	httpresp.OK(c, gin.H{
		"user":  userView(&user),
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
		"role":  u.Role,
	}
}
