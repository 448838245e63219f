package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/httpresp"
	"github.com/PedrohFolster/inkspiration/internal/middleware"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List pages through the caller's own audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)
	page := pageFromQuery(c)

	// --------------------------------------------------
	// Query base (sempre restrita ao usuário)
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("user_id = ?", userID)

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if from, err := time.Parse(dateLayout, c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}

	if to, err := time.Parse(dateLayout, c.Query("to")); err == nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.Session(&gorm.Session{}).
		Order("created_at DESC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.OK(c, pagination.NewResult(logs, total, page))
}
