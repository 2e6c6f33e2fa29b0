package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/middleware"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List devolve a trilha operacional da clínica, paginada e mais recente
// primeiro. Filtros opcionais: ?entity= e ?action=.
func (h *AuditLogsHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	q := h.db.Model(&models.AuditLog{}).Where("clinic_id = ?", clinicID)

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar auditoria.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("id DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar auditoria.")
		return
	}

	c.JSON(200, gin.H{
		"data":     logs,
		"page":     page,
		"per_page": perPage,
		"total":    total,
	})
}
