package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/session"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httpresp"
	"github.com/vetlinkbr/vetlink-telehealth/internal/middleware"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// Chat é entrega por polling, melhor esforço: o cliente relê a lista a
// cada tick com ?after=<último id>.
type MessageHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewMessageHandler(db *gorm.DB, repo domain.Repository) *MessageHandler {
	return &MessageHandler{db: db, repo: repo}
}

type PostMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

func (h *MessageHandler) Post(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Mensagem inválida.")
		return
	}

	if _, err := h.repo.GetSessionByID(c.Request.Context(), sessionID); err != nil {
		httperr.NotFound(c, "session_not_found", "Sessão não encontrada.")
		return
	}

	var sender models.User
	if err := h.db.First(&sender, userID).Error; err != nil {
		httperr.Internal(c, "sender_not_found", "Erro ao identificar remetente.")
		return
	}

	msg := models.ChatMessage{
		SessionID:  sessionID,
		SenderID:   userID,
		SenderName: sender.Name,
		Message:    req.Message,
	}

	if err := h.repo.AppendMessage(c.Request.Context(), &msg); err != nil {
		httperr.Internal(c, "message_failed", "Erro ao enviar mensagem.")
		return
	}

	c.JSON(201, msg)
}

func (h *MessageHandler) List(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	afterID := uint(0)
	if afterStr := c.Query("after"); afterStr != "" {
		if n, err := strconv.ParseUint(afterStr, 10, 64); err == nil {
			afterID = uint(n)
		}
	}

	msgs, err := h.repo.ListMessagesSince(c.Request.Context(), sessionID, afterID)
	if err != nil {
		httperr.Internal(c, "message_list_failed", "Erro ao listar mensagens.")
		return
	}

	httpresp.List(c, msgs)
}
