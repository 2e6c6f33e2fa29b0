package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/middleware"
	ucSession "github.com/vetlinkbr/vetlink-telehealth/internal/usecase/session"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/session"
)

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	getOrCreateUC *ucSession.GetOrCreateSession
	startUC       *ucSession.StartSession
	endUC         *ucSession.EndSession

	repo domain.Repository
}

func NewSessionHandler(
	getOrCreateUC *ucSession.GetOrCreateSession,
	startUC *ucSession.StartSession,
	endUC *ucSession.EndSession,
	repo domain.Repository,
) *SessionHandler {
	return &SessionHandler{
		getOrCreateUC: getOrCreateUC,
		startUC:       startUC,
		endUC:         endUC,
		repo:          repo,
	}
}

func writeSessionError(c *gin.Context, err error) {
	if ise, ok := httperr.AsInvalidState(err); ok {
		httperr.Conflict(c, "invalid_state",
			"Transição não permitida: "+ise.Current+" → "+ise.Attempted+".")
		return
	}

	switch {
	case httperr.IsBusiness(err, "session_not_found"):
		httperr.NotFound(c, "session_not_found", "Sessão não encontrada.")
	case httperr.IsBusiness(err, "consultation_not_found"):
		httperr.NotFound(c, "consultation_not_found", "Consulta não encontrada.")
	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "booking_not_confirmed"):
		httperr.BadRequest(c, "booking_not_confirmed", "Agendamento ainda não confirmado.")
	default:
		httperr.Internal(c, "session_error", "Erro ao processar sessão.")
	}
}

// ======================================================
// GET OR CREATE (por agendamento)
// ======================================================

func (h *SessionHandler) GetOrCreate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	s, consultation, err := h.getOrCreateUC.Execute(c.Request.Context(), clinicID, bookingID, userID)
	if err != nil {
		writeSessionError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"session":      s,
		"consultation": consultation,
	})
}

// ======================================================
// STATE
// ======================================================

// GetByID é o alvo do poller de 3s do cliente.
func (h *SessionHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.repo.GetSessionByID(c.Request.Context(), id)
	if err != nil {
		writeSessionError(c, err)
		return
	}

	c.JSON(200, s)
}

// ResolveByConsultation é o caminho de fallback do poller: quando a
// referência de sessão de um lado fica obsoleta, re-resolve pela
// consulta e devolve a sessão viva mais recente.
func (h *SessionHandler) ResolveByConsultation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.repo.GetOpenSessionByConsultation(c.Request.Context(), id)
	if err != nil {
		writeSessionError(c, err)
		return
	}

	c.JSON(200, s)
}

// ======================================================
// START / END
// ======================================================

func (h *SessionHandler) Start(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.startUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeSessionError(c, err)
		return
	}

	c.JSON(200, s)
}

func (h *SessionHandler) End(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.endUC.Execute(c.Request.Context(), clinicID, id, &userID)
	if err != nil {
		writeSessionError(c, err)
		return
	}

	c.JSON(200, s)
}
