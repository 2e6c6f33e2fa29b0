package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/vetlinkbr/vetlink-telehealth/internal/domain/booking"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httpresp"
	"github.com/vetlinkbr/vetlink-telehealth/internal/middleware"
	ucBooking "github.com/vetlinkbr/vetlink-telehealth/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC     *ucBooking.CreateBooking
	confirmUC    *ucBooking.ConfirmBooking
	cancelUC     *ucBooking.CancelBooking
	rescheduleUC *ucBooking.RescheduleBooking
	listByDateUC *ucBooking.ListBookingsByDate
	joinableUC   *ucBooking.CheckJoinable

	repo domain.Repository
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	confirmUC *ucBooking.ConfirmBooking,
	cancelUC *ucBooking.CancelBooking,
	rescheduleUC *ucBooking.RescheduleBooking,
	listByDateUC *ucBooking.ListBookingsByDate,
	joinableUC *ucBooking.CheckJoinable,
	repo domain.Repository,
) *BookingHandler {
	return &BookingHandler{
		createUC:     createUC,
		confirmUC:    confirmUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		listByDateUC: listByDateUC,
		joinableUC:   joinableUC,
		repo:         repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	VeterinarianID uint   `json:"veterinarian_id" binding:"required"`
	PetID          uint   `json:"pet_id" binding:"required"`
	Date           string `json:"date" binding:"required"`
	SlotStart      string `json:"time_slot_start" binding:"required"`
	SlotEnd        string `json:"time_slot_end" binding:"required"`
	BookingType    string `json:"booking_type"`
	Priority       string `json:"priority"`
	ReasonForVisit string `json:"reason_for_visit"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type RescheduleBookingRequest struct {
	NewDate      string `json:"new_date" binding:"required"`
	NewSlotStart string `json:"new_time_slot_start" binding:"required"`
	NewSlotEnd   string `json:"new_time_slot_end" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func actorFromContext(c *gin.Context) domain.Actor {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role, _ := c.MustGet(middleware.ContextUserRole).(string)
	return domain.Actor{UserID: &userID, Role: role}
}

// writeBookingError traduz erros de domínio para HTTP. invalid_state é
// 409: a transição não é permitida a partir do estado atual.
func writeBookingError(c *gin.Context, err error) {
	if ise, ok := httperr.AsInvalidState(err); ok {
		httperr.Conflict(c, "invalid_state",
			"Transição não permitida: "+ise.Current+" → "+ise.Attempted+".")
		return
	}

	switch {
	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "pet_not_found"):
		httperr.BadRequest(c, "pet_not_found", "Pet não encontrado.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
	case httperr.IsBusiness(err, "slot_in_past"):
		httperr.BadRequest(c, "slot_in_past", "Horário no passado.")
	case httperr.IsBusiness(err, "invalid_booking_type"):
		httperr.BadRequest(c, "invalid_booking_type", "Tipo de atendimento inválido.")
	case httperr.IsBusiness(err, "invalid_priority"):
		httperr.BadRequest(c, "invalid_priority", "Prioridade inválida.")
	default:
		httperr.Internal(c, "booking_error", "Erro ao processar agendamento.")
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ClinicID:       clinicID,
		OwnerID:        ownerID,
		VeterinarianID: req.VeterinarianID,
		PetID:          req.PetID,
		Date:           req.Date,
		SlotStart:      req.SlotStart,
		SlotEnd:        req.SlotEnd,
		BookingType:    req.BookingType,
		Priority:       req.Priority,
		ReasonForVisit: req.ReasonForVisit,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(201, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	role, _ := c.MustGet(middleware.ContextUserRole).(string)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), clinicID, userID, role, date)
	if err != nil {
		httperr.Internal(c, "booking_list_failed", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// CONFIRM / CANCEL / RESCHEDULE
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.confirmUC.Execute(c.Request.Context(), clinicID, id, actorFromContext(c))
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req)

	b, err := h.cancelUC.Execute(c.Request.Context(), clinicID, id, actorFromContext(c), req.Reason)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.rescheduleUC.Execute(
		c.Request.Context(),
		ucBooking.RescheduleBookingInput{
			ClinicID:     clinicID,
			BookingID:    id,
			NewDate:      req.NewDate,
			NewSlotStart: req.NewSlotStart,
			NewSlotEnd:   req.NewSlotEnd,
		},
		actorFromContext(c),
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, b)
}

// ======================================================
// JOIN WINDOW
// ======================================================

func (h *BookingHandler) Joinable(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.joinableUC.Execute(c.Request.Context(), clinicID, id)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, result)
}

// ======================================================
// ACTION LOG
// ======================================================

func (h *BookingHandler) ActionLog(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// garante que o agendamento pertence à clínica do token
	if _, err := h.repo.GetBookingForClinic(c.Request.Context(), id, clinicID); err != nil {
		httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
		return
	}

	logs, err := h.repo.ListActionLog(c.Request.Context(), id)
	if err != nil {
		httperr.Internal(c, "action_log_failed", "Erro ao listar trilha de ações.")
		return
	}

	httpresp.List(c, logs)
}
