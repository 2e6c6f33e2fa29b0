package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/middleware"
	"github.com/vetlinkbr/vetlink-telehealth/internal/settings"
)

type SettingsHandler struct {
	provider *settings.Provider
}

func NewSettingsHandler(provider *settings.Provider) *SettingsHandler {
	return &SettingsHandler{provider: provider}
}

type UpdateSettingsRequest struct {
	JoinWindowMinutes *int    `json:"join_window_minutes"`
	TimeFormat        *string `json:"time_format"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	s, err := h.provider.Get(c.Request.Context(), clinicID)
	if err != nil {
		if httperr.IsBusiness(err, "clinic_not_found") {
			httperr.NotFound(c, "clinic_not_found", "Clínica não encontrada.")
			return
		}
		httperr.Internal(c, "settings_failed", "Erro ao carregar configurações.")
		return
	}

	c.JSON(200, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	s, err := h.provider.Update(c.Request.Context(), clinicID, req.JoinWindowMinutes, req.TimeFormat)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "clinic_not_found"):
			httperr.NotFound(c, "clinic_not_found", "Clínica não encontrada.")
		case httperr.IsBusiness(err, "join_window_out_of_range"):
			httperr.BadRequest(c, "join_window_out_of_range", "Janela de entrada deve ficar entre 0 e 120 minutos.")
		default:
			httperr.Internal(c, "settings_failed", "Erro ao atualizar configurações.")
		}
		return
	}

	c.JSON(200, s)
}
