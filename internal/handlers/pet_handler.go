package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vetlinkbr/vetlink-telehealth/internal/httperr"
	"github.com/vetlinkbr/vetlink-telehealth/internal/httpresp"
	"github.com/vetlinkbr/vetlink-telehealth/internal/middleware"
	"github.com/vetlinkbr/vetlink-telehealth/internal/models"
)

type PetHandler struct {
	db *gorm.DB
}

func NewPetHandler(db *gorm.DB) *PetHandler {
	return &PetHandler{db: db}
}

type CreatePetRequest struct {
	Name    string `json:"name" binding:"required"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	Notes   string `json:"notes"`
}

func (h *PetHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	pet := models.Pet{
		ClinicID: clinicID,
		OwnerID:  ownerID,
		Name:     req.Name,
		Species:  req.Species,
		Breed:    req.Breed,
		Notes:    req.Notes,
	}

	if err := h.db.Create(&pet).Error; err != nil {
		httperr.Internal(c, "failed_to_create_pet", "Erro ao cadastrar pet.")
		return
	}

	c.JSON(201, pet)
}

func (h *PetHandler) List(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var pets []models.Pet
	if err := h.db.
		Where("clinic_id = ? AND owner_id = ?", clinicID, ownerID).
		Order("name ASC").
		Find(&pets).Error; err != nil {
		httperr.Internal(c, "pet_list_failed", "Erro ao listar pets.")
		return
	}

	httpresp.List(c, pets)
}
