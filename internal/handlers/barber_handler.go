package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/infra/storage"
	"github.com/alysonbarber/agenda-api/internal/media"
	"github.com/alysonbarber/agenda-api/internal/models"
)

// upload de foto aceita no máximo 5MB antes da conversão
const maxPhotoUploadBytes = 5 << 20

type BarberHandler struct {
	db      *gorm.DB
	storage *storage.MediaStorage
}

func NewBarberHandler(db *gorm.DB, mediaStorage *storage.MediaStorage) *BarberHandler {
	return &BarberHandler{db: db, storage: mediaStorage}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateBarberRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Order("id ASC").Find(&barbers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_barbers"})
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	barber := models.Barber{
		Name:   req.Name,
		Active: true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_barber"})
		return
	}

	c.JSON(http.StatusCreated, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_barber"})
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		barber.Name = *req.Name
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_barber"})
		return
	}

	c.JSON(http.StatusOK, barber)
}

// ======================================================
// FOTO (JPEG/PNG → webp 512px → S3)
// ======================================================

func (h *BarberHandler) UploadPhoto(c *gin.Context) {
	id := c.Param("id")

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Arquivo de foto obrigatório (campo photo).")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxPhotoUploadBytes+1))
	if err != nil {
		httperr.Internal(c, "photo_read_failed", "Erro ao ler a foto.")
		return
	}
	if len(raw) > maxPhotoUploadBytes {
		httperr.BadRequest(c, "photo_too_large", "Foto acima de 5MB.")
		return
	}

	normalized, err := media.NormalizePhoto(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "Foto inválida (use JPEG ou PNG).")
		return
	}

	url, err := h.storage.UploadBarberPhoto(c.Request.Context(), barber.ID, normalized)
	if err != nil {
		httperr.Internal(c, "photo_upload_failed", "Erro ao enviar a foto.")
		return
	}

	barber.PhotoURL = url
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Erro ao salvar a foto.")
		return
	}

	c.JSON(http.StatusOK, barber)
}
