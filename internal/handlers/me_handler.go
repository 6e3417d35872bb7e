package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alysonbarber/agenda-api/internal/config"
	"github.com/alysonbarber/agenda-api/internal/middleware"
	"github.com/alysonbarber/agenda-api/internal/models"
)

type MeHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewMeHandler(db *gorm.DB, cfg *config.Config) *MeHandler {
	return &MeHandler{db: db, cfg: cfg}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
			"role":  user.Role,
		},
		"shop": gin.H{
			"name":     h.cfg.ShopName,
			"timezone": h.cfg.ShopTimezone,
			"whatsapp": h.cfg.ShopWhatsApp,
		},
	})
}
