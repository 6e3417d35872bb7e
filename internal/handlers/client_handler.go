package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alysonbarber/agenda-api/internal/httpresp"
	infraRepo "github.com/alysonbarber/agenda-api/internal/infra/repository"
	"github.com/alysonbarber/agenda-api/internal/usecase/booking"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS (derivado dos agendamentos)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := booking.NewListClients(repo)

	clients, err := uc.Execute(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_clients",
		})
		return
	}

	if query != "" {
		filtered := clients[:0]
		for _, cl := range clients {
			if strings.Contains(strings.ToLower(cl.Name), query) ||
				strings.Contains(cl.Phone, query) {
				filtered = append(filtered, cl)
			}
		}
		clients = filtered
	}

	httpresp.List(c, clients)
}
