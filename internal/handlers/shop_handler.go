package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alysonbarber/agenda-api/internal/config"
	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
)

// ShopHandler expõe a identidade da barbearia e a tabela de expediente.
// Single-tenant: tudo vem da config, nada é editável via API.
type ShopHandler struct {
	cfg *config.Config
}

func NewShopHandler(cfg *config.Config) *ShopHandler {
	return &ShopHandler{cfg: cfg}
}

func (h *ShopHandler) GetShop(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":     h.cfg.ShopName,
		"timezone": h.cfg.ShopTimezone,
		"whatsapp": h.cfg.ShopWhatsApp,
	})
}

type periodHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type dayHours struct {
	Weekday   int          `json:"weekday"`
	Open      bool         `json:"open"`
	Morning   *periodHours `json:"morning,omitempty"`
	Afternoon *periodHours `json:"afternoon,omitempty"`
}

func formatMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// BusinessHours publica a grade fixa de atendimento, dia a dia.
func (h *ShopHandler) BusinessHours(c *gin.Context) {
	days := make([]dayHours, 0, 7)

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := dayHours{Weekday: int(wd)}

		if morning, ok := schedule.PeriodWindow(wd, schedule.PeriodMorning); ok {
			day.Open = true
			day.Morning = &periodHours{
				Start: formatMinutes(morning.Start),
				End:   formatMinutes(morning.End),
			}
		}

		if afternoon, ok := schedule.PeriodWindow(wd, schedule.PeriodAfternoon); ok {
			day.Open = true
			day.Afternoon = &periodHours{
				Start: formatMinutes(afternoon.Start),
				End:   formatMinutes(afternoon.End),
			}
		}

		days = append(days, day)
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}
