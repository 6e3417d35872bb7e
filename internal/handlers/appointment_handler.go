package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alysonbarber/agenda-api/internal/audit"
	"github.com/alysonbarber/agenda-api/internal/config"
	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/infra/cache"
	infraRepo "github.com/alysonbarber/agenda-api/internal/infra/repository"
	"github.com/alysonbarber/agenda-api/internal/middleware"
	"github.com/alysonbarber/agenda-api/internal/usecase/booking"
)

// ======================================================
// HANDLER (painel do barbeiro)
// ======================================================

type AppointmentHandler struct {
	db        *gorm.DB
	cfg       *config.Config
	audit     *audit.Dispatcher
	snapshots *cache.SnapshotCache
}

func NewAppointmentHandler(
	db *gorm.DB,
	cfg *config.Config,
	dispatcher *audit.Dispatcher,
	snapshots *cache.SnapshotCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:        db,
		cfg:       cfg,
		audit:     dispatcher,
		snapshots: snapshots,
	}
}

// ======================================================
// AGENDA (dia / semana, com auto-confirmação)
// ======================================================

func (h *AppointmentHandler) listAgenda(c *gin.Context, days int) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(h.cfg.ShopTimezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := booking.NewListAgenda(repo, h.cfg.ShopTimezone)

	out, err := uc.Execute(c.Request.Context(), date, days)
	if err != nil {
		httperr.Internal(c, "agenda_failed", "Erro ao listar agenda.")
		return
	}

	c.JSON(200, gin.H{
		"date":         dateStr,
		"days":         days,
		"appointments": out,
	})
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	h.listAgenda(c, 1)
}

func (h *AppointmentHandler) ListByWeek(c *gin.Context) {
	h.listAgenda(c, 7)
}

// ======================================================
// CONFIRM / CANCEL
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := booking.NewConfirmAppointment(repo, h.audit, h.cfg.ShopTimezone)

	ap, err := uc.Execute(c.Request.Context(), userID, uint(id))
	if err != nil {
		mapStateChangeErrors(c, err, "Agendamento não pode ser confirmado.")
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := booking.NewCancelAppointment(repo, h.snapshots, h.audit, h.cfg.ShopTimezone)

	ap, err := uc.Execute(c.Request.Context(), userID, uint(id))
	if err != nil {
		mapStateChangeErrors(c, err, "Agendamento não pode ser cancelado.")
		return
	}

	c.JSON(200, ap)
}

func mapStateChangeErrors(c *gin.Context, err error, invalidStateMsg string) {
	if httperr.IsBusiness(err, "appointment_not_found") {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}
	if httperr.IsBusiness(err, "invalid_state") {
		httperr.BadRequest(c, "invalid_state", invalidStateMsg)
		return
	}

	httperr.Internal(c, "appointment_update_failed", "Erro ao atualizar agendamento.")
}

// ======================================================
// STATS
// ======================================================

func (h *AppointmentHandler) Stats(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" || toStr == "" {
		httperr.BadRequest(c, "missing_range", "Período (from/to) obrigatório.")
		return
	}

	from, err := parseDate(h.cfg.ShopTimezone, fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_from", "Data inicial inválida.")
		return
	}

	to, err := parseDate(h.cfg.ShopTimezone, toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_to", "Data final inválida.")
		return
	}

	// intervalo inclusivo no dia final
	to = to.Add(24 * time.Hour)

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := booking.NewGetStats(repo)

	stats, err := uc.Execute(c.Request.Context(), from, to)
	if err != nil {
		httperr.Internal(c, "stats_failed", "Erro ao calcular estatísticas.")
		return
	}

	c.JSON(200, stats)
}

// ======================================================
// CLEANUP (disparo manual; o agendado roda no main)
// ======================================================

func (h *AppointmentHandler) Cleanup(c *gin.Context) {
	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := booking.NewCleanupOldAppointments(repo, h.audit, h.cfg.RetentionDays, h.cfg.ShopTimezone)

	deleted, err := uc.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "cleanup_failed", "Erro ao limpar agendamentos antigos.")
		return
	}

	c.JSON(200, gin.H{"deleted": deleted})
}
