package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alysonbarber/agenda-api/internal/audit"
	"github.com/alysonbarber/agenda-api/internal/config"
	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/httpresp"
	"github.com/alysonbarber/agenda-api/internal/infra/cache"
	infraRepo "github.com/alysonbarber/agenda-api/internal/infra/repository"
	"github.com/alysonbarber/agenda-api/internal/models"
	"github.com/alysonbarber/agenda-api/internal/notify"
	"github.com/alysonbarber/agenda-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db        *gorm.DB
	cfg       *config.Config
	audit     *audit.Dispatcher
	snapshots *cache.SnapshotCache
	whatsapp  *notify.Builder
}

func NewPublicHandler(
	db *gorm.DB,
	cfg *config.Config,
	dispatcher *audit.Dispatcher,
	snapshots *cache.SnapshotCache,
) *PublicHandler {
	return &PublicHandler{
		db:        db,
		cfg:       cfg,
		audit:     dispatcher,
		snapshots: snapshots,
		whatsapp:  notify.NewBuilder(cfg.ShopWhatsApp),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Date        string `json:"date" binding:"required"`   // YYYY-MM-DD
	Time        string `json:"time" binding:"required"`   // HH:mm
	Period      string `json:"period" binding:"required"` // morning | afternoon
	Notes       string `json:"notes"`
}

type PublicCancelRequest struct {
	ClientPhone string `json:"client_phone" binding:"required"`
}

////////////////////////////////////////////////////////
// CATÁLOGO
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("active = true")

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

////////////////////////////////////////////////////////
// AVAILABILITY (cache de exibição; a submissão re-valida)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	periodStr := c.Query("period")
	barberIDStr := c.Query("barber_id")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || periodStr == "" || barberIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, período, barbeiro e serviço obrigatórios.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	period, ok := schedule.ParsePeriod(periodStr)
	if !ok {
		httperr.BadRequest(c, "invalid_period", "Período inválido (morning/afternoon).")
		return
	}

	date, err := parseDate(h.cfg.ShopTimezone, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := booking.NewGetAvailability(repo, h.snapshots, h.cfg.ShopTimezone)

	slots, err := uc.Execute(
		c.Request.Context(),
		schedule.AvailabilityInput{
			BarberID:  uint(barberID),
			ServiceID: uint(serviceID),
			Date:      date,
			Period:    period,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
			return
		}
		if httperr.IsBusiness(err, "barber_not_found") {
			httperr.BadRequest(c, "barber_not_found", "Barbeiro inválido.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   dateStr,
		"period": period,
		"slots":  slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := booking.NewCreateAppointment(repo, h.snapshots, h.audit, h.cfg.ShopTimezone)

	ap, err := uc.Execute(
		c.Request.Context(),
		booking.CreateAppointmentInput{
			BarberID:    req.BarberID,
			ServiceID:   req.ServiceID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			Date:        req.Date,
			Time:        req.Time,
			Period:      req.Period,
			Notes:       req.Notes,
		},
	)

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment":   ap,
		"whatsapp_link": h.whatsapp.ConfirmationLink(ap),
	})
}

func mapCreateErrors(c *gin.Context, err error) {
	for _, code := range []string{
		"missing_client_name",
		"invalid_phone",
		"invalid_date_or_time",
		"invalid_period",
		"service_not_found",
		"barber_not_found",
		"slot_unavailable",
		"time_conflict",
	} {
		if httperr.IsBusiness(err, code) {
			httperr.BadRequest(c, code, "Não foi possível agendar.")
			return
		}
	}

	httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
}

////////////////////////////////////////////////////////
// MEUS AGENDAMENTOS (por telefone)
////////////////////////////////////////////////////////

func (h *PublicHandler) SearchByPhone(c *gin.Context) {
	phoneStr := c.Query("phone")
	if phoneStr == "" {
		httperr.BadRequest(c, "missing_phone", "Telefone obrigatório.")
		return
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	uc := booking.NewSearchByPhone(repo, h.cfg.ShopTimezone)

	out, err := uc.Execute(c.Request.Context(), phoneStr)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_phone") {
			httperr.BadRequest(c, "invalid_phone", "Telefone inválido.")
			return
		}

		httperr.Internal(c, "search_failed", "Erro ao buscar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// CANCEL (código público + telefone como prova de posse)
////////////////////////////////////////////////////////

func (h *PublicHandler) CancelByCode(c *gin.Context) {
	code := c.Param("code")

	var req PublicCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	inner := booking.NewCancelAppointment(repo, h.snapshots, h.audit, h.cfg.ShopTimezone)
	uc := booking.NewCancelByCode(inner)

	ap, err := uc.Execute(c.Request.Context(), code, req.ClientPhone)
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Agendamento não pode ser cancelado.")
			return
		}

		httperr.Internal(c, "cancel_failed", "Erro ao cancelar agendamento.")
		return
	}

	c.JSON(http.StatusOK, ap)
}
