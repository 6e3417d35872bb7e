package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alysonbarber/agenda-api/internal/audit"
	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/models"
	"github.com/alysonbarber/agenda-api/internal/phone"
	"github.com/alysonbarber/agenda-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID  uint
	ServiceID uint

	ClientName  string
	ClientPhone string

	Date   string // YYYY-MM-DD
	Time   string // HH:mm
	Period string // morning | afternoon
	Notes  string
}

// SnapshotInvalidator descarta snapshots em cache depois de uma gravação.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, barberID uint, day time.Time)
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      schedule.Repository
	snapshots SnapshotInvalidator
	audit     *audit.Dispatcher
	tz        string
	now       func() time.Time
}

func NewCreateAppointment(
	repo schedule.Repository,
	snapshots SnapshotInvalidator,
	audit *audit.Dispatcher,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		snapshots: snapshots,
		audit:     audit,
		tz:        tz,
		now:       func() time.Time { return timezone.NowIn(tz) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Cliente
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, httperr.ErrBusiness("missing_client_name")
	}

	clientPhone := phone.Normalize(in.ClientPhone)
	if !phone.IsValid(clientPhone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	// --------------------------------------------------
	// 2. Data / hora no fuso da barbearia
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(uc.tz),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	period, ok := schedule.ParsePeriod(in.Period)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	// --------------------------------------------------
	// 3. Serviço + barbeiro
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil || !barber.Active {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// --------------------------------------------------
	// 4. Re-check com snapshot fresco (double-check do fluxo
	//    otimista: a exibição usou cache, a submissão busca no banco)
	// --------------------------------------------------
	now := uc.now()

	loc := timezone.Location(uc.tz)
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	fresh, err := uc.repo.BookingsForDay(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	if !schedule.IsAvailable(start, svc, in.BarberID, period, fresh, now) {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	end := start.Add(time.Duration(schedule.EffectiveDuration(svc.DurationMin)) * time.Minute)

	// --------------------------------------------------
	// 5. Trava autoritativa no banco + criação
	// --------------------------------------------------
	if err := uc.repo.AssertNoTimeConflict(ctx, in.BarberID, start, end); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		Code:        uuid.NewString(),
		BarberID:    in.BarberID,
		ServiceID:   svc.ID,
		ClientName:  name,
		ClientPhone: clientPhone,
		StartTime:   start,
		EndTime:     end,
		Status:      string(schedule.InitialStatus()),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	ap.Barber = *barber
	ap.Service = *svc

	if uc.snapshots != nil {
		uc.snapshots.Invalidate(ctx, in.BarberID, dayStart)
	}

	// --------------------------------------------------
	// 6. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
