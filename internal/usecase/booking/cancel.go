package booking

import (
	"context"
	"time"

	"github.com/alysonbarber/agenda-api/internal/audit"
	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/models"
	"github.com/alysonbarber/agenda-api/internal/timezone"
)

// CancelAppointment cancela pelo ID interno (painel do barbeiro).
type CancelAppointment struct {
	repo      schedule.Repository
	snapshots SnapshotInvalidator
	audit     *audit.Dispatcher
	tz        string
	now       func() time.Time
}

func NewCancelAppointment(
	repo schedule.Repository,
	snapshots SnapshotInvalidator,
	audit *audit.Dispatcher,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:      repo,
		snapshots: snapshots,
		audit:     audit,
		tz:        tz,
		now:       func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.cancel(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func (uc *CancelAppointment) cancel(ctx context.Context, ap *models.Appointment) error {
	if err := schedule.Cancel(ap, uc.now()); err != nil {
		return err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return err
	}

	// o horário volta a ficar oferecível na mesma hora
	if uc.snapshots != nil {
		loc := timezone.Location(uc.tz)
		day := time.Date(
			ap.StartTime.Year(), ap.StartTime.Month(), ap.StartTime.Day(),
			0, 0, 0, 0,
			loc,
		)
		uc.snapshots.Invalidate(ctx, ap.BarberID, day)
	}

	return nil
}
