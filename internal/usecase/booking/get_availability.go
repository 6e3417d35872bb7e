package booking

import (
	"context"
	"time"

	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/timezone"
)

// GetAvailability calcula os horários oferecíveis para exibição. O
// snapshot pode vir de cache; a submissão re-valida com snapshot fresco
// (ver CreateAppointment).
type GetAvailability struct {
	repo     schedule.Repository
	snapshot schedule.SnapshotSource
	tz       string
	now      func() time.Time
}

func NewGetAvailability(
	repo schedule.Repository,
	snapshot schedule.SnapshotSource,
	tz string,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		snapshot: snapshot,
		tz:       tz,
		now:      func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in schedule.AvailabilityInput,
) ([]schedule.TimeSlot, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !svc.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil || !barber.Active {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	loc := timezone.Location(uc.tz)
	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		loc,
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	existing, err := uc.snapshot.BookingsForDay(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	starts := schedule.ListSlots(
		dayStart,
		svc,
		in.BarberID,
		in.Period,
		existing,
		uc.now(),
	)

	duration := time.Duration(schedule.EffectiveDuration(svc.DurationMin)) * time.Minute

	slots := make([]schedule.TimeSlot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, schedule.TimeSlot{
			Start: start.Format("15:04"),
			End:   start.Add(duration).Format("15:04"),
		})
	}

	return slots, nil
}
