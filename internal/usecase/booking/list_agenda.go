package booking

import (
	"context"
	"log"
	"time"

	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/dto"
	"github.com/alysonbarber/agenda-api/internal/timezone"
)

// ListAgenda monta a visão de dia/semana do painel. Agendamentos pending
// listados são promovidos a confirmed (comportamento do painel: abrir a
// agenda confirma o que chegou pelo site).
type ListAgenda struct {
	repo schedule.Repository
	tz   string
	now  func() time.Time
}

func NewListAgenda(
	repo schedule.Repository,
	tz string,
) *ListAgenda {
	return &ListAgenda{
		repo: repo,
		tz:   tz,
		now:  func() time.Time { return timezone.NowIn(tz) },
	}
}

// Execute lista a partir de date por days dias (1 = dia, 7 = semana).
func (uc *ListAgenda) Execute(
	ctx context.Context,
	date time.Time,
	days int,
) ([]dto.AppointmentListDTO, error) {

	if days <= 0 {
		days = 1
	}

	loc := timezone.Location(uc.tz)

	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(time.Duration(days) * 24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]

		// auto-confirmação dos pendentes exibidos
		if schedule.Status(ap.Status) == schedule.StatusPending {
			if err := schedule.Confirm(ap, now); err == nil {
				if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
					log.Println("auto-confirm:", err)
				}
			}
		}

		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Code:        ap.Code,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			BarberName:  ap.Barber.Name,
			ServiceName: ap.Service.Name,
			Price:       ap.Service.Price,
		})
	}

	return out, nil
}
