package booking

import (
	"context"
	"time"

	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/dto"
	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/phone"
	"github.com/alysonbarber/agenda-api/internal/timezone"
)

// SearchByPhone lista os próximos agendamentos de um cliente. A busca usa
// sempre o telefone normalizado (a formatação nunca entra na comparação).
type SearchByPhone struct {
	repo schedule.Repository
	now  func() time.Time
}

func NewSearchByPhone(
	repo schedule.Repository,
	tz string,
) *SearchByPhone {
	return &SearchByPhone{
		repo: repo,
		now:  func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *SearchByPhone) Execute(
	ctx context.Context,
	rawPhone string,
) ([]dto.AppointmentListDTO, error) {

	normalized := phone.Normalize(rawPhone)
	if !phone.IsValid(normalized) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	appointments, err := uc.repo.ListUpcomingByPhone(ctx, normalized, uc.now())
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
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
