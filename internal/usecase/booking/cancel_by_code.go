package booking

import (
	"context"

	"github.com/alysonbarber/agenda-api/internal/audit"
	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/models"
	"github.com/alysonbarber/agenda-api/internal/phone"
)

// CancelByCode cancela pelo código público do agendamento. O telefone do
// cliente funciona como prova de posse: sem match, respondemos not_found
// para não vazar a existência do agendamento.
type CancelByCode struct {
	inner *CancelAppointment
}

func NewCancelByCode(inner *CancelAppointment) *CancelByCode {
	return &CancelByCode{inner: inner}
}

func (uc *CancelByCode) Execute(
	ctx context.Context,
	code string,
	clientPhone string,
) (*models.Appointment, error) {

	ap, err := uc.inner.repo.GetAppointmentByCode(ctx, code)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if ap.ClientPhone != phone.Normalize(clientPhone) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.inner.cancel(ctx, ap); err != nil {
		return nil, err
	}

	uc.inner.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled_by_client",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
