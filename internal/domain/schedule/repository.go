package schedule

import (
	"context"
	"time"

	"github.com/alysonbarber/agenda-api/internal/models"
)

// SnapshotSource entrega o snapshot de agendamentos de um barbeiro no dia.
// A camada de exibição pode servir um snapshot em cache; a submissão deve
// usar um snapshot recém-buscado (double-check).
type SnapshotSource interface {
	BookingsForDay(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)
}

type Repository interface {
	SnapshotSource

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByCode(
		ctx context.Context,
		code string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForRange(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListUpcomingByPhone(
		ctx context.Context,
		phone string,
		from time.Time,
	) ([]models.Appointment, error)

	ListClients(
		ctx context.Context,
	) ([]ClientRecord, error)

	// -------- Retention --------
	DeleteOlderThan(
		ctx context.Context,
		cutoff time.Time,
	) (int64, error)
}
