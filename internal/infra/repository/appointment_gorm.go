package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Snapshot (disponibilidade)
// --------------------------------------------------

func (r *AppointmentGormRepository) BookingsForDay(
	ctx context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"barber_id = ? AND status <> 'cancelled' AND start_time >= ? AND start_time < ?",
			barberID, dayStart, dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		// unique violation no código público (colisão de uuid é raríssima,
		// mas o cliente recebe um erro de negócio e tenta de novo)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return httperr.ErrBusiness("duplicate_code")
		}
		return err
	}
	return nil
}

// AssertNoTimeConflict é a trava autoritativa contra o double-submit:
// roda dentro do caminho de gravação, depois do re-check em memória.
func (r *AppointmentGormRepository) AssertNoTimeConflict(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND status <> 'cancelled' AND start_time < ? AND end_time > ?",
			barberID,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("time_conflict")
	}

	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByCode(
	ctx context.Context,
	code string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("code = ?", code).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForRange(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where(
			"start_time >= ? AND start_time < ?",
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListUpcomingByPhone(
	ctx context.Context,
	phone string,
	from time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where(
			"client_phone = ? AND status <> 'cancelled' AND start_time >= ?",
			phone,
			from,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListClients(
	ctx context.Context,
) ([]schedule.ClientRecord, error) {

	var out []schedule.ClientRecord

	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select(
			"client_name AS name",
			"client_phone AS phone",
			"COUNT(*) AS visits",
			"MAX(start_time) AS last_visit",
		).
		Group("client_name, client_phone").
		Order("MAX(start_time) DESC").
		Scan(&out).Error

	if err != nil {
		return nil, err
	}

	return out, nil
}

// --------------------------------------------------
// Retention
// --------------------------------------------------

func (r *AppointmentGormRepository) DeleteOlderThan(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("start_time < ?", cutoff).
		Delete(&models.Appointment{})

	return res.RowsAffected, res.Error
}

// Compile-time check
var _ schedule.Repository = (*AppointmentGormRepository)(nil)
