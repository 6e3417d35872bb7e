package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/httperr"
	"github.com/alysonbarber/agenda-api/internal/models"
	"github.com/alysonbarber/agenda-api/internal/timezone"
)

const testTZ = "America/Sao_Paulo"

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	services map[uint]*models.Service
	barbers  map[uint]*models.Barber

	appointments []models.Appointment
	nextID       uint

	conflictErr error
	deletedRows int64
	lastCutoff  time.Time
	updatedIDs  []uint
}

var _ schedule.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uint]*models.Service{},
		barbers:  map[uint]*models.Barber{},
		nextID:   1,
	}
}

func (f *fakeRepo) addService(id uint, durationMin int, price float64) *models.Service {
	svc := &models.Service{ID: id, Name: "Corte", DurationMin: durationMin, Price: price, Active: true}
	f.services[id] = svc
	return svc
}

func (f *fakeRepo) addBarber(id uint, name string) *models.Barber {
	b := &models.Barber{ID: id, Name: name, Active: true}
	f.barbers[id] = b
	return b
}

func (f *fakeRepo) BookingsForDay(
	_ context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if schedule.Status(ap.Status) == schedule.StatusCancelled {
			continue
		}
		if ap.StartTime.Before(dayStart) || !ap.StartTime.Before(dayEnd) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (f *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return svc, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, id uint) (*models.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	return b, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = f.nextID
	f.nextID++
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) AssertNoTimeConflict(
	_ context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) error {
	if f.conflictErr != nil {
		return f.conflictErr
	}
	for _, ap := range f.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if schedule.Status(ap.Status) == schedule.StatusCancelled {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			ap := f.appointments[i]
			return &ap, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) GetAppointmentByCode(_ context.Context, code string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].Code == code {
			ap := f.appointments[i]
			return &ap, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			f.updatedIDs = append(f.updatedIDs, ap.ID)
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (f *fakeRepo) ListAppointmentsForRange(
	_ context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (f *fakeRepo) ListUpcomingByPhone(
	_ context.Context,
	clientPhone string,
	from time.Time,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ClientPhone != clientPhone {
			continue
		}
		if ap.StartTime.Before(from) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (f *fakeRepo) ListClients(_ context.Context) ([]schedule.ClientRecord, error) {
	seen := map[string]*schedule.ClientRecord{}
	var order []string
	for _, ap := range f.appointments {
		rec, ok := seen[ap.ClientPhone]
		if !ok {
			rec = &schedule.ClientRecord{Name: ap.ClientName, Phone: ap.ClientPhone}
			seen[ap.ClientPhone] = rec
			order = append(order, ap.ClientPhone)
		}
		rec.Visits++
		if ap.StartTime.After(rec.LastVisit) {
			rec.LastVisit = ap.StartTime
		}
	}
	out := make([]schedule.ClientRecord, 0, len(order))
	for _, key := range order {
		out = append(out, *seen[key])
	}
	return out, nil
}

func (f *fakeRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.lastCutoff = cutoff
	return f.deletedRows, nil
}

// ======================================================
// HELPERS
// ======================================================

func fixedClock(value string) func() time.Time {
	loc := timezone.Location(testTZ)
	t, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func seedBooking(f *fakeRepo, barberID uint, day, start, end string, status schedule.Status) *models.Appointment {
	loc := timezone.Location(testTZ)
	s, _ := time.ParseInLocation("2006-01-02 15:04", day+" "+start, loc)
	e, _ := time.ParseInLocation("2006-01-02 15:04", day+" "+end, loc)

	ap := &models.Appointment{
		Code:        "code-" + day + "-" + start,
		BarberID:    barberID,
		ServiceID:   1,
		Service:     models.Service{ID: 1, Name: "Corte", DurationMin: int(e.Sub(s).Minutes()), Active: true},
		ClientName:  "Cliente Teste",
		ClientPhone: "11987654321",
		StartTime:   s,
		EndTime:     e,
		Status:      string(status),
	}
	_ = f.CreateAppointment(context.Background(), ap)
	return ap
}

// ======================================================
// CREATE
// ======================================================

// 2025-06-02 é segunda-feira (dia estendido).
func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	newUC := func(repo *fakeRepo) *CreateAppointment {
		uc := NewCreateAppointment(repo, nil, nil, testTZ)
		uc.now = fixedClock("2025-05-26 09:00")
		return uc
	}

	baseInput := CreateAppointmentInput{
		BarberID:    1,
		ServiceID:   1,
		ClientName:  "João Silva",
		ClientPhone: "(11) 98765-4321",
		Date:        "2025-06-02",
		Time:        "09:00",
		Period:      "morning",
	}

	t.Run("cria com status pending e telefone normalizado", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")

		ap, err := newUC(repo).Execute(ctx, baseInput)
		require.NoError(t, err)

		assert.Equal(t, string(schedule.StatusPending), ap.Status)
		assert.Equal(t, "11987654321", ap.ClientPhone)
		assert.NotEmpty(t, ap.Code)
		assert.Equal(t, "09:00", ap.StartTime.Format("15:04"))
		assert.Equal(t, "09:30", ap.EndTime.Format("15:04"))
		assert.Len(t, repo.appointments, 1)
	})

	t.Run("duração de 75min grava bloco de 90min", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 75, 90)
		repo.addBarber(1, "Alyson")

		ap, err := newUC(repo).Execute(ctx, baseInput)
		require.NoError(t, err)

		assert.Equal(t, "10:30", ap.EndTime.Format("15:04"))
	})

	t.Run("rejeita horário ocupado", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")
		seedBooking(repo, 1, "2025-06-02", "09:00", "10:00", schedule.StatusConfirmed)

		in := baseInput
		in.Time = "09:30"

		_, err := newUC(repo).Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	})

	t.Run("horário cancelado volta a ficar livre", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")
		seedBooking(repo, 1, "2025-06-02", "09:00", "10:00", schedule.StatusCancelled)

		_, err := newUC(repo).Execute(ctx, baseInput)
		assert.NoError(t, err)
	})

	t.Run("trava do banco segura corrida entre submissões", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")
		repo.conflictErr = httperr.ErrBusiness("time_conflict")

		_, err := newUC(repo).Execute(ctx, baseInput)
		assert.True(t, httperr.IsBusiness(err, "time_conflict"))
		assert.Empty(t, repo.appointments)
	})

	t.Run("rejeita telefone com menos de 11 dígitos", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")

		in := baseInput
		in.ClientPhone = "9876-4321"

		_, err := newUC(repo).Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
	})

	t.Run("rejeita nome vazio", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")

		in := baseInput
		in.ClientName = "   "

		_, err := newUC(repo).Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "missing_client_name"))
	})

	t.Run("rejeita serviço inativo", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50).Active = false
		repo.addBarber(1, "Alyson")

		_, err := newUC(repo).Execute(ctx, baseInput)
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})

	t.Run("rejeita domingo", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")

		in := baseInput
		in.Date = "2025-06-01" // domingo

		_, err := newUC(repo).Execute(ctx, in)
		assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()
	loc := timezone.Location(testTZ)

	newUC := func(repo *fakeRepo) *GetAvailability {
		uc := NewGetAvailability(repo, repo, testTZ)
		uc.now = fixedClock("2025-05-26 09:00")
		return uc
	}

	day := func(value string) time.Time {
		d, _ := time.ParseInLocation("2006-01-02", value, loc)
		return d
	}

	t.Run("manhã livre rende oito janelas de 30min", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")

		slots, err := newUC(repo).Execute(ctx, schedule.AvailabilityInput{
			BarberID:  1,
			ServiceID: 1,
			Date:      day("2025-06-02"),
			Period:    schedule.PeriodMorning,
		})
		require.NoError(t, err)
		require.Len(t, slots, 8)

		assert.Equal(t, schedule.TimeSlot{Start: "08:00", End: "08:30"}, slots[0])
		assert.Equal(t, schedule.TimeSlot{Start: "11:30", End: "12:00"}, slots[7])
	})

	t.Run("janela ocupada some da lista", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")
		seedBooking(repo, 1, "2025-06-02", "09:00", "10:00", schedule.StatusConfirmed)

		slots, err := newUC(repo).Execute(ctx, schedule.AvailabilityInput{
			BarberID:  1,
			ServiceID: 1,
			Date:      day("2025-06-02"),
			Period:    schedule.PeriodMorning,
		})
		require.NoError(t, err)

		starts := make([]string, 0, len(slots))
		for _, s := range slots {
			starts = append(starts, s.Start)
		}
		assert.Equal(t, []string{"08:00", "08:30", "10:00", "10:30", "11:00", "11:30"}, starts)
	})

	t.Run("domingo responde lista vazia, não erro", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addService(1, 30, 50)
		repo.addBarber(1, "Alyson")

		slots, err := newUC(repo).Execute(ctx, schedule.AvailabilityInput{
			BarberID:  1,
			ServiceID: 1,
			Date:      day("2025-06-01"),
			Period:    schedule.PeriodMorning,
		})
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("serviço inexistente", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBarber(1, "Alyson")

		_, err := newUC(repo).Execute(ctx, schedule.AvailabilityInput{
			BarberID:  1,
			ServiceID: 99,
			Date:      day("2025-06-02"),
			Period:    schedule.PeriodMorning,
		})
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})
}

// ======================================================
// CONFIRM / CANCEL
// ======================================================

func TestConfirmAndCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmar pending persiste confirmed", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedBooking(repo, 1, "2025-06-02", "09:00", "09:30", schedule.StatusPending)

		uc := NewConfirmAppointment(repo, nil, testTZ)
		uc.now = fixedClock("2025-05-26 09:00")

		out, err := uc.Execute(ctx, 7, ap.ID)
		require.NoError(t, err)

		assert.Equal(t, string(schedule.StatusConfirmed), out.Status)
		assert.NotNil(t, out.ConfirmedAt)
		assert.Contains(t, repo.updatedIDs, ap.ID)
	})

	t.Run("confirmar cancelado falha", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedBooking(repo, 1, "2025-06-02", "09:00", "09:30", schedule.StatusCancelled)

		uc := NewConfirmAppointment(repo, nil, testTZ)
		uc.now = fixedClock("2025-05-26 09:00")

		_, err := uc.Execute(ctx, 7, ap.ID)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("cancelar confirmado persiste cancelled", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedBooking(repo, 1, "2025-06-02", "09:00", "09:30", schedule.StatusConfirmed)

		uc := NewCancelAppointment(repo, nil, nil, testTZ)
		uc.now = fixedClock("2025-05-26 09:00")

		out, err := uc.Execute(ctx, 7, ap.ID)
		require.NoError(t, err)

		assert.Equal(t, string(schedule.StatusCancelled), out.Status)
		assert.NotNil(t, out.CancelledAt)
	})
}

func TestCancelByCode(t *testing.T) {
	ctx := context.Background()

	newUC := func(repo *fakeRepo) *CancelByCode {
		inner := NewCancelAppointment(repo, nil, nil, testTZ)
		inner.now = fixedClock("2025-05-26 09:00")
		return NewCancelByCode(inner)
	}

	t.Run("telefone do dono cancela", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedBooking(repo, 1, "2025-06-02", "09:00", "09:30", schedule.StatusPending)

		out, err := newUC(repo).Execute(ctx, ap.Code, "(11) 98765-4321")
		require.NoError(t, err)
		assert.Equal(t, string(schedule.StatusCancelled), out.Status)
	})

	t.Run("telefone errado responde not_found", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedBooking(repo, 1, "2025-06-02", "09:00", "09:30", schedule.StatusPending)

		_, err := newUC(repo).Execute(ctx, ap.Code, "(11) 91111-1111")
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})

	t.Run("código inexistente responde not_found", func(t *testing.T) {
		repo := newFakeRepo()

		_, err := newUC(repo).Execute(ctx, "nope", "(11) 98765-4321")
		assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
	})
}

// ======================================================
// AGENDA / SEARCH / STATS
// ======================================================

func TestListAgendaAutoConfirm(t *testing.T) {
	ctx := context.Background()
	loc := timezone.Location(testTZ)

	repo := newFakeRepo()
	pending := seedBooking(repo, 1, "2025-06-02", "09:00", "09:30", schedule.StatusPending)
	cancelled := seedBooking(repo, 1, "2025-06-02", "10:00", "10:30", schedule.StatusCancelled)

	uc := NewListAgenda(repo, testTZ)
	uc.now = fixedClock("2025-06-02 08:00")

	date, _ := time.ParseInLocation("2006-01-02", "2025-06-02", loc)
	out, err := uc.Execute(ctx, date, 1)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, string(schedule.StatusConfirmed), out[0].Status)
	assert.Contains(t, repo.updatedIDs, pending.ID)

	// cancelados continuam listados como estão
	assert.Equal(t, string(schedule.StatusCancelled), out[1].Status)
	assert.NotContains(t, repo.updatedIDs, cancelled.ID)
}

func TestListAgendaWeekRange(t *testing.T) {
	ctx := context.Background()
	loc := timezone.Location(testTZ)

	repo := newFakeRepo()
	seedBooking(repo, 1, "2025-06-02", "09:00", "09:30", schedule.StatusConfirmed)
	seedBooking(repo, 1, "2025-06-07", "09:00", "09:30", schedule.StatusConfirmed)
	seedBooking(repo, 1, "2025-06-09", "09:00", "09:30", schedule.StatusConfirmed) // fora da semana

	uc := NewListAgenda(repo, testTZ)
	uc.now = fixedClock("2025-06-02 08:00")

	date, _ := time.ParseInLocation("2006-01-02", "2025-06-02", loc)
	out, err := uc.Execute(ctx, date, 7)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestSearchByPhone(t *testing.T) {
	ctx := context.Background()

	t.Run("normaliza antes de buscar e ignora o passado", func(t *testing.T) {
		repo := newFakeRepo()
		seedBooking(repo, 1, "2025-05-20", "09:00", "09:30", schedule.StatusConfirmed) // passado
		seedBooking(repo, 1, "2025-06-02", "09:00", "09:30", schedule.StatusConfirmed)

		uc := NewSearchByPhone(repo, testTZ)
		uc.now = fixedClock("2025-05-26 09:00")

		out, err := uc.Execute(ctx, "(11) 98765-4321")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Cliente Teste", out[0].ClientName)
	})

	t.Run("telefone inválido", func(t *testing.T) {
		uc := NewSearchByPhone(newFakeRepo(), testTZ)
		uc.now = fixedClock("2025-05-26 09:00")

		_, err := uc.Execute(ctx, "12345")
		assert.True(t, httperr.IsBusiness(err, "invalid_phone"))
	})
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	loc := timezone.Location(testTZ)

	repo := newFakeRepo()
	repo.addService(1, 30, 50)

	withService := func(ap *models.Appointment, price float64, barberName string) {
		for i := range repo.appointments {
			if repo.appointments[i].ID == ap.ID {
				repo.appointments[i].Service = models.Service{Price: price}
				repo.appointments[i].Barber = models.Barber{Name: barberName}
			}
		}
	}

	withService(seedBooking(repo, 1, "2025-06-02", "09:00", "09:30", schedule.StatusConfirmed), 50, "Alyson")
	withService(seedBooking(repo, 1, "2025-06-02", "10:00", "10:30", schedule.StatusConfirmed), 30, "Alyson")
	withService(seedBooking(repo, 1, "2025-06-03", "14:00", "14:30", schedule.StatusPending), 50, "Alyson")
	b2 := seedBooking(repo, 2, "2025-06-03", "15:00", "15:30", schedule.StatusCancelled)
	withService(b2, 50, "Pedro")

	from, _ := time.ParseInLocation("2006-01-02", "2025-06-01", loc)
	to, _ := time.ParseInLocation("2006-01-02", "2025-06-08", loc)

	stats, err := NewGetStats(repo).Execute(ctx, from, to)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 2, stats.Confirmed)
	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 80.0, stats.Revenue)

	require.Len(t, stats.Barbers, 2)
	assert.Equal(t, 3, stats.Barbers[0].Total)
	assert.Equal(t, 2, stats.Barbers[0].Confirmed)
	assert.Equal(t, "Pedro", stats.Barbers[1].Name)
}

// ======================================================
// CLEANUP
// ======================================================

func TestCleanupUsesRetentionWindow(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	repo.deletedRows = 3

	uc := NewCleanupOldAppointments(repo, nil, 7, testTZ)
	uc.now = fixedClock("2025-06-02 03:00")

	deleted, err := uc.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), deleted)
	assert.Equal(t, "2025-05-26 03:00", repo.lastCutoff.Format("2006-01-02 15:04"))
}
