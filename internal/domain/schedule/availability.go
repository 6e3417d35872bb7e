package schedule

import (
	"time"

	"github.com/alysonbarber/agenda-api/internal/models"
)

// Intervalo entre horários oferecidos ao cliente.
const SlotStepMinutes = 30

// Duração assumida quando o serviço do agendamento veio sem duração.
const fallbackDurationMin = 30

// IsAvailable decide se um horário candidato pode ser oferecido ou aceito
// para o barbeiro. Função pura: o relógio (now) e o snapshot de
// agendamentos entram como parâmetros.
//
// Regras, nesta ordem: serviço/barbeiro selecionados, horário no futuro,
// início dentro da janela do período, término até o fechamento e nenhuma
// sobreposição com agendamento não cancelado do mesmo barbeiro.
func IsAvailable(
	candidate time.Time,
	svc *models.Service,
	barberID uint,
	period Period,
	existing []models.Appointment,
	now time.Time,
) bool {

	// sem seleção completa não há disponibilidade
	if svc == nil || barberID == 0 {
		return false
	}

	if !candidate.After(now) {
		return false
	}

	window, ok := PeriodWindow(candidate.Weekday(), period)
	if !ok {
		return false
	}

	startMin := minuteOfDay(candidate)
	if !window.ContainsStart(startMin) {
		return false
	}

	duration := EffectiveDuration(svc.DurationMin)
	if !window.Fits(startMin, duration) {
		return false
	}

	slotEnd := candidate.Add(time.Duration(duration) * time.Minute)

	for i := range existing {
		ap := &existing[i]

		if ap.BarberID != barberID {
			continue
		}

		// cancelado não ocupa agenda
		if Status(ap.Status) == StatusCancelled {
			continue
		}

		bStart := ap.StartTime
		bEnd := bStart.Add(time.Duration(occupiedMinutes(ap)) * time.Minute)

		if overlaps(candidate, slotEnd, bStart, bEnd) {
			return false
		}
	}

	return true
}

// occupiedMinutes aplica a regra de duração efetiva ao agendamento
// existente.
func occupiedMinutes(ap *models.Appointment) int {
	d := ap.Service.DurationMin
	if d <= 0 {
		d = fallbackDurationMin
	}
	return EffectiveDuration(d)
}

// overlaps testa sobreposição entre o candidato [start, end) e o intervalo
// ocupado [bStart, bEnd): início dentro do ocupado, fim dentro do ocupado
// ou candidato englobando o ocupado.
func overlaps(start, end, bStart, bEnd time.Time) bool {
	if !start.Before(bStart) && start.Before(bEnd) {
		return true
	}
	if end.After(bStart) && !end.After(bEnd) {
		return true
	}
	if !start.After(bStart) && !end.Before(bEnd) {
		return true
	}
	return false
}

// ListSlots gera, em ordem crescente, os horários de início oferecíveis
// para a data, serviço, barbeiro e período informados. Retorna lista vazia
// (nunca erro) quando nada se aplica.
//
// O cursor anda de 30 em 30 minutos a partir da abertura do período; se a
// data é hoje e o relógio já passou da abertura, o cursor começa em now
// arredondado para cima para a próxima meia hora.
func ListSlots(
	date time.Time,
	svc *models.Service,
	barberID uint,
	period Period,
	existing []models.Appointment,
	now time.Time,
) []time.Time {

	slots := []time.Time{}

	if svc == nil || barberID == 0 {
		return slots
	}

	window, ok := PeriodWindow(date.Weekday(), period)
	if !ok {
		return slots
	}

	loc := date.Location()
	cursor := time.Date(
		date.Year(), date.Month(), date.Day(),
		window.Start/60, window.Start%60, 0, 0,
		loc,
	)
	periodEnd := time.Date(
		date.Year(), date.Month(), date.Day(),
		window.End/60, window.End%60, 0, 0,
		loc,
	)

	// mesmo dia: não oferecer horários que já passaram
	if sameDay(cursor, now) && now.After(cursor) {
		cursor = ceilToHalfHour(now)
	}

	duration := EffectiveDuration(svc.DurationMin)

	for cursor.Before(periodEnd) {
		if window.Fits(minuteOfDay(cursor), duration) &&
			IsAvailable(cursor, svc, barberID, period, existing, now) {
			slots = append(slots, cursor)
		}

		cursor = cursor.Add(SlotStepMinutes * time.Minute)
	}

	return slots
}

// ceilToHalfHour arredonda para cima para a próxima meia hora cheia,
// zerando segundos (10:47 → 11:00, 10:15 → 10:30, 11:00 → 11:00).
func ceilToHalfHour(t time.Time) time.Time {
	rounded := ((t.Minute() + SlotStepMinutes - 1) / SlotStepMinutes) * SlotStepMinutes

	base := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return base.Add(time.Duration(rounded) * time.Minute)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
