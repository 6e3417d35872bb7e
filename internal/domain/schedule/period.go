package schedule

import "time"

// ===============================
// Period / Business Hours
// ===============================

// Period é a metade do dia escolhida pelo cliente (manhã ou tarde).
// O cálculo de horários nunca mistura períodos.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
)

func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodMorning, PeriodAfternoon:
		return Period(s), true
	}
	return "", false
}

// Window delimita um período de expediente em minutos desde 00:00.
// InclusiveEnd permite início exatamente no horário de fechamento
// (tarde estendida fecha às 20:30 com limite inclusivo).
type Window struct {
	Start        int
	End          int
	InclusiveEnd bool
}

// ContainsStart valida o minuto de início dentro da janela.
func (w Window) ContainsStart(minOfDay int) bool {
	if minOfDay < w.Start {
		return false
	}
	if w.InclusiveEnd {
		return minOfDay <= w.End
	}
	return minOfDay < w.End
}

// Fits valida que o atendimento termina até o fechamento do período.
func (w Window) Fits(startMin, durationMin int) bool {
	return startMin+durationMin <= w.End
}

// PeriodWindow é a tabela única de expediente, compartilhada pelo
// detector de conflitos e pela calculadora de horários:
//
//	Domingo           — fechado
//	Seg/Qua/Sex/Sáb   — manhã 08:00–12:00, tarde 14:00–20:30 (inclusivo)
//	Ter/Qui           — manhã 08:00–12:00, tarde 14:00–18:00
func PeriodWindow(weekday time.Weekday, period Period) (Window, bool) {
	if weekday == time.Sunday {
		return Window{}, false
	}

	switch period {
	case PeriodMorning:
		return Window{Start: 8 * 60, End: 12 * 60}, true

	case PeriodAfternoon:
		if weekday == time.Tuesday || weekday == time.Thursday {
			return Window{Start: 14 * 60, End: 18 * 60}, true
		}
		return Window{Start: 14 * 60, End: 20*60 + 30, InclusiveEnd: true}, true
	}

	return Window{}, false
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
