package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alysonbarber/agenda-api/internal/models"
)

func sampleAppointment() *models.Appointment {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	return &models.Appointment{
		ClientName:  "João Silva",
		ClientPhone: "11987654321",
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Barber:      models.Barber{Name: "Alyson"},
		Service:     models.Service{Name: "Corte", Price: 50, DurationMin: 30},
	}
}

func TestConfirmationMessage(t *testing.T) {
	b := NewBuilder("+55 (11) 91234-5678")
	msg := b.ConfirmationMessage(sampleAppointment())

	assert.Contains(t, msg, "João Silva")
	assert.Contains(t, msg, "(11) 98765-4321") // telefone formatado, não cru
	assert.Contains(t, msg, "Corte")
	assert.Contains(t, msg, "R$ 50.00")
	assert.Contains(t, msg, "30 minutos")
	assert.Contains(t, msg, "Alyson")
	assert.Contains(t, msg, "02/06/2025")
	assert.Contains(t, msg, "09:00")
}

func TestConfirmationLink(t *testing.T) {
	b := NewBuilder("+55 (11) 91234-5678")
	link := b.ConfirmationLink(sampleAppointment())

	// link abre conversa com a barbearia, com o telefone normalizado
	assert.True(t, strings.HasPrefix(link, "https://api.whatsapp.com/send?phone=5511912345678&text="))
	assert.NotContains(t, link, " ") // mensagem escapada
}

func TestReminderLink(t *testing.T) {
	b := NewBuilder("5511912345678")
	link := b.ReminderLink(sampleAppointment())

	// lembrete vai para o cliente
	assert.True(t, strings.HasPrefix(link, "https://api.whatsapp.com/send?phone=11987654321&text="))
}

func TestShouldRemind(t *testing.T) {
	ap := sampleAppointment()

	cases := []struct {
		name   string
		now    time.Time
		expect bool
	}{
		{"faltando exatamente 30min", ap.StartTime.Add(-30 * time.Minute), true},
		{"faltando 31min ainda não", ap.StartTime.Add(-31 * time.Minute), false},
		{"faltando 29min já passou a janela", ap.StartTime.Add(-29 * time.Minute), false},
		{"dentro do minuto do disparo", ap.StartTime.Add(-30*time.Minute - 20*time.Second), true},
		{"na hora exata não", ap.StartTime, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, ShouldRemind(ap, tc.now))
		})
	}
}
