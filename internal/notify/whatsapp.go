// Package notify monta as mensagens de WhatsApp do agendamento. Somente
// formatação: o envio acontece fora (link wa.me aberto pelo cliente ou
// integrador externo).
package notify

import (
	"fmt"
	"net/url"
	"time"

	"github.com/alysonbarber/agenda-api/internal/models"
	"github.com/alysonbarber/agenda-api/internal/phone"
)

// Lembrete dispara faltando exatamente este tempo para o horário.
const reminderLeadMinutes = 30

type Builder struct {
	// telefone da barbearia, somente dígitos, com código do país
	shopPhone string
}

func NewBuilder(shopPhone string) *Builder {
	return &Builder{shopPhone: phone.Normalize(shopPhone)}
}

func (b *Builder) ConfirmationMessage(ap *models.Appointment) string {
	return fmt.Sprintf(
		"*📅 Novo Agendamento*\n\n"+
			"*👤 Cliente:* %s\n"+
			"*📱 Telefone:* %s\n"+
			"*✂️ Serviço:* %s\n"+
			"*💰 Valor:* R$ %.2f\n"+
			"*⏱️ Duração:* %d minutos\n"+
			"*👨‍💼 Barbeiro:* %s\n"+
			"*📆 Data:* %s\n"+
			"*⏰ Horário:* %s\n\n"+
			"_Aguardo sua confirmação!_",
		ap.ClientName,
		phone.Format(ap.ClientPhone),
		ap.Service.Name,
		ap.Service.Price,
		ap.Service.DurationMin,
		ap.Barber.Name,
		ap.StartTime.Format("02/01/2006"),
		ap.StartTime.Format("15:04"),
	)
}

// ConfirmationLink abre conversa com a barbearia já com o resumo do
// agendamento preenchido.
func (b *Builder) ConfirmationLink(ap *models.Appointment) string {
	return waLink(b.shopPhone, b.ConfirmationMessage(ap))
}

func (b *Builder) ReminderMessage(ap *models.Appointment) string {
	return fmt.Sprintf(
		"*⏰ Lembrete de Agendamento*\n\n"+
			"Olá %s! Seu agendamento está chegando:\n\n"+
			"*✂️ Serviço:* %s\n"+
			"*👨‍💼 Barbeiro:* %s\n"+
			"*⏰ Horário:* %s\n\n"+
			"_Não se esqueça do seu horário!_",
		ap.ClientName,
		ap.Service.Name,
		ap.Barber.Name,
		ap.StartTime.Format("15:04"),
	)
}

// ReminderLink abre conversa com o cliente.
func (b *Builder) ReminderLink(ap *models.Appointment) string {
	return waLink(ap.ClientPhone, b.ReminderMessage(ap))
}

// ShouldRemind: faltando exatamente 30 minutos, com granularidade de
// minuto (a checagem roda uma vez por minuto).
func ShouldRemind(ap *models.Appointment, now time.Time) bool {
	return int(ap.StartTime.Sub(now).Minutes()) == reminderLeadMinutes
}

func waLink(phoneDigits, message string) string {
	return "https://api.whatsapp.com/send?phone=" + phoneDigits +
		"&text=" + url.QueryEscape(message)
}
