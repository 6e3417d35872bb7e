package schedule

import "time"

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time
	Period    Period
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ClientRecord resume um cliente a partir dos agendamentos (não existe
// cadastro próprio de cliente).
type ClientRecord struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Visits    int       `json:"visits"`
	LastVisit time.Time `json:"last_visit"`
}
