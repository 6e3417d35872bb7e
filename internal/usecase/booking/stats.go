package booking

import (
	"context"
	"sort"
	"time"

	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
)

type BarberStats struct {
	BarberID  uint   `json:"barber_id"`
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Confirmed int    `json:"confirmed"`
}

type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`

	// soma dos preços dos serviços confirmados
	Revenue float64 `json:"revenue"`

	Barbers []BarberStats `json:"barbers"`
}

type GetStats struct {
	repo schedule.Repository
}

func NewGetStats(repo schedule.Repository) *GetStats {
	return &GetStats{repo: repo}
}

func (uc *GetStats) Execute(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (*Stats, error) {

	appointments, err := uc.repo.ListAppointmentsForRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	perBarber := map[uint]*BarberStats{}

	for i := range appointments {
		ap := &appointments[i]

		stats.Total++

		bs, ok := perBarber[ap.BarberID]
		if !ok {
			bs = &BarberStats{BarberID: ap.BarberID, Name: ap.Barber.Name}
			perBarber[ap.BarberID] = bs
		}
		bs.Total++

		switch schedule.Status(ap.Status) {
		case schedule.StatusPending:
			stats.Pending++
		case schedule.StatusConfirmed:
			stats.Confirmed++
			stats.Revenue += ap.Service.Price
			bs.Confirmed++
		case schedule.StatusCancelled:
			stats.Cancelled++
		}
	}

	stats.Barbers = make([]BarberStats, 0, len(perBarber))
	for _, bs := range perBarber {
		stats.Barbers = append(stats.Barbers, *bs)
	}
	sort.Slice(stats.Barbers, func(i, j int) bool {
		return stats.Barbers[i].BarberID < stats.Barbers[j].BarberID
	})

	return stats, nil
}
