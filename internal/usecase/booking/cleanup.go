package booking

import (
	"context"
	"time"

	"github.com/alysonbarber/agenda-api/internal/audit"
	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/timezone"
)

// CleanupOldAppointments apaga agendamentos com início anterior à janela
// de retenção. Processo independente: não interage com o cálculo de
// disponibilidade além de encolher o snapshot que ele enxerga.
type CleanupOldAppointments struct {
	repo          schedule.Repository
	audit         *audit.Dispatcher
	retentionDays int
	now           func() time.Time
}

func NewCleanupOldAppointments(
	repo schedule.Repository,
	audit *audit.Dispatcher,
	retentionDays int,
	tz string,
) *CleanupOldAppointments {
	if retentionDays <= 0 {
		retentionDays = 7
	}

	return &CleanupOldAppointments{
		repo:          repo,
		audit:         audit,
		retentionDays: retentionDays,
		now:           func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *CleanupOldAppointments) Execute(ctx context.Context) (int64, error) {
	cutoff := uc.now().AddDate(0, 0, -uc.retentionDays)

	deleted, err := uc.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		uc.audit.Dispatch(audit.Event{
			Action:   "appointments_cleaned",
			Entity:   "appointment",
			Metadata: map[string]any{"deleted": deleted, "cutoff": cutoff},
		})
	}

	return deleted, nil
}
