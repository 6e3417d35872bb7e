package handlers

import (
	"time"

	"github.com/alysonbarber/agenda-api/internal/timezone"
)

// --------------------------------------------------
// Datas sempre no fuso da barbearia (vem da config,
// single-tenant)
// --------------------------------------------------

func parseDate(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(tz),
	)
}
