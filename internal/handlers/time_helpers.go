package handlers

import (
	"time"

	"github.com/mesalibre/reserva-api/internal/models"
	"github.com/mesalibre/reserva-api/internal/timezone"
)

// Dates always resolve in the business timezone, never the server's.

func parseDateInBusiness(biz *models.Business, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(biz.Timezone),
	)
}

func todayInBusiness(biz *models.Business) time.Time {
	now := timezone.NowIn(biz.Timezone)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
