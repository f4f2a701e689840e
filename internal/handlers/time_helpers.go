package handlers

import (
	"time"

	"github.com/chamadospro/field-scheduler/internal/models"
	"github.com/chamadospro/field-scheduler/internal/timezone"
)

// resolve o timezone oficial do técnico
func locationForUser(user *models.User) *time.Location {
	if user != nil {
		return timezone.Location(user.Timezone)
	}
	return timezone.Location("")
}

func parseDateForUser(user *models.User, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationForUser(user),
	)
}

func parseDateTimeForUser(
	user *models.User,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationForUser(user),
	)
}
