package service

import (
	"time"
)

// scheduleTimeLayout matches the datetime-local input format the dashboard
// submits.
const scheduleTimeLayout = "2006-01-02T15:04"

func GetExpiresAt(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn) * time.Second)
}

func parseScheduleTime(value string) (time.Time, error) {
	return time.Parse(scheduleTimeLayout, value)
}
