package models

import "time"

// NotificationSettings controls the periodic hearing reminder check.
// CheckInterval is kept in milliseconds to match the stored record layout.
type NotificationSettings struct {
	CheckInterval int64 `json:"checkInterval"`
	Enabled       bool  `json:"enabled"`
	AlertDays     []int `json:"alertDays"`
}

// DefaultNotificationSettings returns the settings written on first run:
// reminders on, checked hourly, fired 7, 3 and 1 day(s) before a hearing
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:       true,
		CheckInterval: int64(time.Hour / time.Millisecond),
		AlertDays:     []int{7, 3, 1},
	}
}

// Interval returns the check interval as a duration, falling back to one hour
// for zero or negative stored values
func (n NotificationSettings) Interval() time.Duration {
	if n.CheckInterval <= 0 {
		return time.Hour
	}
	return time.Duration(n.CheckInterval) * time.Millisecond
}
