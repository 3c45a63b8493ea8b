package domain

import "time"

// Employee is a staff record managed through the API.
type Employee struct {
	ID         int64
	Name       string
	Email      string
	Department *string // optional
	Role       *string // optional
	DateJoined time.Time
}

// DateOnly truncates t to midnight UTC, the granularity date_joined is stored at.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
