package utils

import (
	"fmt"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
)

// ParseBookingDate parses a YYYY-MM-DD booking date.
func ParseBookingDate(value string) (time.Time, error) {
	return time.Parse(constvars.BookingDateFormat, value)
}

// ParseBookingTime parses an HH:MM time-of-day.
func ParseBookingTime(value string) (time.Time, error) {
	return time.Parse(constvars.BookingTimeFormat, value)
}

// IsPastBookingDate reports whether date lies strictly before today's date.
// Comparison is by calendar day, not instant, so booking for later today stays valid.
func IsPastBookingDate(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return date.Before(today)
}

// DivideTimeSlots splits [startTime, endTime) into interval-sized "HH:MM" strings.
// Malformed bounds yield an empty slice.
func DivideTimeSlots(startTime, endTime string, interval time.Duration) []string {
	start, errStart := ParseBookingTime(startTime)
	end, errEnd := ParseBookingTime(endTime)
	if errStart != nil || errEnd != nil {
		return nil
	}

	var slots []string
	for t := start; t.Before(end); t = t.Add(interval) {
		slots = append(slots, t.Format(constvars.BookingTimeFormat))
	}
	return slots
}

// AvailabilityCacheKey builds the redis key for a doctor's availability on a date.
func AvailabilityCacheKey(doctorID, date string) string {
	return fmt.Sprintf(constvars.RedisKeyDoctorAvailabilityFormat, doctorID, date)
}
