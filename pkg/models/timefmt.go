package models

import "time"

// createdLayout is YYYY:MM:DD-hh:mm:ss, 24-hour, zero padded.
const createdLayout = "2006:01:02-15:04:05"

// FormatCreated renders t in local time using the canonical display format.
func FormatCreated(t time.Time) string {
	return t.Local().Format(createdLayout)
}
