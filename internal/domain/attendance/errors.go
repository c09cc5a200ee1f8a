package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance not found")
	ErrAttendanceExists   = errors.New("attendance already recorded for this employee and date")
)
