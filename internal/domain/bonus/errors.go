package bonus

import "errors"

var (
	ErrBonusNotFound = errors.New("year-end bonus not found")
	ErrBonusExists   = errors.New("year-end bonus already recorded for this employee and year")
)
