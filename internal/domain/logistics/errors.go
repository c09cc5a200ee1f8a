package logistics

import "errors"

var (
	ErrLogisticsNotFound = errors.New("logistics data not found")
	ErrLogisticsExists   = errors.New("logistics data already recorded for this employee and month")
)
