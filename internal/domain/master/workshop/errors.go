package workshop

import "errors"

var (
	ErrWorkshopNotFound = errors.New("workshop not found")
	ErrWorkshopInUse    = errors.New("workshop still has employees")
)
