package laborer

import "errors"

var (
	ErrLaborerNotFound = errors.New("laborer not found")
	ErrInvalidPhoto    = errors.New("invalid profile photo data URI")
)
