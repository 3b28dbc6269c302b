package dailyentry

import "errors"

var (
	ErrInvalidLaborerCount = errors.New("invalid laborer count")
	ErrInvalidDate         = errors.New("date must be formatted as yyyy-MM-dd")
)
