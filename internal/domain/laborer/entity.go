package laborer

import "time"

type Laborer struct {
	ID              string
	Name            string
	MobileNo        string
	AadhaarNo       string
	PANNo           string
	ProfilePhotoURL *string
	CreatedAt       time.Time
}
