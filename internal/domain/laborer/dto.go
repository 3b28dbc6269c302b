package laborer

import (
	"github.com/sitelabor/laborbook-backend-go/internal/pkg/validator"
)

type AddLaborerRequest struct {
	Name            string `json:"name"`
	MobileNo        string `json:"mobileNo"`
	AadhaarNo       string `json:"aadhaarNo"`
	PANNo           string `json:"panNo"`
	ProfilePhotoURL string `json:"profilePhotoUrl"` // data URI of the photo, optional
}

func (r *AddLaborerRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.MinLength(r.Name, 2) {
		errs.Add("name", "Name must be at least 2 characters")
	}
	if !validator.IsValidMobileNo(r.MobileNo) {
		errs.Add("mobileNo", "Mobile number must be 10 digits")
	}
	if !validator.IsValidAadhaarNo(r.AadhaarNo) {
		errs.Add("aadhaarNo", "Aadhaar number must be 12 digits")
	}
	if !validator.IsValidPANNo(r.PANNo) {
		errs.Add("panNo", "Invalid PAN number format")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteLaborerRequest struct {
	LaborerID string `json:"laborerId"`
}

func (r *DeleteLaborerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.LaborerID == "" {
		errs.Add("laborerId", "Laborer ID is required")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LaborerResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MobileNo        string  `json:"mobileNo"`
	AadhaarNo       string  `json:"aadhaarNo"`
	PANNo           string  `json:"panNo"`
	ProfilePhotoURL *string `json:"profilePhotoUrl"`
}

func ToResponse(l Laborer) LaborerResponse {
	return LaborerResponse{
		ID:              l.ID,
		Name:            l.Name,
		MobileNo:        l.MobileNo,
		AadhaarNo:       l.AadhaarNo,
		PANNo:           l.PANNo,
		ProfilePhotoURL: l.ProfilePhotoURL,
	}
}

func ToResponses(laborers []Laborer) []LaborerResponse {
	out := make([]LaborerResponse, 0, len(laborers))
	for _, l := range laborers {
		out = append(out, ToResponse(l))
	}
	return out
}
