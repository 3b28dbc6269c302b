package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap groups messages by field, preserving the order they were added.
func (v ValidationErrors) ToMap() map[string][]string {
	result := make(map[string][]string)
	for _, err := range v {
		result[err.Field] = append(result[err.Field], err.Message)
	}
	return result
}

// Add appends a violation for field.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// MinLength reports whether s has at least n characters.
func MinLength(s string, n int) bool {
	return utf8.RuneCountInString(s) >= n
}

var mobileNoRegex = regexp.MustCompile(`^\d{10}$`)

// IsValidMobileNo accepts exactly 10 decimal digits.
func IsValidMobileNo(s string) bool {
	return mobileNoRegex.MatchString(s)
}

var aadhaarNoRegex = regexp.MustCompile(`^\d{12}$`)

// IsValidAadhaarNo accepts exactly 12 decimal digits.
func IsValidAadhaarNo(s string) bool {
	return aadhaarNoRegex.MatchString(s)
}

// PAN: 5 uppercase letters, 4 digits, 1 uppercase letter.
var panNoRegex = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)

func IsValidPANNo(s string) bool {
	return panNoRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}
