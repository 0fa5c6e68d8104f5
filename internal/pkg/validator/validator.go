package validator

import (
	"regexp"
	"strings"
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

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Has reports whether field already carries an error.
func (v ValidationErrors) Has(field string) bool {
	for _, err := range v {
		if err.Field == field {
			return true
		}
	}
	return false
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// NormalizePhone strips the separators people type into phone fields.
func NormalizePhone(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	return replacer.Replace(strings.TrimSpace(phone))
}

// Phone number validation (Turkish numbering: 0XXX..., +90XXX..., 90XXX... or the bare 10 digits)
func IsValidPhoneNumber(phone string) bool {
	phone = strings.TrimPrefix(NormalizePhone(phone), "+")

	var subscriber string
	switch {
	case len(phone) == 12 && strings.HasPrefix(phone, "90"):
		subscriber = phone[2:]
	case len(phone) == 11 && strings.HasPrefix(phone, "0"):
		subscriber = phone[1:]
	case len(phone) == 10:
		subscriber = phone
	default:
		return false
	}

	return IsNumeric(subscriber) && subscriber[0] != '0'
}

// HasDuplicates reports whether any value appears twice.
func HasDuplicates(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}
