package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRx.MatchString(s)
}

// NormalizeEmail lower-cases and trims an email for use as a lookup key.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var (
	// ErrPhoneDigits is returned when a phone number does not contain
	// exactly 11 digits including the country code.
	ErrPhoneDigits = errors.New("phone must have exactly 11 digits")

	// ErrBadDate is returned when a DD-MM-YYYY string does not name a real
	// calendar date.
	ErrBadDate = errors.New("date must be a real DD-MM-YYYY date")

	nonDigitRx = regexp.MustCompile(`\D`)
	dobRx      = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
)

// NormalizePhone strips every non-digit from s, requires exactly 11 digits
// (country code included, e.g. 56912345678) and returns the display form
// +NNN-NNNNNNNN.
func NormalizePhone(s string) (string, error) {
	digits := nonDigitRx.ReplaceAllString(s, "")
	if len(digits) != 11 {
		return "", ErrPhoneDigits
	}
	return "+" + digits[:3] + "-" + digits[3:], nil
}

// ParseBirthDate validates a DD-MM-YYYY birth date and returns it in the
// YYYY-MM-DD storage form.  Impossible dates such as 31-02-2000 are
// rejected, not rolled over.
func ParseBirthDate(s string) (string, error) {
	if !dobRx.MatchString(s) {
		return "", ErrBadDate
	}
	t, err := time.Parse("02-01-2006", s)
	if err != nil {
		return "", ErrBadDate
	}
	return t.Format("2006-01-02"), nil
}

// DisplayBirthDate converts the YYYY-MM-DD storage form back to the
// DD-MM-YYYY display form.  Empty in, empty out.
func DisplayBirthDate(stored string) string {
	if stored == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", stored)
	if err != nil {
		return stored
	}
	return t.Format("02-01-2006")
}

// TimeSlots returns the bookable half-hour slots between the opening and
// closing hour, both inclusive, as "HH:MM" strings.  For 18 and 22 that is
// 18:00, 18:30, ... 22:00.
func TimeSlots(openHour, closeHour int) []string {
	if closeHour < openHour {
		return nil
	}
	slots := make([]string, 0, (closeHour-openHour)*2+1)
	for h := openHour; h <= closeHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
		if h < closeHour {
			slots = append(slots, fmt.Sprintf("%02d:30", h))
		}
	}
	return slots
}
