// Package validate contains the request validators. Each validator is a
// pure function over an input struct returning a list of human-readable
// messages; an empty list means the input passed. Handlers turn a non-empty
// list into a 400 response before touching the database.
package validate

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	personnummerRe = regexp.MustCompile(`^\d{8}-\d{4}$`)
	phoneRe        = regexp.MustCompile(`^[+]?[0-9\s\-()]{8,}$`)
	timeRe         = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// Days enumerates the valid day_of_week values, in week order.
var Days = []string{"Måndag", "Tisdag", "Onsdag", "Torsdag", "Fredag", "Lördag", "Söndag"}

// ValidPhone reports whether s looks like a phone number. Used on its own
// by the profile update handler, where phone is the only reverifiable field.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// ValidDay reports whether day is one of the seven Swedish day names.
func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// adultAge is the age at which guardian contact details stop being required.
const adultAge = 18

// Registration is the validated subset of the register payload.
type Registration struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	Personnummer   string
	Phone          string
	Address        string
	ParentName     string
	ParentLastname string
	ParentPhone    string
}

// ValidateRegistration checks a registration payload. Guardian fields are
// only required when the personnummer belongs to a minor.
func ValidateRegistration(in Registration, now time.Time) []string {
	var errs []string
	if !emailRe.MatchString(in.Email) {
		errs = append(errs, "Valid email is required")
	}
	if len(in.Password) < 6 {
		errs = append(errs, "Password must be at least 6 characters long")
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		errs = append(errs, "First name and last name are required")
	}
	if !personnummerRe.MatchString(in.Personnummer) {
		errs = append(errs, "Valid personnummer (YYYYMMDD-XXXX) is required")
	} else if age, ok := AgeFromPersonnummer(in.Personnummer, now); ok && age < adultAge {
		if strings.TrimSpace(in.ParentName) == "" || strings.TrimSpace(in.ParentLastname) == "" {
			errs = append(errs, "Guardian first name and last name are required for members under 18")
		}
		if !phoneRe.MatchString(in.ParentPhone) {
			errs = append(errs, "Valid guardian phone number is required for members under 18")
		}
	}
	if !phoneRe.MatchString(in.Phone) {
		errs = append(errs, "Valid phone number is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		errs = append(errs, "Address is required")
	}
	return errs
}

// AgeFromPersonnummer derives age in whole years from the YYYYMMDD-XXXX
// birth date prefix. ok is false when the prefix is not a real date.
func AgeFromPersonnummer(pnr string, now time.Time) (int, bool) {
	if !personnummerRe.MatchString(pnr) {
		return 0, false
	}
	birth, err := time.Parse("20060102", pnr[:8])
	if err != nil {
		return 0, false
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

// ValidateLogin checks the login payload.
func ValidateLogin(email, password string) []string {
	var errs []string
	if strings.TrimSpace(email) == "" || password == "" {
		errs = append(errs, "Email and password are required")
	}
	return errs
}

// ValidateSport checks the sport create/update payload.
func ValidateSport(name, description string) []string {
	var errs []string
	if strings.TrimSpace(name) == "" {
		errs = append(errs, "Sport name is required")
	}
	if strings.TrimSpace(description) == "" {
		errs = append(errs, "Sport description is required")
	}
	return errs
}

// ValidateSchedule checks the schedule create/update payload.
func ValidateSchedule(day, start, end string) []string {
	var errs []string
	if !ValidDay(day) {
		errs = append(errs, "Invalid day of week")
	}
	if !timeRe.MatchString(start) || !timeRe.MatchString(end) {
		errs = append(errs, "Invalid time format (HH:MM required)")
	} else if minutes(start) >= minutes(end) {
		errs = append(errs, "Start time must be before end time")
	}
	return errs
}

// minutes converts a validated HH:MM string to minutes since midnight. The
// hour may be a single digit, so the string is split rather than sliced.
func minutes(hhmm string) int {
	i := strings.IndexByte(hhmm, ':')
	h, m := 0, 0
	for _, c := range hhmm[:i] {
		h = h*10 + int(c-'0')
	}
	for _, c := range hhmm[i+1:] {
		m = m*10 + int(c-'0')
	}
	return h*60 + m
}
