// Package membership holds the pure date arithmetic behind membership
// terms. Everything that decides whether a term is running or how long it
// has left goes through here, so the rules live in exactly one place.
package membership

import (
	"math"
	"time"
)

// TermMonths is the length of one paid membership term.
const TermMonths = 3

// TermPrice is the price of one term in SEK.
const TermPrice = 600.00

// TermEnd returns the end date of a term starting at start: exactly
// TermMonths calendar months later. AddDate normalizes overflowing dates
// (Nov 30 + 3 months lands in early March), matching how the club has
// always computed terms.
func TermEnd(start time.Time) time.Time {
	return start.AddDate(0, TermMonths, 0)
}

// IsActive reports whether a term with the given end date is still running
// at now. A term ends the moment its end date passes; there is no stored
// expiry flag anywhere.
func IsActive(endDate, now time.Time) bool {
	return endDate.After(now)
}

// DaysRemaining returns the number of whole days left before endDate,
// rounding partial days up. Expired terms report zero.
func DaysRemaining(endDate, now time.Time) int {
	if !IsActive(endDate, now) {
		return 0
	}
	return int(math.Ceil(endDate.Sub(now).Hours() / 24))
}

// RenewalStart decides where a new term begins: at the current term's end
// date when one is still running (extension), otherwise at now (fresh
// start after a gap).
func RenewalStart(currentEnd time.Time, hasCurrent bool, now time.Time) time.Time {
	if hasCurrent && IsActive(currentEnd, now) {
		return currentEnd
	}
	return now
}
