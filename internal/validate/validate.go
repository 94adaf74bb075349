// Package validate holds the input validation rules and the duplicate
// detection used before a contact is saved.
package validate

import (
	"regexp"
	"strings"

	"github.com/agenda-project/agenda/internal/model"
)

// emailPattern is a simplified, practical email check (not full
// RFC 5322): localpart@domain with an alphabetic top-level label of at
// least two characters.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// phonePattern accepts common international formats and local numbers
// with spaces, dashes and parentheses, e.g. "+55 11 99999-0001",
// "(11) 99999-0001", "11999990001".
var phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{7,25}$`)

// Email reports whether the given string is a plausible email address.
// Empty or whitespace-only input is invalid.
func Email(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return emailPattern.MatchString(s)
}

// Phone reports whether the given string is a plausible phone number.
// The pattern limits the overall length including separators; on top
// of that at least 7 actual digits are required.
func Phone(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

// DuplicateContact reports whether the candidate collides with one of
// the existing contacts. A collision is a shared email, or a shared
// phone (compared digits-only), or - only when the candidate has
// neither email nor phone - a shared name. When the candidate is
// persisted, its own record is skipped so that updating a contact to
// its unchanged values is not flagged.
func DuplicateContact(candidate model.Contact, existing []model.Contact) bool {
	emailNorm := normalizeEmail(candidate.Email)
	phoneNorm := NormalizePhone(deref(candidate.Phone))
	nameNorm := strings.ToLower(strings.TrimSpace(candidate.Name))

	for _, c := range existing {
		if candidate.ID.Persisted() && c.ID.Persisted() && candidate.ID.Int64() == c.ID.Int64() {
			continue
		}
		if emailNorm != "" && emailNorm == normalizeEmail(c.Email) {
			return true
		}
		if phoneNorm != "" && phoneNorm == NormalizePhone(deref(c.Phone)) {
			return true
		}
		// Name matching is a fallback used only when the candidate has
		// neither email nor phone, never alongside them.
		if emailNorm == "" && phoneNorm == "" && nameNorm != "" &&
			nameNorm == strings.ToLower(strings.TrimSpace(c.Name)) {
			return true
		}
	}
	return false
}

// NormalizePhone strips everything but digits so that formatting
// variants of the same number compare equal.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeEmail(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*s))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
