package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agenda-project/agenda/internal/model"
)

// TestEmail checks the accepted and rejected email shapes: empty and
// whitespace-only input fail, a top-level label needs at least two
// alphabetic characters.
func TestEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"alice@example.com",
		"carla.santos@empresa.br",
		"first+tag@sub.domain.org",
		"  padded@example.com  ",
	}
	for _, s := range valid {
		assert.True(t, Email(s), "expected valid: %q", s)
	}

	invalid := []string{
		"",
		"   ",
		"invalid-email",
		"bob@domain",
		"@example.com",
		"alice@",
		"alice@example.c",
	}
	for _, s := range invalid {
		assert.False(t, Email(s), "expected invalid: %q", s)
	}
}

// TestPhone checks the accepted and rejected phone shapes. The
// pattern bounds the overall length including separators, and at
// least 7 digits are required on top of it.
func TestPhone(t *testing.T) {
	valid := []string{
		"+55 11 99999-0001",
		"(21) 98888-0002",
		"11999990001",
		"99999-0001 1",
	}
	for _, s := range valid {
		assert.True(t, Phone(s), "expected valid: %q", s)
	}

	invalid := []string{
		"",
		"9999",             // too few digits
		"abc-123",          // letters fail the pattern
		"123 456",          // 6 digits, within length but too few
		"( ) - ( ) - ( ) -", // enough characters, no digits
		"+55 11 99999-0001 99999-0001 9", // longer than 25 characters
	}
	for _, s := range invalid {
		assert.False(t, Phone(s), "expected invalid: %q", s)
	}
}

func strPtr(s string) *string {
	return &s
}

// TestDuplicateContactByPhone verifies that phone comparison ignores
// formatting: only the digits count.
func TestDuplicateContactByPhone(t *testing.T) {
	existing := []model.Contact{
		{ID: model.PersistedID(1), Name: "Alice Silva", Phone: strPtr("+55 11 99999-0001")},
	}
	candidate := model.Contact{Name: "Outra Pessoa", Phone: strPtr("55 (11) 99999 0001")}
	assert.True(t, DuplicateContact(candidate, existing))
}

// TestDuplicateContactByEmail verifies that email comparison trims and
// lowercases before comparing.
func TestDuplicateContactByEmail(t *testing.T) {
	existing := []model.Contact{
		{ID: model.PersistedID(1), Name: "Alice Silva", Email: strPtr("alice@example.com")},
	}
	candidate := model.Contact{Name: "Outra Pessoa", Email: strPtr("  ALICE@example.com ")}
	assert.True(t, DuplicateContact(candidate, existing))
}

// TestDuplicateContactSelfExclusion verifies that updating a contact
// to its own unchanged email is not flagged as a duplicate.
func TestDuplicateContactSelfExclusion(t *testing.T) {
	existing := []model.Contact{
		{ID: model.PersistedID(1), Name: "Alice Silva", Email: strPtr("alice@example.com")},
		{ID: model.PersistedID(2), Name: "Bruno Costa", Email: strPtr("bruno@example.com")},
	}
	candidate := model.Contact{ID: model.PersistedID(1), Name: "Alice S.", Email: strPtr("alice@example.com")}
	assert.False(t, DuplicateContact(candidate, existing))
}

// TestDuplicateContactNameFallback verifies that the name comparison
// only applies when the candidate has neither email nor phone.
func TestDuplicateContactNameFallback(t *testing.T) {
	existing := []model.Contact{
		{ID: model.PersistedID(1), Name: "Alice Silva"},
	}

	// No email, no phone: the name collides.
	assert.True(t, DuplicateContact(model.Contact{Name: " alice silva "}, existing))

	// An email is present, so the name is never compared even though
	// it collides.
	withEmail := model.Contact{Name: "Alice Silva", Email: strPtr("different@example.com")}
	assert.False(t, DuplicateContact(withEmail, existing))

	// Same with a phone present.
	withPhone := model.Contact{Name: "Alice Silva", Phone: strPtr("+55 11 90000-0000")}
	assert.False(t, DuplicateContact(withPhone, existing))
}

// TestDuplicateContactNoMatch verifies the negative case.
func TestDuplicateContactNoMatch(t *testing.T) {
	existing := []model.Contact{
		{ID: model.PersistedID(1), Name: "Alice Silva", Email: strPtr("alice@example.com"), Phone: strPtr("+55 11 99999-0001")},
	}
	candidate := model.Contact{Name: "Bruno Costa", Email: strPtr("bruno@example.com"), Phone: strPtr("+55 21 98888-0002")}
	assert.False(t, DuplicateContact(candidate, existing))
}

// TestNormalizePhone verifies digit extraction.
func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511999990001", NormalizePhone("+55 (11) 99999-0001"))
	assert.Equal(t, "", NormalizePhone("no digits"))
}
