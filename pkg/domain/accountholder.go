package domain

import (
	"strings"
	"time"
)

// AccountHolder is a person owning zero or more accounts.
type AccountHolder struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DateOfBirth   time.Time `json:"date_of_birth"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `json:"email"`

	Accounts []Account `gorm:"foreignKey:AccountHolderID" json:"-"`
}

// Update applies a partial update: each field is replaced only when the
// supplied value is non-nil and differs case-insensitively from the current
// one. A value that is equal ignoring case is a no-op, so the stored casing is
// preserved. Returns the receiver, mutated in place; staging the change and
// committing is the caller's responsibility.
func (h *AccountHolder) Update(firstName, lastName, contactNumber, email *string) *AccountHolder {
	if firstName != nil && !strings.EqualFold(h.FirstName, *firstName) {
		h.FirstName = *firstName
	}
	if lastName != nil && !strings.EqualFold(h.LastName, *lastName) {
		h.LastName = *lastName
	}
	if contactNumber != nil && !strings.EqualFold(h.ContactNumber, *contactNumber) {
		h.ContactNumber = *contactNumber
	}
	if email != nil && !strings.EqualFold(h.Email, *email) {
		h.Email = *email
	}
	return h
}
