package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestAccountHolderUpdate(t *testing.T) {
	base := AccountHolder{
		ID:            1,
		FirstName:     "Grace",
		LastName:      "Hopper",
		DateOfBirth:   time.Date(1906, 12, 9, 0, 0, 0, 0, time.UTC),
		ContactNumber: "0123456789",
		Email:         "grace@navy.mil",
	}

	t.Run("nil fields leave the holder unchanged", func(t *testing.T) {
		h := base

		h.Update(nil, nil, nil, nil)

		assert.Equal(t, base, h)
	})

	t.Run("case-insensitively equal values preserve stored casing", func(t *testing.T) {
		h := base

		h.Update(ptr("GRACE"), ptr("hopper"), nil, ptr("GRACE@NAVY.MIL"))

		assert.Equal(t, "Grace", h.FirstName)
		assert.Equal(t, "Hopper", h.LastName)
		assert.Equal(t, "grace@navy.mil", h.Email)
	})

	t.Run("changed values are applied", func(t *testing.T) {
		h := base

		got := h.Update(ptr("Ada"), nil, ptr("0987654321"), ptr("ada@analytical.engine"))

		assert.Same(t, &h, got)
		assert.Equal(t, "Ada", h.FirstName)
		assert.Equal(t, "Hopper", h.LastName)
		assert.Equal(t, "0987654321", h.ContactNumber)
		assert.Equal(t, "ada@analytical.engine", h.Email)
		assert.Equal(t, base.DateOfBirth, h.DateOfBirth)
	})
}
