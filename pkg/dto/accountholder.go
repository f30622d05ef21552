// Package dto defines the request and projection shapes crossing the HTTP
// boundary. Projections are read-only views derived from entities.
package dto

import (
	"time"

	"github.com/gobanking/bankingapp/pkg/domain"
)

// CreateAccountHolderRequest is the payload for creating an account holder.
type CreateAccountHolderRequest struct {
	FirstName     string    `json:"first_name" validate:"required"`
	LastName      string    `json:"last_name" validate:"required"`
	DateOfBirth   time.Time `json:"date_of_birth" validate:"required"`
	ContactNumber string    `json:"contact_number" validate:"required"`
	Email         string    `json:"email" validate:"required,email"`
}

// UpdateAccountHolderRequest is the payload for a partial account-holder
// update. Nil fields are left untouched.
type UpdateAccountHolderRequest struct {
	ID            uint    `json:"id" validate:"required"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	ContactNumber *string `json:"contact_number"`
	Email         *string `json:"email" validate:"omitempty,email"`
}

// AccountHolderResponse is the account-holder projection returned to callers.
type AccountHolderResponse struct {
	ID            uint      `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DateOfBirth   time.Time `json:"date_of_birth"`
	ContactNumber string    `json:"contact_number"`
	Email         string    `json:"email"`
}

// NewAccountHolderResponse projects an entity into its response shape.
func NewAccountHolderResponse(h *domain.AccountHolder) AccountHolderResponse {
	return AccountHolderResponse{
		ID:            h.ID,
		FirstName:     h.FirstName,
		LastName:      h.LastName,
		DateOfBirth:   h.DateOfBirth,
		ContactNumber: h.ContactNumber,
		Email:         h.Email,
	}
}
