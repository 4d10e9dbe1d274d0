package handler

import (
	"errors"

	"github.com/digitalget/services-site/internal/core/domain"
)

// userMessage maps a service error to the notice shown to the person who
// submitted the form. Unknown errors collapse into a generic message so
// internals never leak into a page.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "Please fill in all required fields."
	case errors.Is(err, domain.ErrNameRequired):
		return "A name is required."
	case errors.Is(err, domain.ErrInvalidEmail):
		return "That email address does not look valid."
	case errors.Is(err, domain.ErrEmailTaken):
		return "That email address is already in use."
	case errors.Is(err, domain.ErrPasswordTooShort):
		return "The password must be at least 8 characters long."
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "The passwords do not match."
	case errors.Is(err, domain.ErrWrongPassword):
		return "Your current password is incorrect."
	case errors.Is(err, domain.ErrInvalidRole):
		return "That role is not recognised."
	case errors.Is(err, domain.ErrInvalidImage):
		return "Images must be a .jpg, .jpeg, .png or .webp file."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, domain.ErrSelfDeactivate):
		return "You cannot deactivate your own account."
	case errors.Is(err, domain.ErrAccountNotFound):
		return "That account no longer exists."
	case errors.Is(err, domain.ErrEntityNotFound):
		return "That item no longer exists."
	case errors.Is(err, domain.ErrPersonNotFound):
		return "That person no longer exists."
	default:
		return "Something went wrong. Please try again."
	}
}
