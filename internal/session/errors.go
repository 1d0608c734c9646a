package session

import (
	"errors"

	"github.com/dmarkovs/codetutor/internal/api"
)

var (
	// ErrBusy rejects a login/register/restore call while another
	// authentication sequence is still in flight.
	ErrBusy = errors.New("authentication already in progress")

	// ErrMissingFields is a local validation failure; no request is sent.
	ErrMissingFields = errors.New("all fields are required")

	// ErrPasswordMismatch is a local validation failure; no request is sent.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Registration preference defaults sent with every register request.
// Policy constants, not user input.
var DefaultPreferredLanguages = []string{"python"}

const (
	DefaultSkillLevel          = "beginner"
	DefaultExplanationLanguage = "english"
)

const unavailableMessage = "Cannot reach the server. Please try again."

// userMessage derives the text shown to the user for a failed operation:
// validation errors verbatim, server detail when the request was rejected,
// a generic connectivity message otherwise.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrPasswordMismatch):
		return err.Error()
	case errors.Is(err, api.ErrUnavailable):
		return unavailableMessage
	}
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.Error()
	}
	return unavailableMessage
}
