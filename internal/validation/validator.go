package validation

import (
	"quizwhiz/internal/domain"
	"regexp"
	"strings"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateStartQuizRequest validates the start quiz request
func (v *Validator) ValidateStartQuizRequest(topic, mode string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(topic) == "" {
		errors = append(errors, domain.NewMissingFieldError("topic"))
	} else if len(topic) > 2000 {
		errors = append(errors, domain.NewOutOfRangeError("topic", len(topic), 1, 2000))
	}

	// Mode is optional; empty means the default mode.
	if mode != "" && mode != string(domain.ModeMultipleChoice) && mode != string(domain.ModeMixed) {
		errors = append(errors, domain.NewInvalidFormatError("mode", mode))
	}

	return errors
}

// ValidateSessionID validates a session id path parameter
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(sessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !isValidULID(sessionID) {
		errors = append(errors, domain.NewInvalidFormatError("id", sessionID))
	}

	return errors
}

// ValidateAnswerRequest validates a submitted answer
func (v *Validator) ValidateAnswerRequest(sessionID, answer string) domain.ValidationErrors {
	errors := v.ValidateSessionID(sessionID)

	if strings.TrimSpace(answer) == "" {
		errors = append(errors, domain.NewMissingFieldError("answer"))
	} else if len(answer) > 2000 {
		errors = append(errors, domain.NewOutOfRangeError("answer", len(answer), 1, 2000))
	}

	return errors
}

// ValidateAttemptsLimit validates the history listing limit
func (v *Validator) ValidateAttemptsLimit(limit int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if limit < 0 || limit > 100 {
		errors = append(errors, domain.NewOutOfRangeError("limit", limit, 0, 100))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	// Check if all characters are valid base32 (Crockford's Base32)
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
