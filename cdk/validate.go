package cdk

import (
	"regexp"

	"github.com/madappgang/identifo-go/apierror"
)

// Client-side input checks run before any network call; failures attach to
// the current state like any other error but cost no round trip.
var (
	emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneShape = regexp.MustCompile(`^\+[0-9]{9,15}$`)
)

func validEmail(email string) bool { return emailShape.MatchString(email) }

func validPhone(phone string) bool { return phoneShape.MatchString(phone) }

func validationError(message string) *apierror.Error {
	return apierror.New(apierror.CodeValidation, message)
}
