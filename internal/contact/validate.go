package contact

import (
	"errors"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Messages returned to the form.
const (
	MsgMissingFields = "Missing required fields"
	MsgInvalidEmail  = "Invalid email format"
	MsgTooShort      = "Message is too short"
	MsgInvalidBody   = "Invalid request body"
	MsgUnauthorized  = "Unauthorized request origin"
	MsgSent          = "Your message has been sent successfully!"
	MsgSimulated     = "Your message has been sent successfully! (Development mode)"
	MsgSendFailed    = "Failed to send email. Please check your email configuration."
	MsgFailed        = "Failed to send message. Please try again later."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is the posted contact form.
type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contact_email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required,min=10"`
}

// ValidationError carries the user-facing reason a submission was rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Validate checks required fields first, then the email, then the message
// length, and reports only the first failing rule.
func (s Submission) Validate() error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var badEmail, tooShort bool
	for _, fe := range verrs {
		switch {
		case fe.Tag() == "required":
			return &ValidationError{Message: MsgMissingFields}
		case fe.Field() == "Email":
			badEmail = true
		case fe.Field() == "Message" && fe.Tag() == "min":
			tooShort = true
		}
	}

	switch {
	case badEmail:
		return &ValidationError{Message: MsgInvalidEmail}
	case tooShort:
		return &ValidationError{Message: MsgTooShort}
	}
	return &ValidationError{Message: MsgMissingFields}
}
