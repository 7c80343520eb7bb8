package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Skotchmaster/quest_academy/internal/models"
)

var ErrValidation = errors.New("validation failed")

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterRequest is the registration form. Role defaults to user.
type RegisterRequest struct {
	Role            models.Role        `validate:"omitempty,oneof=user teacher"`
	Username        string             `validate:"required,max=50"`
	Email           string             `validate:"required,email"`
	Password        string             `validate:"required,min=6"`
	ConfirmPassword string             `validate:"omitempty,eqfield=Password"`
	AvatarClass     models.AvatarClass `validate:"omitempty,oneof=Novice Warrior Mage Ranger Paladin"`

	Bio            string
	Specialization string
}

func (r RegisterRequest) role() models.Role {
	if r.Role == "" {
		return models.RoleUser
	}
	return r.Role
}

func (r RegisterRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return fmt.Errorf("%w: %s", ErrValidation, describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return fmt.Sprintf("Unknown %s %q", fe.Field(), fe.Value())
	default:
		return fe.Field() + " is invalid"
	}
}

// validationMessage strips the sentinel prefix for display.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
}
