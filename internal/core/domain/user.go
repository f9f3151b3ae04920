package domain

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// Password length bounds for create and change. The upper bound is in bytes,
// the most bcrypt will hash.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{10,15}$`)

// User is an end customer. IsAdmin grants the elevated role.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	MiddleName   string    `json:"middleName,omitempty"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the part of a registration shared by both actor kinds.
type Identity struct {
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
	Phone      string
	Password   string
}

// Normalize trims names and lower-cases the email.
func (i *Identity) Normalize() {
	i.FirstName = strings.TrimSpace(i.FirstName)
	i.MiddleName = strings.TrimSpace(i.MiddleName)
	i.LastName = strings.TrimSpace(i.LastName)
	i.Email = NormalizeEmail(i.Email)
	i.Phone = strings.TrimSpace(i.Phone)
}

func (i Identity) problems() []string {
	var out []string
	if i.FirstName == "" {
		out = append(out, "firstName is required")
	} else if len(i.FirstName) < 2 {
		out = append(out, "firstName must be at least 2 characters long")
	}
	if i.LastName == "" {
		out = append(out, "lastName is required")
	} else if len(i.LastName) < 2 {
		out = append(out, "lastName must be at least 2 characters long")
	}
	if i.Email == "" {
		out = append(out, "email is required")
	} else if !ValidEmail(i.Email) {
		out = append(out, "email must be a valid email")
	}
	if i.Phone == "" {
		out = append(out, "phone is required")
	} else if !ValidPhone(i.Phone) {
		out = append(out, "phone must be a valid phone number")
	}
	if i.Password == "" {
		out = append(out, "password is required")
	} else if len(i.Password) < MinPasswordLength {
		out = append(out, "password must be at least 6 characters long")
	} else if len(i.Password) > MaxPasswordLength {
		out = append(out, "password must be at most 72 bytes long")
	}
	return out
}

// UserRegistration is the input to user sign-up.
type UserRegistration struct {
	Identity
}

func (r UserRegistration) Validate() error {
	return NewValidationError(r.problems()...)
}

// UserUpdate is a partial profile update; nil fields are left unchanged.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}

func (u *UserUpdate) Validate() error {
	if u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Phone == nil {
		return NewValidationError("at least one field must be provided for update")
	}
	var out []string
	if u.FirstName != nil {
		v := strings.TrimSpace(*u.FirstName)
		u.FirstName = &v
		if len(v) < 2 {
			out = append(out, "firstName must be at least 2 characters long")
		}
	}
	if u.LastName != nil {
		v := strings.TrimSpace(*u.LastName)
		u.LastName = &v
		if len(v) < 2 {
			out = append(out, "lastName must be at least 2 characters long")
		}
	}
	if u.Email != nil {
		v := NormalizeEmail(*u.Email)
		u.Email = &v
		if !ValidEmail(v) {
			out = append(out, "email must be a valid email")
		}
	}
	if u.Phone != nil {
		v := strings.TrimSpace(*u.Phone)
		u.Phone = &v
		if !ValidPhone(v) {
			out = append(out, "phone must be a valid phone number")
		}
	}
	return NewValidationError(out...)
}

// ValidatePasswordChange checks the new password against policy.
func ValidatePasswordChange(current, next string) error {
	var out []string
	if current == "" {
		out = append(out, "currentPassword is required")
	}
	if next == "" {
		out = append(out, "newPassword is required")
	} else if len(next) < MinPasswordLength {
		out = append(out, "newPassword must be at least 6 characters long")
	} else if len(next) > MaxPasswordLength {
		out = append(out, "newPassword must be at most 72 bytes long")
	}
	if current != "" && current == next {
		out = append(out, "newPassword must be different from currentPassword")
	}
	return NewValidationError(out...)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email, ".")
}

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
