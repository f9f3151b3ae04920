package domain

import (
	"errors"
	"strings"
	"testing"
)

func validIdentity(password string) Identity {
	return Identity{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		Password:  password,
	}
}

func TestIdentity_PasswordBounds(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "12345", true},
		{"minimum", "123456", false},
		{"at bcrypt limit", strings.Repeat("a", MaxPasswordLength), false},
		{"over bcrypt limit", strings.Repeat("a", MaxPasswordLength+1), true},
		// 37 two-byte runes: short in characters, too long in bytes.
		{"multibyte over limit", strings.Repeat("é", 37), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := UserRegistration{Identity: validIdentity(tc.password)}.Validate()
			if tc.wantErr != errors.Is(err, ErrValidation) {
				t.Fatalf("password len %d: wantErr=%v, got %v", len(tc.password), tc.wantErr, err)
			}
		})
	}
}

func TestValidatePasswordChange(t *testing.T) {
	if err := ValidatePasswordChange("old-pass", "new-pass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePasswordChange("old-pass", strings.Repeat("x", MaxPasswordLength+1)); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for oversized password, got %v", err)
	}
	if err := ValidatePasswordChange("same-pass", "same-pass"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unchanged password, got %v", err)
	}

	var ve *ValidationError
	if err := ValidatePasswordChange("", ""); !errors.As(err, &ve) || len(ve.Fields) != 2 {
		t.Fatalf("expected two messages, got %v", err)
	}
}

func TestProviderUpdate_NormalizeTrims(t *testing.T) {
	first, business, phone := "  Ravi ", "  Royal Lawns ", " 9876543210 "
	u := ProviderUpdate{FirstName: &first, BusinessName: &business, Phone: &phone}
	u.Normalize()

	if *u.FirstName != "Ravi" || *u.BusinessName != "Royal Lawns" || *u.Phone != "9876543210" {
		t.Fatalf("fields not trimmed: %q %q %q", *u.FirstName, *u.BusinessName, *u.Phone)
	}
	if first != "  Ravi " {
		t.Fatalf("caller's string must not be modified")
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
