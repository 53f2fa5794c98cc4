package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptySubject     = errors.New("identity subject is required")
	ErrEmptyDisplayName = errors.New("display name is required")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrUnknownRole      = errors.New("unknown role")
)

// Role is the closed set of account roles.
type Role string

const (
	// RoleAdopter can browse listings and file adoption requests.
	RoleAdopter Role = "adopter"
	// RoleRehomer can publish listings and decide requests against them.
	RoleRehomer Role = "rehomer"
	// RoleProvider is a service-provider account (groomers, sitters). It
	// holds no listing or adoption capabilities here; service booking is
	// handled outside this API.
	RoleProvider Role = "provider"
	// RoleAdmin can publish listings and file requests.
	RoleAdmin Role = "admin"
)

// ValidRole reports whether the role is one of the closed set.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdopter, RoleRehomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// CanPublishListings reports whether the role may register pets.
func (r Role) CanPublishListings() bool {
	return r == RoleRehomer || r == RoleAdmin
}

// CanAdopt reports whether the role may file adoption requests.
func (r Role) CanAdopt() bool {
	return r == RoleAdopter || r == RoleAdmin
}

// User is an account linked to an external identity-provider subject.
type User struct {
	ID          int64
	Subject     string
	DisplayName string
	Email       string
	Role        Role
}

// NewUser builds a user ensuring required invariants.
func NewUser(id int64, subject, displayName string, role Role) (*User, error) {
	user := &User{ID: id}
	if err := user.SetSubject(subject); err != nil {
		return nil, err
	}
	if err := user.SetDisplayName(displayName); err != nil {
		return nil, err
	}
	if err := user.SetRole(role); err != nil {
		return nil, err
	}
	return user, nil
}

// SetSubject trims and validates the identity subject.
func (u *User) SetSubject(subject string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ErrEmptySubject
	}
	u.Subject = subject
	return nil
}

// SetDisplayName trims and validates the display name.
func (u *User) SetDisplayName(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return ErrEmptyDisplayName
	}
	u.DisplayName = displayName
	return nil
}

// SetRole validates the role against the closed set.
func (u *User) SetRole(role Role) error {
	if !ValidRole(role) {
		return ErrUnknownRole
	}
	u.Role = role
	return nil
}

// SetEmail validates the email if present. Empty clears it.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetSubject(u.Subject); err != nil {
		return err
	}
	if err := u.SetDisplayName(u.DisplayName); err != nil {
		return err
	}
	if err := u.SetRole(u.Role); err != nil {
		return err
	}
	return u.SetEmail(u.Email)
}
