package mapper

import (
	"github.com/pawhaven/adopt-api/internal/domains/users/domain"
)

// RegisterUser captures the inbound payload for linking an account.
type RegisterUser struct {
	Subject     string `json:"subject"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Login captures the credential exchange payload.
type Login struct {
	Subject string `json:"subject"`
}

// LoginResult carries the issued session token and the resolved account.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User is the HTTP representation of an account.
type User struct {
	ID          int64  `json:"id"`
	Subject     string `json:"subject"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
}

// ToDomainUser maps a registration payload into the domain aggregate.
func ToDomainUser(input RegisterUser) (*domain.User, error) {
	role := domain.Role(input.Role)
	if input.Role == "" {
		role = domain.RoleAdopter
	}
	user, err := domain.NewUser(0, input.Subject, input.DisplayName, role)
	if err != nil {
		return nil, err
	}
	if err := user.SetEmail(input.Email); err != nil {
		return nil, err
	}
	return user, nil
}

// FromDomainUser maps a domain aggregate into its transport representation.
func FromDomainUser(u *domain.User) User {
	if u == nil {
		return User{}
	}
	return User{
		ID:          u.ID,
		Subject:     u.Subject,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        string(u.Role),
	}
}
