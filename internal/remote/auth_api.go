package remote

import (
	"context"

	"bakeshop/internal/models"
)

// SignupRequest is the payload for creating a new account. AdminPin is only
// required when Role is "admin".
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	AdminPin string `json:"adminPin,omitempty"`
}

// ProfileUpdate is a partial profile change; empty fields are left untouched.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// AuthAPI defines the authentication operations against the remote API.
type AuthAPI interface {
	// Me resolves the principal behind the stored credential token.
	Me(ctx context.Context) (*models.User, error)
	// Login exchanges credentials for a token and the signed-in user.
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	// Signup creates an account and returns a token and the new user.
	Signup(ctx context.Context, req SignupRequest) (string, *models.User, error)
	// Logout invalidates the server-side session.
	Logout(ctx context.Context) error
	// UpdateProfile applies a partial profile change and returns the
	// updated user.
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error)
}
