package remote

import (
	"context"
	"net/http"

	"bakeshop/internal/models"
)

// HTTPAuthAPI is the HTTP implementation of AuthAPI.
type HTTPAuthAPI struct {
	client *Client
}

// NewHTTPAuthAPI creates a new HTTPAuthAPI on the shared client.
func NewHTTPAuthAPI(client *Client) *HTTPAuthAPI {
	return &HTTPAuthAPI{client: client}
}

// Me resolves the principal behind the stored credential token.
func (a *HTTPAuthAPI) Me(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := a.client.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp, "Unauthorized"); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Login exchanges credentials for a token and the signed-in user.
func (a *HTTPAuthAPI) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	if err := a.client.do(ctx, http.MethodPost, "/api/auth/login", body, &resp, "Login failed"); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// Signup creates an account and returns a token and the new user.
func (a *HTTPAuthAPI) Signup(ctx context.Context, req SignupRequest) (string, *models.User, error) {
	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	if err := a.client.do(ctx, http.MethodPost, "/api/auth/signup", req, &resp, "Signup failed"); err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// Logout invalidates the server-side session.
func (a *HTTPAuthAPI) Logout(ctx context.Context) error {
	return a.client.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, "Logout failed")
}

// UpdateProfile applies a partial profile change and returns the updated user.
func (a *HTTPAuthAPI) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := a.client.do(ctx, http.MethodPatch, "/api/auth/update-profile", update, &resp, "Failed to update profile"); err != nil {
		return nil, err
	}
	return resp.User, nil
}
