package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"bakeshop/internal/remote"
	"bakeshop/internal/session"
	"bakeshop/internal/storage"
)

// AuthHandler handles login, signup, logout and profile management. It is
// the only writer of the stored credential token besides the session
// provider's rejected-token path.
type AuthHandler struct {
	api      remote.AuthAPI
	tokens   storage.TokenStore
	sess     *session.Provider
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(api remote.AuthAPI, tokens storage.TokenStore, sess *session.Provider) *AuthHandler {
	return &AuthHandler{
		api:      api,
		tokens:   tokens,
		sess:     sess,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, requireUser fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/me", h.HandleMe)
	authRoutes.Patch("/profile", requireUser, h.HandleUpdateProfile)
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin signs the shopper in: the returned token is persisted and the
// session identity replaced, which in turn makes the cart provider re-fetch.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	token, user, err := h.api.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		return remoteErrorResponse(c, err)
	}

	if err := h.tokens.SetToken(token); err != nil {
		log.Printf("Failed to persist token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not persist credentials",
		})
	}
	h.sess.SetUser(user)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	AdminPin string `json:"adminPin" validate:"required_if=Role admin"`
}

// HandleSignup creates an account. Admin signups carry the admin access key,
// which the remote API verifies.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	token, user, err := h.api.Signup(c.Context(), remote.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		AdminPin: req.AdminPin,
	})
	if err != nil {
		log.Printf("Signup failed for %s: %v", req.Email, err)
		return remoteErrorResponse(c, err)
	}

	// Some deployments return a token on signup, signing the shopper in
	// immediately; others require a separate login.
	if token != "" {
		if err := h.tokens.SetToken(token); err != nil {
			log.Printf("Failed to persist token: %v", err)
		} else {
			h.sess.SetUser(user)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"user":    user,
	})
}

// HandleLogout ends the remote session, clears the stored token and resets
// the identity to "not authenticated".
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.api.Logout(c.Context()); err != nil {
		log.Printf("Remote logout failed: %v", err)
		return remoteErrorResponse(c, err)
	}

	if err := h.tokens.ClearToken(); err != nil {
		log.Printf("Failed to clear token: %v", err)
	}
	h.sess.SetUser(nil)

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// HandleMe returns the current identity and readiness flag.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user":  h.sess.User(),
		"ready": h.sess.Ready(),
	})
}

// ProfileUpdateRequest is the request body for profile changes. Empty
// fields are left untouched.
type ProfileUpdateRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// HandleUpdateProfile applies a partial profile change and replaces the
// session identity with the returned principal.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user, err := h.api.UpdateProfile(c.Context(), remote.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		log.Printf("Profile update failed: %v", err)
		return remoteErrorResponse(c, err)
	}
	h.sess.SetUser(user)

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user,
	})
}
