package remote_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakeshop/internal/models"
	"bakeshop/internal/remote"
	"bakeshop/internal/storage"
)

var testJWTSecret = []byte("test-secret")

// fakeAuthServer behaves like the storefront's auth endpoints: login issues
// a signed JWT, /me validates the bearer token and returns the principal.
func fakeAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "crumbs" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   "u1",
			"email": req.Email,
			"role":  "user",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString(testJWTSecret)
		require.NoError(t, err)
		json.NewEncoder(w).Encode(map[string]any{
			"token": signed,
			"user":  models.User{ID: "u1", Name: "Ada", Email: req.Email, Role: "user"},
		})
	})

	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}

		parsed, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return testJWTSecret, nil
		})
		if err != nil || !parsed.Valid {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}

		claims := parsed.Claims.(jwt.MapClaims)
		json.NewEncoder(w).Encode(map[string]any{
			"user": models.User{
				ID:    claims["sub"].(string),
				Name:  "Ada",
				Email: claims["email"].(string),
				Role:  claims["role"].(string),
			},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginThenMe_RoundTrip(t *testing.T) {
	server := fakeAuthServer(t)
	tokens := storage.NewMemoryTokenStore()
	api := remote.NewHTTPAuthAPI(remote.NewClient(server.URL, 5*time.Second, tokens))

	token, user, err := api.Login(context.Background(), "ada@example.com", "crumbs")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "u1", user.ID)

	// The login flow persists the token; Me then picks it up implicitly.
	require.NoError(t, tokens.SetToken(token))
	me, err := api.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user, me)
}

func TestLogin_BadCredentials(t *testing.T) {
	server := fakeAuthServer(t)
	api := remote.NewHTTPAuthAPI(remote.NewClient(server.URL, 5*time.Second, storage.NewMemoryTokenStore()))

	_, _, err := api.Login(context.Background(), "ada@example.com", "wrong")

	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestMe_ForgedTokenRejected(t *testing.T) {
	server := fakeAuthServer(t)
	tokens := storage.NewMemoryTokenStore()
	require.NoError(t, tokens.SetToken("not-a-jwt"))
	api := remote.NewHTTPAuthAPI(remote.NewClient(server.URL, 5*time.Second, tokens))

	_, err := api.Me(context.Background())

	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestMe_ExpiredTokenRejected(t *testing.T) {
	server := fakeAuthServer(t)
	tokens := storage.NewMemoryTokenStore()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "ada@example.com",
		"role":  "user",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString(testJWTSecret)
	require.NoError(t, err)
	require.NoError(t, tokens.SetToken(signed))

	api := remote.NewHTTPAuthAPI(remote.NewClient(server.URL, 5*time.Second, tokens))
	_, err = api.Me(context.Background())

	var apiErr *remote.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
