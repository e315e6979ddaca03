package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"geo-users/cmd/server/handlers/httperr"
	"geo-users/internal/config"
	"geo-users/internal/logger"
	"geo-users/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret signs every token minted by CreateTestJWT.
const TestJWTSecret = "test-secret-key-that-is-long-enough-for-hs256"

// CreateTestApp creates a basic Fiber app for testing with common configuration
func CreateTestApp(t *testing.T) *fiber.App {
	cfg := config.Config{LogLevel: "debug", LogFormat: "text"}
	_, err := logger.Init(cfg)
	require.NoError(t, err)

	return fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true,
	})
}

// CreateTestJWT signs a token for the given identity with TestJWTSecret.
// A zero expiry leaves out the exp claim; a negative one yields an expired token.
func CreateTestJWT(userID string, latitude, longitude float64, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := auth.Claims{
		ID:        userID,
		Latitude:  latitude,
		Longitude: longitude,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if expiry != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(expiry))
	}

	return auth.Sign([]byte(TestJWTSecret), claims)
}

// CreateJSONRequest creates an HTTP request with JSON body
func CreateJSONRequest(method, url string, body any) *http.Request {
	var reqBody []byte
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = []byte(b)
	default:
		reqBody, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateAuthenticatedRequest creates an HTTP request with Authorization header
func CreateAuthenticatedRequest(method, url string, body any, token string) *http.Request {
	req := CreateJSONRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// Envelope mirrors the JSON shape of every API response.
type Envelope struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Distance   string          `json:"distance"`
}

// DecodeEnvelope reads and closes the response body.
func DecodeEnvelope(t *testing.T, body io.ReadCloser) Envelope {
	t.Helper()
	defer func() { _ = body.Close() }()

	var env Envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}
