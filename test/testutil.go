//go:build e2e

package test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mongoclient "geo-users/internal/clients/mongo"
	"geo-users/internal/services/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// HTTPJSONStep represents a single HTTP JSON request step in a test
type HTTPJSONStep struct {
	Name           string
	Method         string
	URL            string
	Body           any
	Headers        map[string]string
	ExpectedStatus int
	Validator      func(*testing.T, map[string]any) // Optional response validator
}

// ExecuteHTTPJSONStep executes a single HTTP JSON step and handles all the common boilerplate
func ExecuteHTTPJSONStep(t *testing.T, step HTTPJSONStep, baseURL string) map[string]any {
	t.Helper()
	t.Logf("step: %s", step.Name)

	resp, err := httpJSON(step.Method, baseURL+step.URL, step.Body, step.Headers)
	require.NoError(t, err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf("failed to close response body: %v", err)
		}
	}()

	assert.Equal(t, step.ExpectedStatus, resp.StatusCode, step.Name)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"), "every response carries a request id")

	var respData map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&respData))
	assert.Equal(t, float64(step.ExpectedStatus), respData["status_code"], "status_code mirrors the HTTP status")

	if step.Validator != nil {
		step.Validator(t, respData)
	}

	return respData
}

// ExecuteHTTPJSONSteps executes a sequence of HTTP JSON steps
func ExecuteHTTPJSONSteps(t *testing.T, steps []HTTPJSONStep, baseURL string) []map[string]any {
	t.Helper()
	var results []map[string]any

	for _, step := range steps {
		results = append(results, ExecuteHTTPJSONStep(t, step, baseURL))
	}

	return results
}

// MessageValidator validates that a response contains a specific message
func MessageValidator(expectedMessage string) func(*testing.T, map[string]any) {
	return func(t *testing.T, respData map[string]any) {
		t.Helper()
		message, exists := respData["message"]
		require.True(t, exists, "Expected message field to exist in response")
		assert.Equal(t, expectedMessage, message)
	}
}

// ErrorValidator checks the message and that no data payload leaked.
func ErrorValidator(expectedMessage string) func(*testing.T, map[string]any) {
	return func(t *testing.T, respData map[string]any) {
		t.Helper()
		MessageValidator(expectedMessage)(t, respData)
		assert.NotContains(t, respData, "data", "error responses never include data")
	}
}

// GetDataField extracts a string field from the response's data object.
func GetDataField(t *testing.T, respData map[string]any, fieldName string) string {
	t.Helper()
	data, ok := respData["data"].(map[string]any)
	require.True(t, ok, "Expected data object in response")
	value, ok := data[fieldName].(string)
	require.True(t, ok, "Expected data.%s to be a string", fieldName)
	require.NotEmpty(t, value, "Expected data.%s to not be empty", fieldName)
	return value
}

// bearer returns the Authorization header map for token.
func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// registerPayload builds a valid registration body.
func registerPayload(email string, lat, lng float64) map[string]any {
	return map[string]any{
		"name":      "E2E " + email,
		"email":     email,
		"password":  "Passw0rd123",
		"address":   "1 Test Street",
		"latitude":  lat,
		"longitude": lng,
	}
}

// seedUsers writes users straight into the database, bypassing the API, so
// tests can control register_at.
func seedUsers(t *testing.T, env *TestEnvironment, seeded ...*users.User) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(env.MongoURI))
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo, err := mongoclient.NewUsersRepo(ctx, client.Database(e2eDBName))
	require.NoError(t, err)

	for _, u := range seeded {
		require.NoError(t, repo.Create(ctx, u))
	}
}
