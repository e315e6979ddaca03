package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"geo-users/cmd/server/middlewares"
	"geo-users/cmd/server/testutil"
	"geo-users/internal/services/users"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	registerEndpoint = "/register"
	statusEndpoint   = "/change-status"
	distanceEndpoint = "/get-distance"
	listingEndpoint  = "/user-listing"
	testEmail        = "jane@example.com"
)

// MockUsersService mocks the users service
type MockUsersService struct {
	mock.Mock
}

func (m *MockUsersService) Register(ctx context.Context, reg users.Registration) (*users.RegisterResponse, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.RegisterResponse), args.Error(1)
}

func (m *MockUsersService) ToggleStatus(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsersService) Distance(origin, destination users.Point) string {
	args := m.Called(origin, destination)
	return args.String(0)
}

func (m *MockUsersService) ListByWeekday(ctx context.Context, days []time.Weekday) (map[string][]users.Contact, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]users.Contact), args.Error(1)
}

// UsersTestSetup contains common test setup data
type UsersTestSetup struct {
	MockService *MockUsersService
	App         *fiber.App
	Token       string
}

// SetupUsersTest wires the handlers behind the real jwt middleware.
func SetupUsersTest(t *testing.T) *UsersTestSetup {
	t.Helper()

	mockService := &MockUsersService{}
	app := testutil.CreateTestApp(t)
	h := NewHandlers(mockService, users.NewValidator())

	jwt := middlewares.JWT(testutil.TestJWTSecret)
	app.Post(registerEndpoint, h.Register)
	app.Patch(statusEndpoint, jwt, h.ToggleStatus)
	app.Get(distanceEndpoint, jwt, h.GetDistance)
	app.Get(listingEndpoint, jwt, h.ListByWeekday)

	token, err := testutil.CreateTestJWT("683cdb8aa96ad71e8e075bd1", 51.5237, -0.1585, time.Hour)
	require.NoError(t, err)

	return &UsersTestSetup{
		MockService: mockService,
		App:         app,
		Token:       token,
	}
}

func (s *UsersTestSetup) do(t *testing.T, req *http.Request) (int, testutil.Envelope) {
	t.Helper()
	resp, err := s.App.Test(req)
	require.NoError(t, err)
	return resp.StatusCode, testutil.DecodeEnvelope(t, resp.Body)
}

func (s *UsersTestSetup) get(t *testing.T, url string) (int, testutil.Envelope) {
	t.Helper()
	return s.do(t, testutil.CreateAuthenticatedRequest(fiber.MethodGet, url, nil, s.Token))
}

func validPayload() map[string]any {
	return map[string]any{
		"name":      "Jane Doe",
		"email":     testEmail,
		"password":  "secret",
		"address":   "221B Baker Street",
		"latitude":  51.5237,
		"longitude": -0.1585,
	}
}

func TestRegisterSuccess(t *testing.T) {
	setup := SetupUsersTest(t)

	registeredAt := time.Date(2025, 6, 1, 23, 0, 26, 5_000_000, time.UTC)
	expected := users.Registration{
		Name:      "Jane Doe",
		Email:     testEmail,
		Password:  "secret",
		Address:   "221B Baker Street",
		Latitude:  51.5237,
		Longitude: -0.1585,
	}
	setup.MockService.On("Register", mock.Anything, expected).Return(&users.RegisterResponse{
		ID:         "683cdb8aa96ad71e8e075bd1",
		Name:       expected.Name,
		Email:      expected.Email,
		Address:    expected.Address,
		Latitude:   expected.Latitude,
		Longitude:  expected.Longitude,
		Status:     users.StatusActive,
		RegisterAt: registeredAt,
		Token:      "signed-token",
	}, nil)

	payload := validPayload()
	payload["email"] = "  Jane@Example.COM "

	status, env := setup.do(t, testutil.CreateJSONRequest(fiber.MethodPost, registerEndpoint, payload))
	assert.Equal(t, 200, status)
	assert.Equal(t, 200, env.StatusCode)
	assert.Equal(t, MsgUserCreated, env.Message)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, testEmail, data["email"])
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, "signed-token", data["token"])
	assert.Equal(t, "2025-06-01T23:00:26.005Z", data["register_at"])
	assert.NotContains(t, data, "password")

	setup.MockService.AssertExpectations(t)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"empty body", nil, "name is required"},
		{"empty object", "{}", "name is required"},
		{"malformed json", "{not json", "Invalid request body"},
		{"wrong type for name", `{"name": 12}`, "Invalid request body"},
		{"missing email", without("email"), "email is required"},
		{"bad email", with("email", "not-an-email"), "email must be a valid email"},
		{"missing password", with("password", ""), "password is required"},
		{"blank address", with("address", "   "), "address is required"},
		{"address is only markup", with("address", "<b></b>"), "address is required"},
		{"latitude not numeric", with("latitude", "abc"), "latitude must be a number"},
		{"latitude boolean", with("latitude", true), "latitude must be a number"},
		{"latitude null", with("latitude", nil), "latitude is required"},
		{"missing longitude", without("longitude"), "longitude is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := SetupUsersTest(t)

			status, env := setup.do(t, testutil.CreateJSONRequest(fiber.MethodPost, registerEndpoint, tt.body))
			assert.Equal(t, 400, status)
			assert.Equal(t, 400, env.StatusCode)
			assert.Equal(t, tt.message, env.Message)
			assert.Empty(t, env.Data, "errors never carry data")

			setup.MockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterZeroCoordinates(t *testing.T) {
	setup := SetupUsersTest(t)
	setup.MockService.On("Register", mock.Anything, mock.MatchedBy(func(r users.Registration) bool {
		return r.Latitude == 0 && r.Longitude == 0
	})).Return(&users.RegisterResponse{Email: testEmail}, nil)

	payload := validPayload()
	payload["latitude"] = 0
	payload["longitude"] = "0"

	status, _ := setup.do(t, testutil.CreateJSONRequest(fiber.MethodPost, registerEndpoint, payload))
	assert.Equal(t, 200, status)
	setup.MockService.AssertExpectations(t)
}

func TestRegisterExponentCoordinates(t *testing.T) {
	setup := SetupUsersTest(t)
	setup.MockService.On("Register", mock.Anything, mock.MatchedBy(func(r users.Registration) bool {
		return r.Latitude == 100 && r.Longitude == -0.25
	})).Return(&users.RegisterResponse{Email: testEmail}, nil)

	payload := validPayload()
	payload["latitude"] = "1e2"
	payload["longitude"] = "-2.5e-1"

	status, _ := setup.do(t, testutil.CreateJSONRequest(fiber.MethodPost, registerEndpoint, payload))
	assert.Equal(t, 200, status)
	setup.MockService.AssertExpectations(t)
}

func TestRegisterServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"duplicate email", users.ErrUserExists, 400, "User already exists"},
		{"wrapped duplicate", errors.Join(errors.New("create"), users.ErrUserExists), 400, "User already exists"},
		{"store failure", errors.New("connection reset"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := SetupUsersTest(t)
			setup.MockService.On("Register", mock.Anything, mock.Anything).Return(nil, tt.err)

			status, env := setup.do(t, testutil.CreateJSONRequest(fiber.MethodPost, registerEndpoint, validPayload()))
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, env.Message)
			assert.NotContains(t, env.Message, "connection reset", "internal details must not leak")
		})
	}
}

func TestToggleStatus(t *testing.T) {
	setup := SetupUsersTest(t)
	setup.MockService.On("ToggleStatus", mock.Anything).Return(int64(3), nil)

	status, env := setup.do(t, testutil.CreateAuthenticatedRequest(fiber.MethodPatch, statusEndpoint, nil, setup.Token))
	assert.Equal(t, 200, status)
	assert.Equal(t, MsgStatusesToggled, env.Message)
	assert.Empty(t, env.Data, "confirmation carries no data")
	setup.MockService.AssertExpectations(t)
}

func TestToggleStatusFailure(t *testing.T) {
	setup := SetupUsersTest(t)
	setup.MockService.On("ToggleStatus", mock.Anything).Return(int64(0), errors.New("write conflict"))

	status, env := setup.do(t, testutil.CreateAuthenticatedRequest(fiber.MethodPatch, statusEndpoint, nil, setup.Token))
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", env.Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	setup := SetupUsersTest(t)

	for _, route := range []struct{ method, path string }{
		{fiber.MethodPatch, statusEndpoint},
		{fiber.MethodGet, distanceEndpoint + "?destination_latitude=1&destination_longitude=2"},
		{fiber.MethodGet, listingEndpoint + "?week_number=0"},
	} {
		t.Run(route.path, func(t *testing.T) {
			status, env := setup.do(t, testutil.CreateJSONRequest(route.method, route.path, nil))
			assert.Equal(t, 401, status)
			assert.Equal(t, "No token provided", env.Message)

			req := testutil.CreateJSONRequest(route.method, route.path, nil)
			req.Header.Set("Authorization", "Token abc")
			status, env = setup.do(t, req)
			assert.Equal(t, 401, status)
			assert.Equal(t, "Invalid authorization header format", env.Message)

			status, env = setup.do(t, testutil.CreateAuthenticatedRequest(route.method, route.path, nil, "forged.token.value"))
			assert.Equal(t, 400, status)
			assert.Equal(t, "Invalid token", env.Message)
		})
	}

	setup.MockService.AssertNotCalled(t, "ToggleStatus", mock.Anything)
}

func TestGetDistance(t *testing.T) {
	setup := SetupUsersTest(t)
	origin := users.Point{Latitude: 51.5237, Longitude: -0.1585}
	dest := users.Point{Latitude: 48.8566, Longitude: 2.3522}
	setup.MockService.On("Distance", origin, dest).Return("343.92 km")

	status, env := setup.get(t, distanceEndpoint+"?destination_latitude=48.8566&destination_longitude=2.3522")
	assert.Equal(t, 200, status)
	assert.Equal(t, MsgDistance, env.Message)
	assert.Equal(t, "343.92 km", env.Distance)
	setup.MockService.AssertExpectations(t)
}

func TestGetDistanceInvalidQuery(t *testing.T) {
	const (
		missing = "Please provide both destination_latitude and destination_longitude in query params"
		invalid = "destination_latitude and destination_longitude must be valid numbers"
	)

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"no params", "", missing},
		{"latitude only", "?destination_latitude=1", missing},
		{"empty longitude", "?destination_latitude=1&destination_longitude=", missing},
		{"latitude abc", "?destination_latitude=abc&destination_longitude=2", invalid},
		{"latitude abc alone", "?destination_latitude=abc", missing},
		{"longitude with suffix", "?destination_latitude=1&destination_longitude=2km", invalid},
		{"infinite", "?destination_latitude=Inf&destination_longitude=2", invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := SetupUsersTest(t)

			status, env := setup.get(t, distanceEndpoint+tt.query)
			assert.Equal(t, 400, status)
			assert.Equal(t, tt.message, env.Message)
			setup.MockService.AssertNotCalled(t, "Distance", mock.Anything, mock.Anything)
		})
	}
}

func TestListByWeekday(t *testing.T) {
	setup := SetupUsersTest(t)
	setup.MockService.On("ListByWeekday", mock.Anything, []time.Weekday{time.Sunday, time.Saturday}).
		Return(map[string][]users.Contact{
			"sunday": {{Name: "Jane", Email: testEmail}},
		}, nil)

	status, env := setup.get(t, listingEndpoint+"?week_number=0,6")
	assert.Equal(t, 200, status)
	assert.Equal(t, MsgListing, env.Message)

	var data map[string][]users.Contact
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, map[string][]users.Contact{"sunday": {{Name: "Jane", Email: testEmail}}}, data)
	assert.NotContains(t, data, "saturday")
	setup.MockService.AssertExpectations(t)
}

func TestListByWeekdayInvalidQuery(t *testing.T) {
	const (
		missing = "Please provide the 'week_number' query parameter. Example: ?week_number=0,1,2"
		invalid = "All values in 'week_number' must be valid numbers between 0 and 6 (0=Sunday, 6=Saturday)."
	)

	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"absent", "", missing},
		{"blank", "?week_number=%20", missing},
		{"out of range", "?week_number=7", invalid},
		{"negative", "?week_number=-1", invalid},
		{"one bad entry", "?week_number=0,x,6", invalid},
		{"fraction", "?week_number=1.5", invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := SetupUsersTest(t)

			status, env := setup.get(t, listingEndpoint+tt.query)
			assert.Equal(t, 400, status)
			assert.Equal(t, tt.message, env.Message)
			setup.MockService.AssertNotCalled(t, "ListByWeekday", mock.Anything, mock.Anything)
		})
	}
}

func TestListByWeekdayFailure(t *testing.T) {
	setup := SetupUsersTest(t)
	setup.MockService.On("ListByWeekday", mock.Anything, mock.Anything).Return(nil, errors.New("cursor closed"))

	status, env := setup.get(t, listingEndpoint+"?week_number=1")
	assert.Equal(t, 500, status)
	assert.Equal(t, "Internal server error", env.Message)
}

func with(key string, value any) map[string]any {
	p := validPayload()
	p[key] = value
	return p
}

func without(key string) map[string]any {
	p := validPayload()
	delete(p, key)
	return p
}
