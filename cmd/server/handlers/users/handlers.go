package users

import (
	"context"
	"errors"
	"time"

	"geo-users/cmd/server/handlers/handlerutil"
	"geo-users/cmd/server/handlers/httperr"
	"geo-users/internal/logger"
	"geo-users/internal/services/users"

	"github.com/gofiber/fiber/v2"
)

// Success messages
const (
	MsgUserCreated     = "User created successfully"
	MsgStatusesToggled = "All user statuses toggled"
	MsgDistance        = "Distance calculated"
	MsgListing         = "User listing by day"
)

// UsersService defines the interface for users service
type UsersService interface {
	Register(ctx context.Context, reg users.Registration) (*users.RegisterResponse, error)
	ToggleStatus(ctx context.Context) (int64, error)
	Distance(origin, destination users.Point) string
	ListByWeekday(ctx context.Context, days []time.Weekday) (map[string][]users.Contact, error)
}

// Handlers contains the users HTTP handlers
type Handlers struct {
	service   UsersService
	validator *users.Validator
}

// NewHandlers creates new users handlers
func NewHandlers(service UsersService, validator *users.Validator) *Handlers {
	return &Handlers{
		service:   service,
		validator: validator,
	}
}

// RegisterResponse is the documented body of a successful registration.
type RegisterResponse struct {
	StatusCode int                     `json:"status_code" example:"200"`
	Message    string                  `json:"message" example:"User created successfully"`
	Data       *users.RegisterResponse `json:"data"`
}

// DistanceResponse carries the formatted distance next to the message.
type DistanceResponse struct {
	StatusCode int    `json:"status_code" example:"200"`
	Message    string `json:"message" example:"Distance calculated"`
	Distance   string `json:"distance" example:"12.34 km"`
}

// ListingResponse maps lowercase weekday names to the users registered on them.
type ListingResponse struct {
	StatusCode int                        `json:"status_code" example:"200"`
	Message    string                     `json:"message" example:"User listing by day"`
	Data       map[string][]users.Contact `json:"data"`
}

// Register handles user registration
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body users.RegisterRequest true "Registration payload"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} httperr.E
// @Failure 429 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /register [post]
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req users.RegisterRequest
	// an empty body is an empty object, so the first missing field is reported
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			logger.L().Warn("failed to parse register request body", "handler", "Register", "error", err)
			return httperr.Fail(httperr.ErrInvalidBody)
		}
	}

	reg, err := h.validator.Check(req)
	if err != nil {
		var verr *users.ValidationError
		if errors.As(err, &verr) {
			logger.L().Warn("register request validation failed", "handler", "Register", "field", verr.Field, "error", err)
			return httperr.BadRequest(verr.Message)
		}
		logger.L().Warn("register request validation failed", "handler", "Register", "error", err)
		return httperr.Fail(httperr.ErrInvalidBody)
	}

	resp, err := h.service.Register(c.UserContext(), reg)
	if err != nil {
		if errors.Is(err, users.ErrUserExists) {
			logger.L().Info("email already registered", "handler", "Register", "email", reg.Email)
			return httperr.Fail(httperr.ErrUserExists)
		}
		logger.L().Error("register service failed", "handler", "Register", "email", reg.Email, "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return handlerutil.OK(c, MsgUserCreated, resp)
}

// ToggleStatus flips the status of every user
// @Summary Toggle every user's status
// @Description Active users become inactive and inactive users become active, in one bulk update.
// @Tags users
// @Produce json
// @Security Bearer
// @Success 200 {object} handlerutil.Envelope
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /change-status [patch]
func (h *Handlers) ToggleStatus(c *fiber.Ctx) error {
	if _, err := h.service.ToggleStatus(c.UserContext()); err != nil {
		logger.L().Error("toggle status service failed", "handler", "ToggleStatus", "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return handlerutil.OK(c, MsgStatusesToggled, nil)
}

// GetDistance measures the caller's distance to a destination
// @Summary Distance from the caller to a destination
// @Description The origin is taken from the coordinates embedded in the bearer token.
// @Tags users
// @Produce json
// @Security Bearer
// @Param destination_latitude query number true "Destination latitude in degrees"
// @Param destination_longitude query number true "Destination longitude in degrees"
// @Success 200 {object} DistanceResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Router /get-distance [get]
func (h *Handlers) GetDistance(c *fiber.Ctx) error {
	claims, err := handlerutil.GetClaims(c)
	if err != nil {
		return err
	}

	dest, err := users.ParseDestination(c.Query("destination_latitude"), c.Query("destination_longitude"))
	if err != nil {
		logger.L().Warn("invalid destination", "handler", "GetDistance", "userID", claims.ID, "error", err)
		if errors.Is(err, users.ErrDestinationMissing) {
			return httperr.Fail(httperr.ErrDestinationMiss)
		}
		return httperr.Fail(httperr.ErrDestinationNaN)
	}

	origin := users.Point{Latitude: claims.Latitude, Longitude: claims.Longitude}

	return c.JSON(DistanceResponse{
		StatusCode: fiber.StatusOK,
		Message:    MsgDistance,
		Distance:   h.service.Distance(origin, dest),
	})
}

// ListByWeekday groups users by registration weekday
// @Summary Users grouped by registration weekday
// @Description Weekdays with no users are left out of the response.
// @Tags users
// @Produce json
// @Security Bearer
// @Param week_number query string true "Comma separated weekdays, 0=Sunday .. 6=Saturday" example(0,6)
// @Success 200 {object} ListingResponse
// @Failure 400 {object} httperr.E
// @Failure 401 {object} httperr.E
// @Failure 500 {object} httperr.E
// @Router /user-listing [get]
func (h *Handlers) ListByWeekday(c *fiber.Ctx) error {
	days, err := users.ParseWeekNumbers(c.Query("week_number"))
	if err != nil {
		logger.L().Warn("invalid week_number", "handler", "ListByWeekday", "week_number", c.Query("week_number"), "error", err)
		if errors.Is(err, users.ErrWeekNumberMissing) {
			return httperr.Fail(httperr.ErrWeekNumberMiss)
		}
		return httperr.Fail(httperr.ErrWeekNumberRange)
	}

	listing, err := h.service.ListByWeekday(c.UserContext(), days)
	if err != nil {
		logger.L().Error("listing service failed", "handler", "ListByWeekday", "error", err)
		return httperr.Fail(httperr.ErrInternal)
	}

	return c.JSON(ListingResponse{
		StatusCode: fiber.StatusOK,
		Message:    MsgListing,
		Data:       listing,
	})
}
