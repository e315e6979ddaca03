package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"geo-users/internal/config"
	"geo-users/internal/utils/crypto"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// TokenIssuer signs credentials for newly registered users.
type TokenIssuer interface {
	Issue(id string, latitude, longitude float64) (string, error)
}

// Service handles the user business logic
type Service struct {
	repo       Repository
	issuer     TokenIssuer
	bcryptCost int
	location   *time.Location
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a new users service
func NewService(repo Repository, issuer TokenIssuer, cfg config.Config, log *slog.Logger) *Service {
	loc, err := time.LoadLocation(cfg.ListingTimezone)
	if err != nil {
		log.Warn("unknown listing timezone, falling back to UTC", "timezone", cfg.ListingTimezone, "error", err)
		loc = time.UTC
	}

	return &Service{
		repo:       repo,
		issuer:     issuer,
		bcryptCost: cfg.BcryptCost,
		location:   loc,
		log:        log,
		now:        time.Now,
	}
}

// Register creates a user with status active and returns it with a signed token.
func (s *Service) Register(ctx context.Context, reg Registration) (*RegisterResponse, error) {
	existing, err := s.repo.FindByEmail(ctx, reg.Email)
	if err == nil && existing != nil {
		return nil, ErrUserExists
	}
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	hashedPassword, err := crypto.HashPassword(reg.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           bson.NewObjectID(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hashedPassword,
		Address:      reg.Address,
		Latitude:     reg.Latitude,
		Longitude:    reg.Longitude,
		Status:       StatusActive,
		// Mongo stores milliseconds; truncate so the response matches what is persisted
		RegisterAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID.Hex(), user.Latitude, user.Longitude)
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", "userID", user.ID.Hex())

	return newRegisterResponse(user, token), nil
}

// ToggleStatus flips the status of every stored user in one bulk update.
func (s *Service) ToggleStatus(ctx context.Context) (int64, error) {
	modified, err := s.repo.ToggleAllStatuses(ctx)
	if err != nil {
		return 0, fmt.Errorf("toggle statuses: %w", err)
	}

	s.log.Info("user statuses toggled", "modified", modified)
	return modified, nil
}

// Distance returns the great-circle distance from origin to destination
// formatted in kilometers.
func (s *Service) Distance(origin, destination Point) string {
	return FormatKilometers(Haversine(origin, destination))
}

// ListByWeekday groups users by the weekday of their registration. Days
// without users are left out of the result.
func (s *Service) ListByWeekday(ctx context.Context, days []time.Weekday) (map[string][]Contact, error) {
	groups, err := s.repo.GroupByWeekday(ctx, days, s.location)
	if err != nil {
		return nil, fmt.Errorf("group users by weekday: %w", err)
	}

	result := make(map[string][]Contact, len(groups))
	for _, g := range groups {
		if len(g.Users) == 0 {
			continue
		}
		result[DayName(g.Weekday)] = g.Users
	}

	return result, nil
}
