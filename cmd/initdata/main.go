// cmd/initdata seeds the users collection with fake users whose
// registration dates are spread over the last weeks, so that every
// weekday bucket of /user-listing has data.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	mongo "geo-users/internal/clients/mongo"
	"geo-users/internal/config"
	"geo-users/internal/logger"
	"geo-users/internal/services/users"
	"geo-users/internal/utils/crypto"

	"github.com/brianvoe/gofakeit/v6"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	count    = flag.Int("n", envInt("COUNT", 50), "How many users to create")
	days     = flag.Int("days", envInt("DAYS", 28), "Spread registration dates over this many past days")
	password = flag.String("pass", env("PASSWORD", "Password123"), "Password shared by every seeded user")
	seed     = flag.Int64("seed", 0, "Faker seed, 0 picks one from the clock")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
	fmt.Println("✔ done")
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return err
	}

	_, db, err := mongo.Init(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = mongo.Shutdown(context.Background()) }()

	repo, err := mongo.NewUsersRepo(ctx, db)
	if err != nil {
		return err
	}

	// one hash for all: bcrypt dominates the run time otherwise
	hash, err := crypto.HashPassword(*password, cfg.BcryptCost)
	if err != nil {
		return err
	}

	fmt.Printf("Seeding %d users into %s (seed=%d)\n", *count, db.Name(), *seed)

	faker := gofakeit.New(*seed)
	created, skipped := 0, 0
	for i := 1; i <= *count; i++ {
		err := repo.Create(ctx, fakeUser(faker, hash, *days))
		switch {
		case errors.Is(err, users.ErrUserExists):
			skipped++
		case err != nil:
			return fmt.Errorf("create user %d: %w", i, err)
		default:
			created++
		}

		if i%10 == 0 || i == *count {
			fmt.Printf("  … %d/%d\n", i, *count)
		}
	}

	fmt.Printf("• created %d, skipped %d duplicates\n", created, skipped)
	return nil
}

// fakeUser builds a user registered at a random instant of the last spanDays days.
func fakeUser(f *gofakeit.Faker, passwordHash string, spanDays int) *users.User {
	now := time.Now().UTC()
	addr := f.Address()

	status := users.StatusActive
	if f.Bool() {
		status = users.StatusInactive
	}

	return &users.User{
		ID:           bson.NewObjectID(),
		Name:         f.Name(),
		Email:        users.NormalizeEmail(f.Email()),
		PasswordHash: passwordHash,
		Address:      addr.Address,
		Latitude:     addr.Latitude,
		Longitude:    addr.Longitude,
		Status:       status,
		RegisterAt:   f.DateRange(now.AddDate(0, 0, -spanDays), now).UTC().Truncate(time.Millisecond),
	}
}
