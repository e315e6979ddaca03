package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geo-users/internal/services/users"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersCollection is the collection backing UsersRepo.
const UsersCollection = "users"

// UsersRepo implements the users.Repository interface for MongoDB
type UsersRepo struct {
	collection *mongo.Collection
}

// NewUsersRepo creates a new users repository and ensures the unique email index.
func NewUsersRepo(ctx context.Context, db *mongo.Database) (*UsersRepo, error) {
	collection := db.Collection(UsersCollection)

	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "register_at", Value: 1}},
			Options: options.Index().SetName("register_at"),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return nil, fmt.Errorf("create users indexes: %w", err)
	}

	return &UsersRepo{collection: collection}, nil
}

// Create inserts a new user. A duplicate email maps to users.ErrUserExists.
func (r *UsersRepo) Create(ctx context.Context, user *users.User) error {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return users.ErrUserExists
		}
		return err
	}

	return nil
}

// FindByEmail finds a user by email address
func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (*users.User, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	var user users.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, users.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// ToggleAllStatuses flips every user's status with a single pipeline update,
// so each document is rewritten atomically by the server.
func (r *UsersRepo) ToggleAllStatuses(ctx context.Context) (int64, error) {
	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	flip := bson.D{{Key: "$cond", Value: bson.D{
		{Key: "if", Value: bson.D{{Key: "$eq", Value: bson.A{"$status", string(users.StatusActive)}}}},
		{Key: "then", Value: string(users.StatusInactive)},
		{Key: "else", Value: string(users.StatusActive)},
	}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "status", Value: flip}}}},
	}

	res, err := r.collection.UpdateMany(ctx, bson.D{}, update)
	if err != nil {
		return 0, err
	}

	return res.ModifiedCount, nil
}

// weekdayBucket is one $group output row; Day follows $dayOfWeek (1=Sunday..7=Saturday).
type weekdayBucket struct {
	Day   int             `bson:"_id"`
	Users []users.Contact `bson:"users"`
}

// GroupByWeekday returns the users whose register_at, seen in loc, falls
// on one of days. Buckets come back ordered by weekday, users inside a
// bucket by register_at.
func (r *UsersRepo) GroupByWeekday(ctx context.Context, days []time.Weekday, loc *time.Location) ([]users.WeekdayGroup, error) {
	if len(days) == 0 {
		return []users.WeekdayGroup{}, nil
	}
	if loc == nil {
		loc = time.UTC
	}

	ctx, cancel := WithRepoTimeout(ctx, OpTimeout)
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, weekdayPipeline(days, loc))
	if err != nil {
		return nil, err
	}

	var buckets []weekdayBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	groups := make([]users.WeekdayGroup, 0, len(buckets))
	for _, b := range buckets {
		groups = append(groups, users.WeekdayGroup{
			Weekday: time.Weekday(b.Day - 1),
			Users:   b.Users,
		})
	}

	return groups, nil
}

func weekdayPipeline(days []time.Weekday, loc *time.Location) mongo.Pipeline {
	mongoDays := make(bson.A, 0, len(days))
	for _, d := range days {
		mongoDays = append(mongoDays, int(d)+1)
	}

	dayOfWeek := bson.D{{Key: "$dayOfWeek", Value: bson.D{
		{Key: "date", Value: "$register_at"},
		{Key: "timezone", Value: loc.String()},
	}}}

	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "register_at", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "email", Value: 1},
			{Key: "dayOfWeek", Value: dayOfWeek},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "dayOfWeek", Value: bson.D{{Key: "$in", Value: mongoDays}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$dayOfWeek"},
			{Key: "users", Value: bson.D{{Key: "$push", Value: bson.D{
				{Key: "name", Value: "$name"},
				{Key: "email", Value: "$email"},
			}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
