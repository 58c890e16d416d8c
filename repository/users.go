package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUserNotFound = errors.New("user not found")

func GetUserRepo(client *mongo.Client) *UserRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("USERS_COLLECTION", "users")
	return &UserRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.Username == "" || user.Password == "" {
		utils.TrackError("database", "invalid_user_data")
		return errors.New("username and password required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		utils.TrackError("database", "user_creation_failed")
		return fmt.Errorf("failed to add user to database: %w", err)
	}

	utils.TrackRegistration()
	return nil
}

func (r *UserRepo) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, fmt.Errorf("failed to look up user by username: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return &user, nil
}

func (r *UserRepo) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) (int64, error) {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	if hashedPassword == "" {
		utils.TrackError("database", "invalid_password_hash")
		return 0, fmt.Errorf("password hashing error")
	}

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"password":             hashedPassword,
			"last_password_change": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "password_update_failed")
		return 0, fmt.Errorf("failed to update password: %w", err)
	}

	return result.ModifiedCount, nil
}

func (r *UserRepo) DeleteUserByID(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("delete", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.D{{Key: "user_id", Value: userID}})
	if err != nil {
		utils.TrackError("database", "user_deletion_failed")
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *UserRepo) Enable2FAWithRecoveryCodes(ctx context.Context, userID, secret string, recoveryCodes []string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"two_factor_secret":  secret,
			"two_factor_enabled": true,
			"recovery_codes":     recoveryCodes,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "2fa_enable_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "user_not_found")
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) UpdateRecoveryCodes(ctx context.Context, userID string, codes []string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": bson.M{"recovery_codes": codes}}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "recovery_codes_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "user_not_found")
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepo) Disable2FA(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"two_factor_secret":  "",
			"two_factor_enabled": false,
			"recovery_codes":     nil,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "2fa_disable_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "user_not_found")
		return ErrUserNotFound
	}

	return nil
}
