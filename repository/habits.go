package repository

import (
	"context"
	"errors"
	"main/model"
	"main/utils"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrHabitNotFound = errors.New("habit not found")

type HabitsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for habits
func GetHabitsRepo(client *mongo.Client) *HabitsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("HABITS_COLLECTION", "habits")
	return &HabitsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreateHabit adds a new habit definition
func (r *HabitsRepo) CreateHabit(ctx context.Context, habit *model.Habit) error {
	timer := utils.TrackDBOperation("insert", "habits")
	defer timer.ObserveDuration()

	if habit.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, habit)
	if err != nil {
		utils.TrackError("database", "habit_creation_failed")
		return err
	}
	return nil
}

// GetUserHabits retrieves all habits for a user, newest first
func (r *HabitsRepo) GetUserHabits(ctx context.Context, userID string, includeArchived bool) ([]*model.Habit, error) {
	timer := utils.TrackDBOperation("find", "habits")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	if !includeArchived {
		filter["is_archived"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var habits []*model.Habit
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "habit_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// UpdateHabit updates the editable fields of a habit
func (r *HabitsRepo) UpdateHabit(ctx context.Context, habitID string, userID string, updates *model.Habit) error {
	timer := utils.TrackDBOperation("update", "habits")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     habitID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"name":        updates.Name,
			"description": updates.Description,
			"frequency":   updates.Frequency,
			"tags":        updates.Tags,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "habit_update_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "habit_not_found")
		return ErrHabitNotFound
	}
	return nil
}

// SetHabitArchived archives or unarchives a habit
func (r *HabitsRepo) SetHabitArchived(ctx context.Context, habitID string, userID string, archived bool) error {
	timer := utils.TrackDBOperation("update", "habits")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     habitID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"is_archived": archived,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "habit_update_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "habit_not_found")
		return ErrHabitNotFound
	}
	return nil
}

// DeleteHabit removes a habit definition
func (r *HabitsRepo) DeleteHabit(ctx context.Context, habitID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "habits")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     habitID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "habit_deletion_failed")
		return err
	}

	if result.DeletedCount == 0 {
		utils.TrackError("database", "habit_not_found")
		return ErrHabitNotFound
	}
	return nil
}
