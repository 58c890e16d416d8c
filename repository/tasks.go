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

var ErrTaskNotFound = errors.New("task not found")

type TasksRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for tasks
func GetTasksRepo(client *mongo.Client) *TasksRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("TASKS_COLLECTION", "tasks")
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// notDeleted scopes a filter to live (non-trashed) tasks
func notDeleted(filter bson.M) bson.M {
	filter["deleted_at"] = bson.M{"$exists": false}
	return filter
}

// Add a new task (following the model) into the database
func (r *TasksRepo) CreateTask(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", "tasks")
	defer timer.ObserveDuration()

	if task.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	validTags, err := validateTags(task.Tags)
	if err != nil {
		return err
	}
	task.Tags = validTags

	_, err = r.MongoCollection.InsertOne(ctx, task)
	if err != nil {
		utils.TrackError("database", "task_creation_failed")
		return err
	}

	return nil
}

// Retrieves all live tasks based on the User ID
func (r *TasksRepo) GetUserTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	var tasks []*model.Task
	cursor, err := r.MongoCollection.Find(ctx, notDeleted(bson.M{"user_id": userID}))
	if err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		utils.TrackError("database", "task_decode_failed")
		return nil, err
	}
	return tasks, nil
}

// All encompassing update for a specific task (Name, Description, Complete status)
func (r *TasksRepo) UpdateTask(ctx context.Context, taskID string, userID string, updates *model.Task) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	validTags, err := validateTags(updates.Tags)
	if err != nil {
		return err
	}
	updates.Tags = validTags

	filter := notDeleted(bson.M{
		"_id":     taskID,
		"user_id": userID,
	})

	update := bson.M{
		"$set": bson.M{
			"task_name":        updates.TaskName,
			"task_description": updates.Description,
			"complete":         updates.Complete,
			"updated_at":       time.Now(),
			"tags":             updates.Tags,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return ErrTaskNotFound
	}

	return nil
}

// Toggles the complete status of a task
func (r *TasksRepo) ToggleTaskComplete(ctx context.Context, taskID string, userID string) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := notDeleted(bson.M{
		"_id":     taskID,
		"user_id": userID,
	})

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrTaskNotFound
		}
		utils.TrackError("database", "task_not_found")
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"complete":   !task.Complete,
			"updated_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return ErrTaskNotFound
	}

	return nil
}

// TrashTask soft-deletes a task into the trash
func (r *TasksRepo) TrashTask(ctx context.Context, taskID string, userID string) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := notDeleted(bson.M{
		"_id":     taskID,
		"user_id": userID,
	})

	update := bson.M{
		"$set": bson.M{
			"deleted_at": time.Now(),
			"updated_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_trash_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return ErrTaskNotFound
	}

	return nil
}

// RestoreTask clears the soft-delete marker on a trashed task
func (r *TasksRepo) RestoreTask(ctx context.Context, taskID string, userID string) error {
	timer := utils.TrackDBOperation("update", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":        taskID,
		"user_id":    userID,
		"deleted_at": bson.M{"$exists": true},
	}

	update := bson.M{
		"$unset": bson.M{"deleted_at": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "task_restore_failed")
		return err
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return ErrTaskNotFound
	}

	return nil
}

// GetTrashedTasks retrieves the user's soft-deleted tasks
func (r *TasksRepo) GetTrashedTasks(ctx context.Context, userID string) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"deleted_at": bson.M{"$exists": true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "deleted_at", Value: -1}})

	var tasks []*model.Task
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "task_trash_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// DeleteTask permanently removes a trashed task from the database
func (r *TasksRepo) DeleteTask(ctx context.Context, taskID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "tasks")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":        taskID,
		"user_id":    userID,
		"deleted_at": bson.M{"$exists": true},
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "task_deletion_failed")
		return err
	}

	if result.DeletedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return ErrTaskNotFound
	}

	return nil
}

// Counts the non-trashed number of tasks for a user for display in the UI
func (r *TasksRepo) CountAllTasks(ctx context.Context, userID string) (int, error) {
	count, err := r.MongoCollection.CountDocuments(ctx, notDeleted(bson.M{"user_id": userID}))
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Counts the number of pending tasks for a user for display in the UI
func (r *TasksRepo) PendingCount(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "pending_tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		notDeleted(bson.M{"user_id": userID, "complete": false}))
	if err != nil {
		utils.TrackError("database", "pending_task_count_failed")
		return 0, err
	}
	return int(count), nil
}

// Counts the number of completed tasks for a user for display in the UI
func (r *TasksRepo) CompletedCount(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "completed_tasks")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		notDeleted(bson.M{"user_id": userID, "complete": true}))
	if err != nil {
		utils.TrackError("database", "completed_task_count_failed")
		return 0, err
	}
	return int(count), nil
}

// helper functions

func validateTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	var validTags []string
	for _, tag := range tags {
		if tag != "" {
			validTags = append(validTags, tag)
		}
	}
	if len(validTags) > 5 {
		return nil, errors.New("cannot exceed 5 tags per task")
	}

	for _, tag := range validTags {
		if len(tag) > 20 {
			return nil, errors.New("tag cannot exceed 20 characters")
		}
	}

	return validTags, nil
}
