package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	focusSessionsCollection := db.Collection("focus_sessions")
	focusStatsCollection := db.Collection("focus_stats")
	tasksCollection := db.Collection("tasks")
	habitsCollection := db.Collection("habits")
	usersCollection := db.Collection("users")
	sessionsCollection := db.Collection("sessions")

	focusSessionIndexes := []mongo.IndexModel{
		// At most one non-terminal session per user. Serializes the
		// start race at the database rather than trusting query-time
		// filtering alone. The filter matches on the in_progress
		// marker rather than a status $in so the partial index works
		// on MongoDB versions before 6.1.
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("one_active_session_per_user").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"in_progress": true,
				}),
		},
		// Stats recompute scan: completed sessions by user and day
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "status", Value: 1},
				{Key: "started_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_completed_sessions"),
		},
		// Trash listing
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "deleted_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_trashed_sessions"),
		},
	}

	focusStatsIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("stats_user_unique").
				SetUnique(true),
		},
	}

	taskIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_tasks_date").
				SetUnique(false),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "complete", Value: 1},
				{Key: "due_date", Value: 1},
			},
			Options: options.Index().
				SetName("user_pending_tasks"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "tags", Value: 1},
			},
			Options: options.Index().
				SetName("user_task_tags"),
		},
	}

	habitIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_archived", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("user_habits"),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("user_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName("username_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().
				SetName("session_id_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().
				SetName("user_active_sessions"),
		},
		// Expired device sessions age out on their own
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("session_expiry_ttl").
				SetExpireAfterSeconds(0),
		},
	}

	for _, spec := range []struct {
		coll    *mongo.Collection
		indexes []mongo.IndexModel
	}{
		{focusSessionsCollection, focusSessionIndexes},
		{focusStatsCollection, focusStatsIndexes},
		{tasksCollection, taskIndexes},
		{habitsCollection, habitIndexes},
		{usersCollection, userIndexes},
		{sessionsCollection, sessionIndexes},
	} {
		if _, err := spec.coll.Indexes().CreateMany(ctx, spec.indexes); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", spec.coll.Name(), err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
