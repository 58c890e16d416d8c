package repository

import (
	"context"
	"fmt"
	"log"
	"os"

	"main/model"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FocusSessionsRepo struct {
	MongoCollection *mongo.Collection
}

// Constructor function for FocusSessionsRepo
func GetFocusSessionsRepo(client *mongo.Client) *FocusSessionsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("FOCUS_SESSIONS_COLLECTION", "focus_sessions")
	return &FocusSessionsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

var nonTerminalStatuses = bson.A{model.FocusActive, model.FocusPaused}

// FindActiveSession returns the user's single ACTIVE or PAUSED session,
// or nil. Reads go through the Redis cache when it is configured.
func (r *FocusSessionsRepo) FindActiveSession(ctx context.Context, userID string) (*model.FocusSession, error) {
	if services.GlobalFocusCache != nil {
		if session, err := services.GlobalFocusCache.GetActiveSession(userID); err == nil && session != nil {
			utils.TrackCacheOperation("focus_active", true)
			return session, nil
		}
		utils.TrackCacheOperation("focus_active", false)
	}

	timer := utils.TrackDBOperation("find", "focus_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"status":     bson.M{"$in": nonTerminalStatuses},
		"deleted_at": bson.M{"$exists": false},
	}

	var session model.FocusSession
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "focus_session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch active focus session: %w", err)
	}

	if services.GlobalFocusCache != nil {
		if err := services.GlobalFocusCache.SetActiveSession(&session); err != nil {
			utils.TrackError("cache", "focus_cache_set_failed")
			log.Printf("Warning: Failed to cache focus session: %v", err)
		}
	}

	return &session, nil
}

// FindSession returns a non-deleted session owned by the user.
// Missing, foreign and trashed sessions are indistinguishable.
func (r *FocusSessionsRepo) FindSession(ctx context.Context, sessionID, userID string) (*model.FocusSession, error) {
	timer := utils.TrackDBOperation("find", "focus_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":        sessionID,
		"user_id":    userID,
		"deleted_at": bson.M{"$exists": false},
	}

	var session model.FocusSession
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, model.ErrSessionNotFound
		}
		utils.TrackError("database", "focus_session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch focus session: %w", err)
	}

	return &session, nil
}

// CreateSession inserts a new session. The partial unique index on
// non-terminal sessions (see SetupIndexes) turns a lost race into a
// duplicate-key error instead of a second active session.
func (r *FocusSessionsRepo) CreateSession(ctx context.Context, session *model.FocusSession) error {
	timer := utils.TrackDBOperation("insert", "focus_sessions")
	defer timer.ObserveDuration()

	if session.UserID == "" {
		utils.TrackError("database", "invalid_focus_session_data")
		return fmt.Errorf("user ID is required")
	}

	session.InProgress = !session.Status.IsTerminal()
	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrSessionConflict
		}
		utils.TrackError("database", "focus_session_creation_failed")
		return fmt.Errorf("failed to create focus session: %w", err)
	}

	r.invalidateCache(session.UserID)
	return nil
}

// UpdateSession replaces a session document scoped to its owner.
func (r *FocusSessionsRepo) UpdateSession(ctx context.Context, session *model.FocusSession) error {
	timer := utils.TrackDBOperation("update", "focus_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     session.SessionID,
		"user_id": session.UserID,
	}

	session.InProgress = !session.Status.IsTerminal()
	result, err := r.MongoCollection.ReplaceOne(ctx, filter, session)
	if err != nil {
		utils.TrackError("database", "focus_session_update_failed")
		return fmt.Errorf("failed to update focus session: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrSessionNotFound
	}

	r.invalidateCache(session.UserID)
	return nil
}

// ListCompletedSessions returns the user's completed, non-deleted
// sessions. The statistics engine recomputes from this full set.
func (r *FocusSessionsRepo) ListCompletedSessions(ctx context.Context, userID string) ([]*model.FocusSession, error) {
	timer := utils.TrackDBOperation("find", "focus_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"status":     model.FocusCompleted,
		"deleted_at": bson.M{"$exists": false},
	}
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "focus_session_list_failed")
		return nil, fmt.Errorf("failed to list completed focus sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.FocusSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode completed focus sessions: %w", err)
	}
	return sessions, nil
}

// ListTrashedSessions returns the user's soft-deleted sessions.
func (r *FocusSessionsRepo) ListTrashedSessions(ctx context.Context, userID string) ([]*model.FocusSession, error) {
	timer := utils.TrackDBOperation("find", "focus_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"deleted_at": bson.M{"$exists": true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "deleted_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "focus_trash_list_failed")
		return nil, fmt.Errorf("failed to list trashed focus sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.FocusSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode trashed focus sessions: %w", err)
	}
	return sessions, nil
}

// PurgeSession permanently removes a trashed session.
func (r *FocusSessionsRepo) PurgeSession(ctx context.Context, sessionID, userID string) error {
	timer := utils.TrackDBOperation("delete", "focus_sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":        sessionID,
		"user_id":    userID,
		"deleted_at": bson.M{"$exists": true},
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "focus_session_purge_failed")
		return fmt.Errorf("failed to purge focus session: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrSessionNotFound
	}
	return nil
}

func (r *FocusSessionsRepo) invalidateCache(userID string) {
	if services.GlobalFocusCache == nil {
		return
	}
	if err := services.GlobalFocusCache.InvalidateActiveSession(userID); err != nil {
		utils.TrackError("cache", "focus_cache_invalidate_failed")
		log.Printf("Warning: Failed to invalidate focus session cache: %v", err)
	}
}
