package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrSessionRecordNotFound = errors.New("session not found")

// SessionRepo stores device login sessions (one per browser/device),
// not focus sessions.
type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(client *mongo.Client) *SessionRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("SESSIONS_COLLECTION", "sessions")
	return &SessionRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if session == nil || session.SessionID == "" || session.UserID == "" {
		utils.TrackError("database", "invalid_session_data")
		return fmt.Errorf("invalid session data: missing required fields")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session in database: %w", err)
	}

	return nil
}

func (r *SessionRepo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "session_fetch_failed")
		return nil, fmt.Errorf("failed to fetch session from database: %w", err)
	}

	return &session, nil
}

func (r *SessionRepo) UpdateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	filter := bson.M{"session_id": session.SessionID}
	result, err := r.MongoCollection.ReplaceOne(ctx, filter, session)
	if err != nil {
		utils.TrackError("database", "session_update_failed")
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrSessionRecordNotFound
	}

	return nil
}

func (r *SessionRepo) GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "session_list_failed")
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode active sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastActivityAt.After(sessions[j].LastActivityAt)
	})

	return sessions, nil
}

func (r *SessionRepo) CountActiveSessions(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "sessions")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		utils.TrackError("database", "session_count_failed")
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return int(count), nil
}

// EndLeastActiveSession deactivates the session with the oldest
// activity, making room under the per-user session cap.
func (r *SessionRepo) EndLeastActiveSession(ctx context.Context, userID string) error {
	sessions, err := r.GetUserActiveSessions(ctx, userID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}

	leastActive := sessions[len(sessions)-1]
	leastActive.IsActive = false
	return r.UpdateSession(ctx, leastActive)
}

func (r *SessionRepo) EndAllUserSessions(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{"is_active": false}}
	if _, err := r.MongoCollection.UpdateMany(ctx, bson.M{"user_id": userID}, update); err != nil {
		utils.TrackError("database", "session_end_all_failed")
		return fmt.Errorf("failed to end user sessions: %w", err)
	}
	return nil
}
