package repository

import (
	"context"
	"fmt"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FocusStatsRepo struct {
	MongoCollection *mongo.Collection
}

// Constructor function for FocusStatsRepo
func GetFocusStatsRepo(client *mongo.Client) *FocusStatsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("FOCUS_STATS_COLLECTION", "focus_stats")
	return &FocusStatsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// GetStats returns the user's cached statistics snapshot, or nil when
// none has been computed yet.
func (r *FocusStatsRepo) GetStats(ctx context.Context, userID string) (*model.FocusStats, error) {
	timer := utils.TrackDBOperation("find", "focus_stats")
	defer timer.ObserveDuration()

	var stats model.FocusStats
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&stats)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "focus_stats_fetch_failed")
		return nil, fmt.Errorf("failed to fetch focus stats: %w", err)
	}

	return &stats, nil
}

// UpsertStats replaces the user's snapshot whole. This is the only
// write path to the stats cache; the statistics engine owns it.
func (r *FocusStatsRepo) UpsertStats(ctx context.Context, stats *model.FocusStats) error {
	timer := utils.TrackDBOperation("upsert", "focus_stats")
	defer timer.ObserveDuration()

	if stats.UserID == "" {
		utils.TrackError("database", "invalid_focus_stats_data")
		return fmt.Errorf("user ID is required")
	}

	filter := bson.M{"user_id": stats.UserID}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.MongoCollection.ReplaceOne(ctx, filter, stats, opts); err != nil {
		utils.TrackError("database", "focus_stats_upsert_failed")
		return fmt.Errorf("failed to upsert focus stats: %w", err)
	}

	return nil
}
