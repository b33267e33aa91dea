package schedule

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusPatch carries a staff status update; optional fields are applied only
// when non-empty.
type StatusPatch struct {
	Status     string
	ActualDate string
	ActualTime string
	Notes      string
}

type Repository interface {
	Create(ctx context.Context, req Request) error
	CountActiveSlot(ctx context.Context, date, timeStr string) (int64, error)
	BookedTimes(ctx context.Context, date string) ([]string, error)
	List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Request, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	UpdateStatus(ctx context.Context, id string, patch StatusPatch, now time.Time) (Request, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, req Request) error {
	_, err := r.col.InsertOne(ctx, req)
	return err
}

func (r *MongoRepository) CountActiveSlot(ctx context.Context, date, timeStr string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{
		"preferredDate": date,
		"preferredTime": timeStr,
		"status":        bson.M{"$ne": StatusCancelled},
	})
}

func (r *MongoRepository) BookedTimes(ctx context.Context, date string) ([]string, error) {
	values, err := r.col.Distinct(ctx, "preferredTime", bson.M{
		"preferredDate": date,
		"status":        bson.M{"$ne": StatusCancelled},
	})
	if err != nil {
		return nil, err
	}

	times := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			times = append(times, s)
		}
	}
	sort.Strings(times)
	return times, nil
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Request, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.col.Find(ctx, r.filterToBSON(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Request, 0)
	for cursor.Next(ctx) {
		var req Request
		if err := cursor.Decode(&req); err != nil {
			return nil, err
		}
		items = append(items, req)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	return r.col.CountDocuments(ctx, r.filterToBSON(filter))
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id string, patch StatusPatch, now time.Time) (Request, error) {
	set := bson.M{
		"status":    patch.Status,
		"updatedAt": now,
	}
	if patch.ActualDate != "" {
		set["actualDate"] = patch.ActualDate
	}
	if patch.ActualTime != "" {
		set["actualTime"] = patch.ActualTime
	}
	if patch.Notes != "" {
		set["notes"] = patch.Notes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Request
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		return Request{}, err
	}
	return updated, nil
}

func (r *MongoRepository) filterToBSON(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Date != "" {
		query["preferredDate"] = filter.Date
	}
	return query
}
