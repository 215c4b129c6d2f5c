package mongodb

import (
	"context"
	"fmt"

	"github.com/sakurairo-fans/anime-img-api/internal/database"
	"github.com/sakurairo-fans/anime-img-api/internal/entity"
	"github.com/sakurairo-fans/anime-img-api/internal/filter"
	"github.com/sakurairo-fans/anime-img-api/pkg/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PixivRepository struct {
	sessions   *mongodb.Provider
	database   string
	collection string
}

func NewPixivRepository(sessions *mongodb.Provider, db, collection string) database.PixivRepository {
	return &PixivRepository{
		sessions:   sessions,
		database:   db,
		collection: collection,
	}
}

func (r *PixivRepository) SampleOne(ctx context.Context, f filter.Filters) (*entity.PixivImage, error) {
	client, err := r.sessions.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrSessionFailed, err)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: buildMatch(f)}},
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}

	cursor, err := client.Database(r.database).Collection(r.collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrQueryFailed, err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrQueryFailed, err)
		}
		return nil, entity.ErrImageNotFound
	}

	var img entity.PixivImage
	if err := cursor.Decode(&img); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrQueryFailed, err)
	}
	return &img, nil
}

// buildMatch compiles the shared filter vocabulary into a $match document.
// All entries AND together; an empty document matches everything.
func buildMatch(f filter.Filters) bson.M {
	match := bson.M{}

	if len(f.Tags) > 0 {
		match["tags"] = bson.M{"$all": f.Tags}
	}

	flags := []struct {
		field string
		flag  filter.Flag
	}{
		{"landscape", f.Landscape},
		{"near_square", f.NearSquare},
		{"big_size", f.BigSize},
		{"mid_size", f.MidSize},
		{"small_size", f.SmallSize},
		{"big_res", f.BigRes},
		{"mid_res", f.MidRes},
		{"small_res", f.SmallRes},
	}
	for _, entry := range flags {
		if entry.flag != filter.Absent {
			match[entry.field] = entry.flag.Bool()
		}
	}

	return match
}
