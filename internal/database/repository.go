package database

import (
	"context"

	"github.com/sakurairo-fans/anime-img-api/internal/entity"
	"github.com/sakurairo-fans/anime-img-api/internal/filter"
)

// AnimeRepository is the relational backend. withMeta widens the projection
// from url-only to the full row used by the JSON response shape.
type AnimeRepository interface {
	// ByIDs fetches rows by their identity column, the targeted fast path.
	ByIDs(ctx context.Context, bucket entity.Bucket, ids []int, withMeta bool) ([]entity.ImageRecord, error)

	// RandomMatch applies the compiled predicate, orders randomly and caps
	// the result to count rows.
	RandomMatch(ctx context.Context, bucket entity.Bucket, f filter.Filters, count int, withMeta bool) ([]entity.ImageRecord, error)
}

// PixivRepository is the document backend: one $match + $sample aggregation
// returning zero or one record.
type PixivRepository interface {
	SampleOne(ctx context.Context, f filter.Filters) (*entity.PixivImage, error)
}
