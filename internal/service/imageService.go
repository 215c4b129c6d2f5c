package service

import (
	"context"
	"math/rand"

	"github.com/sakurairo-fans/anime-img-api/internal/database"
	"github.com/sakurairo-fans/anime-img-api/internal/entity"
	"github.com/sakurairo-fans/anime-img-api/internal/filter"
	"github.com/sakurairo-fans/anime-img-api/internal/picker"
)

type ImageServiceImpl struct {
	repo       database.AnimeRepository
	general    []entity.Bucket
	restricted []entity.Bucket
}

func NewImageService(repo database.AnimeRepository, general, restricted []entity.Bucket) ImageService {
	return &ImageServiceImpl{
		repo:       repo,
		general:    general,
		restricted: restricted,
	}
}

func (s *ImageServiceImpl) RandomImage(ctx context.Context, f filter.Filters) ([]entity.ImageRecord, error) {
	set := s.general
	if f.R18 {
		set = s.restricted
	}

	bucket, err := picker.Pick(set)
	if err != nil {
		return nil, err
	}

	// Without predicate clauses the identity index answers the query;
	// no need for a full random-ordered scan.
	if f.Empty() {
		return s.repo.ByIDs(ctx, bucket, randomIDs(bucket.Count, f.Count), f.JSON)
	}

	return s.repo.RandomMatch(ctx, bucket, f, f.Count, f.JSON)
}

// randomIDs draws n distinct identities in [1, max], clamped to the bucket
// size so a huge count cannot loop forever.
func randomIDs(max, n int) []int {
	if n > max {
		n = max
	}

	ids := make([]int, 0, n)
	seen := make(map[int]bool, n)
	for len(ids) < n {
		id := rand.Intn(max) + 1
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
