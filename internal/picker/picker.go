// Weighted random choice among the configured image buckets.
package picker

import (
	"math/rand"

	"github.com/sakurairo-fans/anime-img-api/internal/entity"
)

// Pick returns one bucket with probability proportional to its item count.
// An empty list or a list whose counts sum to zero yields
// entity.ErrSelectionUnavailable.
func Pick(buckets []entity.Bucket) (entity.Bucket, error) {
	if len(buckets) == 0 {
		return entity.Bucket{}, entity.ErrSelectionUnavailable
	}

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	if total <= 0 {
		return entity.Bucket{}, entity.ErrSelectionUnavailable
	}

	r := rand.Float64() * float64(total)
	cumulative := 0.0
	for _, b := range buckets {
		cumulative += float64(b.Count)
		if r < cumulative {
			return b, nil
		}
	}

	// float accumulation can land r just past the final cumulative sum
	return buckets[len(buckets)-1], nil
}
