package service

import (
	"context"

	"github.com/sakurairo-fans/anime-img-api/internal/entity"
	"github.com/sakurairo-fans/anime-img-api/internal/filter"
)

// ImageService serves the relational (v1) endpoint: weighted bucket choice,
// targeted or filtered selection, url-or-meta projection.
type ImageService interface {
	RandomImage(ctx context.Context, f filter.Filters) ([]entity.ImageRecord, error)
}

// PixivService serves the document (v2) endpoint: sampled record, URL size
// variant choice and proxy-domain rewriting.
type PixivService interface {
	RandomPixiv(ctx context.Context, f filter.Filters) (*entity.PixivResult, error)
}
