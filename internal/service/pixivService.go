package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/sakurairo-fans/anime-img-api/internal/database"
	"github.com/sakurairo-fans/anime-img-api/internal/entity"
	"github.com/sakurairo-fans/anime-img-api/internal/filter"
)

type PixivServiceImpl struct {
	repo          database.PixivRepository
	rawHost       string
	defaultMirror string
}

func NewPixivService(repo database.PixivRepository, rawHost, defaultMirror string) PixivService {
	return &PixivServiceImpl{
		repo:          repo,
		rawHost:       rawHost,
		defaultMirror: defaultMirror,
	}
}

func (s *PixivServiceImpl) RandomPixiv(ctx context.Context, f filter.Filters) (*entity.PixivResult, error) {
	img, err := s.repo.SampleOne(ctx, f)
	if err != nil {
		return nil, err
	}

	imgURL := pickURL(img, f.Size)
	if imgURL == "" {
		return nil, entity.ErrNoUsableURL
	}

	return &entity.PixivResult{
		ID:          img.ID,
		Tags:        img.Tags,
		Title:       img.Title,
		Description: img.Description,
		User:        img.User,
		UserID:      img.UserID,
		Width:       img.FullWidth,
		Height:      img.FullHeight,
		URL:         s.rewriteProxy(imgURL, f),
	}, nil
}

// pickURL prefers the explicitly requested size variant when the record has
// it, then falls back through original > regular > small > thumb.
func pickURL(img *entity.PixivImage, size string) string {
	byName := map[string]string{
		filter.SizeOriginal: img.Original,
		filter.SizeRegular:  img.Regular,
		filter.SizeSmall:    img.Small,
		filter.SizeThumb:    img.Thumb,
	}
	if u := byName[size]; u != "" {
		return u
	}

	for _, u := range []string{img.Original, img.Regular, img.Small, img.Thumb} {
		if u != "" {
			return u
		}
	}
	return ""
}

// rewriteProxy swaps the canonical image host for a mirror. A proxy value
// that parses as a URL contributes only its hostname; any other non-empty
// value is taken literally. A present-but-empty proxy parameter disables
// the rewrite, matching the historical behavior.
func (s *PixivServiceImpl) rewriteProxy(imgURL string, f filter.Filters) string {
	if f.ProxySet && f.Proxy == "" {
		return imgURL
	}

	target := s.defaultMirror
	if f.ProxySet {
		target = f.Proxy
		if u, err := url.Parse(f.Proxy); err == nil && u.Hostname() != "" {
			target = u.Hostname()
		}
	}

	return strings.Replace(imgURL, s.rawHost, target, 1)
}
