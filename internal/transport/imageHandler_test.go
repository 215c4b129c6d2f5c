package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sakurairo-fans/anime-img-api/internal/entity"
	"github.com/sakurairo-fans/anime-img-api/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageService struct {
	records []entity.ImageRecord
	err     error
	filters filter.Filters
}

func (s *fakeImageService) RandomImage(_ context.Context, f filter.Filters) ([]entity.ImageRecord, error) {
	s.filters = f
	return s.records, s.err
}

type fakePixivService struct {
	result *entity.PixivResult
	err    error
}

func (s *fakePixivService) RandomPixiv(_ context.Context, _ filter.Filters) (*entity.PixivResult, error) {
	return s.result, s.err
}

func newRouter(images *fakeImageService, pixiv *fakePixivService, debug bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return InitRoutes(NewImageHandler(images, pixiv, debug))
}

func do(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestPreflight(t *testing.T) {
	router := newRouter(&fakeImageService{}, &fakePixivService{}, false)

	w := do(router, http.MethodOptions, "/api/v1/setu")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, w.Body.String())
}

func TestFaviconProbe(t *testing.T) {
	router := newRouter(&fakeImageService{}, &fakePixivService{}, false)

	w := do(router, http.MethodGet, "/favicon.ico")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", w.Body.String())
}

func TestRandomV1Redirect(t *testing.T) {
	images := &fakeImageService{records: []entity.ImageRecord{{URL: "https://img.test/a.png"}}}
	router := newRouter(images, &fakePixivService{}, false)

	w := do(router, http.MethodGet, "/api/v1/setu")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://img.test/a.png", w.Header().Get("Location"))
	// CORS must survive on the redirect so the theme can preload covers
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRandomV1JSON(t *testing.T) {
	images := &fakeImageService{records: []entity.ImageRecord{{
		URL:       "https://img.test/a.png",
		Height:    1080,
		Width:     1920,
		Ratio:     1.78,
		Landscape: true,
	}}}
	router := newRouter(images, &fakePixivService{}, false)

	w := do(router, http.MethodGet, "/api/v1/setu?json=1")

	require.Equal(t, http.StatusOK, w.Code)
	var got entity.ImageRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, images.records[0], got)
	assert.True(t, images.filters.JSON)
}

func TestRandomV1JSONMultipleRecords(t *testing.T) {
	images := &fakeImageService{records: []entity.ImageRecord{
		{URL: "https://img.test/a.png"},
		{URL: "https://img.test/b.png"},
	}}
	router := newRouter(images, &fakePixivService{}, false)

	w := do(router, http.MethodGet, "/api/v1/setu?json=1&count=2")

	require.Equal(t, http.StatusOK, w.Code)
	var got []entity.ImageRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestRandomV1NotFound(t *testing.T) {
	router := newRouter(&fakeImageService{}, &fakePixivService{}, false)

	w := do(router, http.MethodGet, "/api/v1/setu?landscape=1")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRandomV1SelectionUnavailable(t *testing.T) {
	images := &fakeImageService{err: entity.ErrSelectionUnavailable}
	router := newRouter(images, &fakePixivService{}, false)

	w := do(router, http.MethodGet, "/api/v1/setu")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "001")
}

func TestRandomV1QueryFailure(t *testing.T) {
	images := &fakeImageService{err: entity.ErrQueryFailed}

	t.Run("generic message", func(t *testing.T) {
		router := newRouter(images, &fakePixivService{}, false)
		w := do(router, http.MethodGet, "/api/v1/setu")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotContains(t, w.Body.String(), entity.ErrQueryFailed.Error())
	})

	t.Run("debug surfaces the error", func(t *testing.T) {
		router := newRouter(images, &fakePixivService{}, true)
		w := do(router, http.MethodGet, "/api/v1/setu")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), entity.ErrQueryFailed.Error())
	})
}

func TestRandomV2Success(t *testing.T) {
	pixiv := &fakePixivService{result: &entity.PixivResult{
		ID:  1234,
		URL: "https://i.pixiv.re/img-original/img/0001.png",
	}}
	router := newRouter(&fakeImageService{}, pixiv, false)

	w := do(router, http.MethodGet, "/api/v2/setu")

	require.Equal(t, http.StatusOK, w.Code)
	var got entity.PixivResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1234), got.ID)
	assert.Equal(t, "https://i.pixiv.re/img-original/img/0001.png", got.URL)
}

func TestRandomV2Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"session failure", entity.ErrSessionFailed, http.StatusBadGateway},
		{"empty result", entity.ErrImageNotFound, http.StatusNotFound},
		{"no usable url", entity.ErrNoUsableURL, http.StatusNotFound},
		{"query failure", entity.ErrQueryFailed, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(&fakeImageService{}, &fakePixivService{err: tt.err}, false)
			w := do(router, http.MethodGet, "/api/v2/setu")
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestHealth(t *testing.T) {
	router := newRouter(&fakeImageService{}, &fakePixivService{}, false)

	w := do(router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
}
