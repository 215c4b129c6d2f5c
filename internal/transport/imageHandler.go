package transport

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/sakurairo-fans/anime-img-api/internal/entity"
	"github.com/sakurairo-fans/anime-img-api/internal/filter"
	"github.com/sakurairo-fans/anime-img-api/internal/service"

	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	images service.ImageService
	pixiv  service.PixivService

	// debug surfaces backend error text instead of the generic message
	debug bool
}

func NewImageHandler(images service.ImageService, pixiv service.PixivService, debug bool) *ImageHandler {
	return &ImageHandler{
		images: images,
		pixiv:  pixiv,
		debug:  debug,
	}
}

// RandomV1 answers the relational endpoint: 302 to a random matching image,
// or its row as JSON when json=1.
func (h *ImageHandler) RandomV1(c *gin.Context) {
	f := filter.Parse(c.Request.URL.Query())

	records, err := h.images.RandomImage(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, entity.ErrSelectionUnavailable) {
			c.String(http.StatusBadGateway, "the request failed with error code 001, contact the API admin")
			return
		}
		msg := "the SQL query failed, check your parameters first and contact the API admin if they look right"
		if h.debug {
			msg = err.Error()
		}
		c.String(http.StatusBadRequest, msg)
		return
	}

	if len(records) == 0 {
		c.String(http.StatusNotFound, "no image matched the given filters")
		return
	}

	if f.JSON {
		if len(records) == 1 {
			c.JSON(http.StatusOK, records[0])
		} else {
			c.JSON(http.StatusOK, records)
		}
		return
	}

	c.Redirect(http.StatusFound, records[rand.Intn(len(records))].URL)
}

// RandomV2 answers the document endpoint, always as JSON.
func (h *ImageHandler) RandomV2(c *gin.Context) {
	f := filter.Parse(c.Request.URL.Query())

	result, err := h.pixiv.RandomPixiv(c.Request.Context(), f)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrSessionFailed):
			c.String(http.StatusBadGateway, "failed to log in to the image store, contact the API admin")
		case errors.Is(err, entity.ErrImageNotFound):
			c.String(http.StatusNotFound, "the query returned no result")
		case errors.Is(err, entity.ErrNoUsableURL):
			c.String(http.StatusNotFound, "the record has no usable image URL")
		default:
			msg := "the query failed"
			if h.debug {
				msg = err.Error()
			}
			c.String(http.StatusBadGateway, msg)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
