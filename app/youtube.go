package app

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibeflo/vibeflo/models"
)

// HandleYouTubeSearch proxies video search so the client never sees the
// API key.
func (app *Application) HandleYouTubeSearch(c echo.Context) error {
	if app.YouTube == nil {
		return models.NewAppError(http.StatusServiceUnavailable, "youtube search is not configured")
	}

	query := c.QueryParam("q")
	if query == "" {
		return models.BadRequest("missing query parameter q")
	}

	limit := intQueryParam(c, "limit", 10, 25)

	call := app.YouTube.Search.List([]string{"id", "snippet"}).
		Q(query).
		MaxResults(int64(limit)).
		Type("video").
		Order("relevance").
		Context(c.Request().Context())

	response, err := call.Do()
	if err != nil {
		c.Logger().Error(err)
		return models.Internal("youtube search failed")
	}

	results := make([]models.YouTubeSearchResult, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.Kind != "youtube#video" || item.Snippet == nil {
			continue
		}

		result := models.YouTubeSearchResult{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
		}

		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			result.ThumbnailURL = item.Snippet.Thumbnails.Medium.Url
		}

		results = append(results, result)
	}

	return c.JSON(http.StatusOK, results)
}
