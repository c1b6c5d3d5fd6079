package app

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/vibeflo/vibeflo/models"
	"github.com/zmb3/spotify/v2"
)

// HandleSpotifyAuth starts the account link flow. The state nonce lives in
// the cookie session until the callback returns.
func (app *Application) HandleSpotifyAuth(c echo.Context) error {
	state := uuid.NewString()

	if err := setSession(c, map[string]any{"spotify_state": state}); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.Redirect(http.StatusSeeOther, app.Authenticator.AuthURL(state))
}

func (app *Application) HandleSpotifyRedirect(c echo.Context) error {
	defer func() {
		if err := deleteFromSession(c, []string{"spotify_state"}); err != nil {
			c.Logger().Error(err)
		}
	}()

	state, err := getSessionValue(c, "spotify_state")
	if err != nil {
		return models.BadRequest("no link attempt in progress")
	}

	if c.QueryParam("state") != state {
		return models.BadRequest("%s", models.ErrStateMismatch.Error())
	}

	token, err := app.Authenticator.Token(c.Request().Context(), state, c.Request())
	if err != nil {
		c.Logger().Error(err)
		return models.BadRequest("spotify authorization failed")
	}

	if err := app.TokenStore.Save(c.Request().Context(), currentUserID(c), token); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "spotify account linked"})
}

func (app *Application) HandleSpotifyStatus(c echo.Context) error {
	linked, err := app.TokenStore.Exists(c.Request().Context(), currentUserID(c))
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.SpotifyStatusResponse{Linked: linked})
}

func (app *Application) HandleSpotifyUnlink(c echo.Context) error {
	if err := app.TokenStore.Delete(c.Request().Context(), currentUserID(c)); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "spotify account unlinked"})
}

// spotifyClient builds an API client from the stored token. Routes using it
// sit behind UpdateSpotifyTokenIfExpired, so the token is fresh.
func (app *Application) spotifyClient(c echo.Context) (*spotify.Client, error) {
	token, err := app.TokenStore.Get(c.Request().Context(), currentUserID(c))
	if err != nil {
		return nil, err
	}

	if token == nil {
		return nil, models.BadRequest("%s", models.ErrSpotifyNotLinked.Error())
	}

	return spotify.New(app.Authenticator.Client(c.Request().Context(), token)), nil
}

func (app *Application) HandleSpotifySearch(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return models.BadRequest("missing query parameter q")
	}

	var searchType spotify.SearchType = spotify.SearchTypeTrack
	switch c.QueryParam("type") {
	case "", "track":
	case "album":
		searchType = spotify.SearchTypeAlbum
	case "playlist":
		searchType = spotify.SearchTypePlaylist
	default:
		return models.BadRequest("type must be track, album or playlist")
	}

	client, err := app.spotifyClient(c)
	if err != nil {
		return err
	}

	limit := intQueryParam(c, "limit", 20, 50)

	result, err := client.Search(c.Request().Context(), query, searchType, spotify.Limit(limit))
	if err != nil {
		c.Logger().Error(err)
		return models.Internal("spotify search failed")
	}

	return c.JSON(http.StatusOK, result)
}

func (app *Application) HandleSpotifyPlaylists(c echo.Context) error {
	client, err := app.spotifyClient(c)
	if err != nil {
		return err
	}

	limit := intQueryParam(c, "limit", 20, 50)

	playlists, err := client.CurrentUsersPlaylists(c.Request().Context(), spotify.Limit(limit))
	if err != nil {
		c.Logger().Error(err)
		return models.Internal("failed to fetch spotify playlists")
	}

	return c.JSON(http.StatusOK, playlists)
}
