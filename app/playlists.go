package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

func (app *Application) HandleCreatePlaylist(c echo.Context) error {
	var req models.CreatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	playlist := models.PlaylistDBModel{
		PlaylistID:  uuid.NewString(),
		UserID:      currentUserID(c),
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		CreatedAt:   time.Now(),
	}

	if err := app.PlaylistStore.Create(playlist); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusCreated, playlist)
}

func (app *Application) HandleListMyPlaylists(c echo.Context) error {
	playlists, err := app.PlaylistStore.GetMany("user_id = ?", currentUserID(c))
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, playlists)
}

// readablePlaylist loads the playlist and checks that the caller may read
// it: owners always can, everyone else only when it is public.
func (app *Application) readablePlaylist(c echo.Context, playlistID string) (*models.PlaylistDBModel, error) {
	playlist, err := app.PlaylistStore.GetOne("playlist_id = ?", playlistID)
	if err != nil {
		return nil, err
	}

	if playlist.UserID != currentUserID(c) && !playlist.IsPublic {
		return nil, models.NotFound("playlist not found")
	}

	return playlist, nil
}

// ownedPlaylist is readablePlaylist restricted to the owner, for writes.
func (app *Application) ownedPlaylist(c echo.Context, playlistID string) (*models.PlaylistDBModel, error) {
	playlist, err := app.PlaylistStore.GetOne("playlist_id = ?", playlistID)
	if err != nil {
		return nil, err
	}

	if playlist.UserID != currentUserID(c) {
		return nil, models.Forbidden("not your playlist")
	}

	return playlist, nil
}

func (app *Application) HandleGetPlaylist(c echo.Context) error {
	playlist, err := app.readablePlaylist(c, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, playlist)
}

func (app *Application) HandleUpdatePlaylist(c echo.Context) error {
	var req models.UpdatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	playlist, err := app.ownedPlaylist(c, c.Param("id"))
	if err != nil {
		return err
	}

	updateMap := map[string]any{}
	if req.Name != nil {
		updateMap["name"] = *req.Name
	}
	if req.Description != nil {
		updateMap["description"] = *req.Description
	}
	if req.IsPublic != nil {
		updateMap["is_public"] = *req.IsPublic
	}

	if len(updateMap) == 0 {
		return models.BadRequest("nothing to update")
	}

	if err := app.PlaylistStore.Update(updateMap, "playlist_id = ?", playlist.PlaylistID); err != nil {
		c.Logger().Error(err)
		return err
	}

	updated, err := app.PlaylistStore.GetOne("playlist_id = ?", playlist.PlaylistID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (app *Application) HandleDeletePlaylist(c echo.Context) error {
	playlist, err := app.ownedPlaylist(c, c.Param("id"))
	if err != nil {
		return err
	}

	err = app.PlaylistStore.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("playlist_songs").Where("playlist_id = ?", playlist.PlaylistID).Delete(nil).Error; err != nil {
			return err
		}

		return tx.Table("playlists").Where("playlist_id = ?", playlist.PlaylistID).Delete(nil).Error
	})
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "playlist deleted"})
}

func (app *Application) HandleAddSong(c echo.Context) error {
	var req models.AddSongRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	playlist, err := app.ownedPlaylist(c, c.Param("id"))
	if err != nil {
		return err
	}

	song := models.SongDBModel{
		SongID:          uuid.NewString(),
		Title:           req.Title,
		Artist:          req.Artist,
		URL:             req.URL,
		ImageURL:        req.ImageURL,
		DurationSeconds: req.DurationSeconds,
	}

	if err := app.SongStore.Create(song); err != nil {
		c.Logger().Error(err)
		return err
	}

	position, err := app.PlaylistSongStore.NextPosition(playlist.PlaylistID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.PlaylistSongStore.Create(models.PlaylistSongDBModel{
		PlaylistID: playlist.PlaylistID,
		SongID:     song.SongID,
		Position:   position,
	}); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusCreated, models.PlaylistSongResponse{
		Position: position,
		Song:     song,
	})
}

func (app *Application) HandleRemoveSong(c echo.Context) error {
	playlist, err := app.ownedPlaylist(c, c.Param("id"))
	if err != nil {
		return err
	}

	songID := c.Param("songID")

	if err := app.PlaylistSongStore.Delete(
		"playlist_id = ? AND song_id = ?", playlist.PlaylistID, songID,
	); err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.PlaylistSongStore.Compact(playlist.PlaylistID); err != nil {
		c.Logger().Error(err)
		return err
	}

	// Drop the song row once no playlist references it anymore.
	refs, err := app.PlaylistSongStore.CountForSong(songID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if refs == 0 {
		if err := app.SongStore.Delete("song_id = ?", songID); err != nil {
			c.Logger().Error(err)
			return err
		}
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "song removed"})
}

func (app *Application) HandleReorderSongs(c echo.Context) error {
	var req models.ReorderSongsRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	playlist, err := app.ownedPlaylist(c, c.Param("id"))
	if err != nil {
		return err
	}

	entries, err := app.PlaylistSongStore.GetManyOrdered(playlist.PlaylistID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if len(entries) != len(req.SongIDs) {
		return models.BadRequest("song list does not match playlist contents")
	}

	current := make(map[string]bool, len(entries))
	for _, entry := range entries {
		current[entry.SongID] = true
	}

	for _, songID := range req.SongIDs {
		if !current[songID] {
			return models.BadRequest("song list does not match playlist contents")
		}
		delete(current, songID)
	}

	if err := app.PlaylistSongStore.Reorder(playlist.PlaylistID, req.SongIDs); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "playlist reordered"})
}

func (app *Application) HandleListPlaylistSongs(c echo.Context) error {
	playlist, err := app.readablePlaylist(c, c.Param("id"))
	if err != nil {
		return err
	}

	entries, err := app.PlaylistSongStore.GetManyOrdered(playlist.PlaylistID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if len(entries) == 0 {
		return c.JSON(http.StatusOK, []models.PlaylistSongResponse{})
	}

	songIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		songIDs = append(songIDs, entry.SongID)
	}

	songs, err := app.SongStore.GetByIDs(songIDs)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	byID := make(map[string]models.SongDBModel, len(songs))
	for _, song := range songs {
		byID[song.SongID] = song
	}

	response := make([]models.PlaylistSongResponse, 0, len(entries))
	for _, entry := range entries {
		song, ok := byID[entry.SongID]
		if !ok {
			continue
		}

		response = append(response, models.PlaylistSongResponse{
			Position: entry.Position,
			Song:     song,
		})
	}

	return c.JSON(http.StatusOK, response)
}
