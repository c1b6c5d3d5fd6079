package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/vibeflo/vibeflo/models"
)

func createPlaylist(t *testing.T, app *Application, userID, name string, public bool) *models.PlaylistDBModel {
	t.Helper()

	c, rec := newContext(t, http.MethodPost, "/api/playlists", models.CreatePlaylistRequest{
		Name:     name,
		IsPublic: public,
	}, userID)
	if err := app.HandleCreatePlaylist(c); err != nil {
		t.Fatalf("create playlist failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var playlist models.PlaylistDBModel
	if err := json.Unmarshal(rec.Body.Bytes(), &playlist); err != nil {
		t.Fatalf("failed to decode playlist: %v", err)
	}

	return &playlist
}

func addSong(t *testing.T, app *Application, userID, playlistID, title, url string) models.PlaylistSongResponse {
	t.Helper()

	c, rec := newContext(t, http.MethodPost, "/api/playlists/"+playlistID+"/songs", models.AddSongRequest{
		Title: title,
		URL:   url,
	}, userID)
	c.SetParamNames("id")
	c.SetParamValues(playlistID)
	if err := app.HandleAddSong(c); err != nil {
		t.Fatalf("add song failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var entry models.PlaylistSongResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode song entry: %v", err)
	}

	return entry
}

func listSongs(t *testing.T, app *Application, userID, playlistID string) []models.PlaylistSongResponse {
	t.Helper()

	c, rec := newContext(t, http.MethodGet, "/api/playlists/"+playlistID+"/songs", nil, userID)
	c.SetParamNames("id")
	c.SetParamValues(playlistID)
	if err := app.HandleListPlaylistSongs(c); err != nil {
		t.Fatalf("list songs failed: %v", err)
	}

	var entries []models.PlaylistSongResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode song list: %v", err)
	}

	return entries
}

func TestPlaylistVisibility(t *testing.T) {
	app, _ := newTestApplication(t)

	owner := registerUser(t, app, "sam", "sam@example.com", "correct-horse")
	stranger := registerUser(t, app, "frodo", "frodo@example.com", "correct-horse")

	private := createPlaylist(t, app, owner.UserID, "private mix", false)
	public := createPlaylist(t, app, owner.UserID, "public mix", true)

	// A private playlist reads as missing for everyone but the owner.
	c, _ := newContext(t, http.MethodGet, "/api/playlists/"+private.PlaylistID, nil, stranger.UserID)
	c.SetParamNames("id")
	c.SetParamValues(private.PlaylistID)
	if status := appErrorStatus(t, app.HandleGetPlaylist(c)); status != http.StatusNotFound {
		t.Errorf("private playlist: expected 404, got %d", status)
	}

	c, rec := newContext(t, http.MethodGet, "/api/playlists/"+public.PlaylistID, nil, stranger.UserID)
	c.SetParamNames("id")
	c.SetParamValues(public.PlaylistID)
	if err := app.HandleGetPlaylist(c); err != nil {
		t.Fatalf("public playlist should be readable: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Public does not mean writable.
	c, _ = newContext(t, http.MethodPatch, "/api/playlists/"+public.PlaylistID, models.UpdatePlaylistRequest{
		Name: strptr("hijacked"),
	}, stranger.UserID)
	c.SetParamNames("id")
	c.SetParamValues(public.PlaylistID)
	if status := appErrorStatus(t, app.HandleUpdatePlaylist(c)); status != http.StatusForbidden {
		t.Errorf("expected 403, got %d", status)
	}
}

func TestAddSongPositions(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")
	playlist := createPlaylist(t, app, user.UserID, "focus", false)

	first := addSong(t, app, user.UserID, playlist.PlaylistID, "One", "https://example.com/1")
	second := addSong(t, app, user.UserID, playlist.PlaylistID, "Two", "https://example.com/2")
	third := addSong(t, app, user.UserID, playlist.PlaylistID, "Three", "https://example.com/3")

	if first.Position != 0 || second.Position != 1 || third.Position != 2 {
		t.Errorf("positions should be 0,1,2, got %d,%d,%d", first.Position, second.Position, third.Position)
	}

	entries := listSongs(t, app, user.UserID, playlist.PlaylistID)
	if len(entries) != 3 {
		t.Fatalf("expected 3 songs, got %d", len(entries))
	}
	if entries[0].Song.Title != "One" || entries[2].Song.Title != "Three" {
		t.Errorf("songs out of order: %+v", entries)
	}
}

func TestRemoveSongCompacts(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")
	playlist := createPlaylist(t, app, user.UserID, "focus", false)

	addSong(t, app, user.UserID, playlist.PlaylistID, "One", "https://example.com/1")
	middle := addSong(t, app, user.UserID, playlist.PlaylistID, "Two", "https://example.com/2")
	addSong(t, app, user.UserID, playlist.PlaylistID, "Three", "https://example.com/3")

	c, rec := newContext(t, http.MethodDelete, "/api/playlists/"+playlist.PlaylistID+"/songs/"+middle.Song.SongID, nil, user.UserID)
	c.SetParamNames("id", "songID")
	c.SetParamValues(playlist.PlaylistID, middle.Song.SongID)
	if err := app.HandleRemoveSong(c); err != nil {
		t.Fatalf("remove song failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	entries := listSongs(t, app, user.UserID, playlist.PlaylistID)
	if len(entries) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(entries))
	}
	if entries[0].Position != 0 || entries[1].Position != 1 {
		t.Errorf("positions should compact to 0,1, got %d,%d", entries[0].Position, entries[1].Position)
	}
	if entries[0].Song.Title != "One" || entries[1].Song.Title != "Three" {
		t.Errorf("wrong songs left: %+v", entries)
	}

	// The orphaned song row was cleaned up.
	songs, err := app.SongStore.GetByIDs([]string{middle.Song.SongID})
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 0 {
		t.Error("orphaned song row should be deleted")
	}
}

func TestReorderSongs(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")
	playlist := createPlaylist(t, app, user.UserID, "focus", false)

	a := addSong(t, app, user.UserID, playlist.PlaylistID, "A", "https://example.com/a")
	b := addSong(t, app, user.UserID, playlist.PlaylistID, "B", "https://example.com/b")
	d := addSong(t, app, user.UserID, playlist.PlaylistID, "C", "https://example.com/c")

	c, rec := newContext(t, http.MethodPut, "/api/playlists/"+playlist.PlaylistID+"/songs/order", models.ReorderSongsRequest{
		SongIDs: []string{d.Song.SongID, a.Song.SongID, b.Song.SongID},
	}, user.UserID)
	c.SetParamNames("id")
	c.SetParamValues(playlist.PlaylistID)
	if err := app.HandleReorderSongs(c); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	entries := listSongs(t, app, user.UserID, playlist.PlaylistID)
	if entries[0].Song.Title != "C" || entries[1].Song.Title != "A" || entries[2].Song.Title != "B" {
		t.Errorf("order not applied: %+v", entries)
	}
}

func TestReorderSongsMismatch(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")
	playlist := createPlaylist(t, app, user.UserID, "focus", false)

	a := addSong(t, app, user.UserID, playlist.PlaylistID, "A", "https://example.com/a")
	addSong(t, app, user.UserID, playlist.PlaylistID, "B", "https://example.com/b")

	// Too few IDs.
	c, _ := newContext(t, http.MethodPut, "/api/playlists/"+playlist.PlaylistID+"/songs/order", models.ReorderSongsRequest{
		SongIDs: []string{a.Song.SongID},
	}, user.UserID)
	c.SetParamNames("id")
	c.SetParamValues(playlist.PlaylistID)
	if status := appErrorStatus(t, app.HandleReorderSongs(c)); status != http.StatusBadRequest {
		t.Errorf("short list: expected 400, got %d", status)
	}

	// Right length, wrong contents.
	c, _ = newContext(t, http.MethodPut, "/api/playlists/"+playlist.PlaylistID+"/songs/order", models.ReorderSongsRequest{
		SongIDs: []string{a.Song.SongID, "not-a-song"},
	}, user.UserID)
	c.SetParamNames("id")
	c.SetParamValues(playlist.PlaylistID)
	if status := appErrorStatus(t, app.HandleReorderSongs(c)); status != http.StatusBadRequest {
		t.Errorf("foreign id: expected 400, got %d", status)
	}
}

func TestDeletePlaylist(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")
	playlist := createPlaylist(t, app, user.UserID, "focus", false)
	addSong(t, app, user.UserID, playlist.PlaylistID, "One", "https://example.com/1")

	c, rec := newContext(t, http.MethodDelete, "/api/playlists/"+playlist.PlaylistID, nil, user.UserID)
	c.SetParamNames("id")
	c.SetParamValues(playlist.PlaylistID)
	if err := app.HandleDeletePlaylist(c); err != nil {
		t.Fatalf("delete playlist failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	entries, err := app.PlaylistSongStore.GetManyOrdered(playlist.PlaylistID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("playlist entries should be gone, got %d", len(entries))
	}
}
