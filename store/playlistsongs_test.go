package store

import (
	"testing"

	"github.com/vibeflo/vibeflo/models"
)

func newPlaylistSongStore(t *testing.T) PlaylistSongStore {
	t.Helper()

	ps := NewPlaylistSongStore(newTestDB(t))
	if err := ps.CreateTable(); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	return ps
}

func fillPlaylist(t *testing.T, ps PlaylistSongStore, playlistID string, songIDs ...string) {
	t.Helper()

	for i, songID := range songIDs {
		if err := ps.Create(models.PlaylistSongDBModel{
			PlaylistID: playlistID,
			SongID:     songID,
			Position:   i,
		}); err != nil {
			t.Fatalf("failed to create entry: %v", err)
		}
	}
}

func order(t *testing.T, ps PlaylistSongStore, playlistID string) []string {
	t.Helper()

	entries, err := ps.GetManyOrdered(playlistID)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.SongID)
	}

	return ids
}

func TestNextPosition(t *testing.T) {
	ps := newPlaylistSongStore(t)

	pos, err := ps.NextPosition("p1")
	if err != nil {
		t.Fatal(err)
	}
	if pos != 0 {
		t.Errorf("empty playlist: expected 0, got %d", pos)
	}

	fillPlaylist(t, ps, "p1", "a", "b")

	pos, err = ps.NextPosition("p1")
	if err != nil {
		t.Fatal(err)
	}
	if pos != 2 {
		t.Errorf("expected 2, got %d", pos)
	}

	// Another playlist does not influence the count.
	pos, err = ps.NextPosition("p2")
	if err != nil {
		t.Fatal(err)
	}
	if pos != 0 {
		t.Errorf("other playlist: expected 0, got %d", pos)
	}
}

func TestReorder(t *testing.T) {
	ps := newPlaylistSongStore(t)

	fillPlaylist(t, ps, "p1", "a", "b", "c")

	if err := ps.Reorder("p1", []string{"c", "a", "b"}); err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	got := order(t, ps, "p1")
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestCompact(t *testing.T) {
	ps := newPlaylistSongStore(t)

	fillPlaylist(t, ps, "p1", "a", "b", "c")

	if err := ps.Delete("playlist_id = ? AND song_id = ?", "p1", "b"); err != nil {
		t.Fatal(err)
	}
	if err := ps.Compact("p1"); err != nil {
		t.Fatalf("compact failed: %v", err)
	}

	entries, err := ps.GetManyOrdered("p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for i, entry := range entries {
		if entry.Position != i {
			t.Errorf("entry %d has position %d", i, entry.Position)
		}
	}
}

func TestCountForSong(t *testing.T) {
	ps := newPlaylistSongStore(t)

	fillPlaylist(t, ps, "p1", "a", "b")
	fillPlaylist(t, ps, "p2", "a")

	count, err := ps.CountForSong("a")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("expected 2 references, got %d", count)
	}

	count, err = ps.CountForSong("missing")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected 0 references, got %d", count)
	}
}
