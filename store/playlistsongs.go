package store

import (
	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

type PlaylistSongStore interface {
	CreateTable() error
	Create(entry models.PlaylistSongDBModel) error
	GetManyOrdered(playlistID string) ([]models.PlaylistSongDBModel, error)
	NextPosition(playlistID string) (int, error)
	CountForSong(songID string) (int64, error)
	Delete(whereQuery string, whereArgs ...interface{}) error
	Reorder(playlistID string, songIDs []string) error
	Compact(playlistID string) error
	DB() *gorm.DB
}

type playlistSongStore struct {
	db *gorm.DB
}

func NewPlaylistSongStore(db *gorm.DB) PlaylistSongStore {
	return &playlistSongStore{
		db: db,
	}
}

func (ps *playlistSongStore) table() string {
	return "playlist_songs"
}

func (ps *playlistSongStore) DB() *gorm.DB {
	return ps.db
}

func (ps *playlistSongStore) CreateTable() error {
	return ps.db.Table(ps.table()).AutoMigrate(models.PlaylistSongDBModel{})
}

func (ps *playlistSongStore) Create(entry models.PlaylistSongDBModel) error {
	return ps.db.Table(ps.table()).Create(entry).Error
}

func (ps *playlistSongStore) GetManyOrdered(playlistID string) ([]models.PlaylistSongDBModel, error) {
	var entries []models.PlaylistSongDBModel
	if err := ps.db.Table(ps.table()).Where("playlist_id = ?", playlistID).Order("position").Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (ps *playlistSongStore) NextPosition(playlistID string) (int, error) {
	var max *int
	if err := ps.db.Table(ps.table()).Where("playlist_id = ?", playlistID).Select("MAX(position)").Scan(&max).Error; err != nil {
		return 0, err
	}

	if max == nil {
		return 0, nil
	}

	return *max + 1, nil
}

func (ps *playlistSongStore) CountForSong(songID string) (int64, error) {
	var count int64
	if err := ps.db.Table(ps.table()).Where("song_id = ?", songID).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (ps *playlistSongStore) Delete(whereQuery string, whereArgs ...interface{}) error {
	return ps.db.Table(ps.table()).Where(whereQuery, whereArgs...).Delete(nil).Error
}

// Reorder rewrites positions to match the given song order inside one
// transaction. Callers must pass the complete membership of the playlist.
func (ps *playlistSongStore) Reorder(playlistID string, songIDs []string) error {
	return ps.db.Transaction(func(tx *gorm.DB) error {
		for i, songID := range songIDs {
			if err := tx.Table(ps.table()).
				Where("playlist_id = ? AND song_id = ?", playlistID, songID).
				Update("position", i).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Compact renumbers positions to 0..n-1 after a removal.
func (ps *playlistSongStore) Compact(playlistID string) error {
	entries, err := ps.GetManyOrdered(playlistID)
	if err != nil {
		return err
	}

	return ps.db.Transaction(func(tx *gorm.DB) error {
		for i, entry := range entries {
			if entry.Position == i {
				continue
			}

			if err := tx.Table(ps.table()).
				Where("playlist_id = ? AND song_id = ?", playlistID, entry.SongID).
				Update("position", i).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
