package store

import (
	"errors"

	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

type SongStore interface {
	CreateTable() error
	Create(song models.SongDBModel) error
	GetOne(whereQuery string, whereArgs ...interface{}) (*models.SongDBModel, error)
	GetByIDs(songIDs []string) ([]models.SongDBModel, error)
	Delete(whereQuery string, whereArgs ...interface{}) error
	IsExists(whereQuery string, whereArgs ...interface{}) (bool, error)
}

type songStore struct {
	db *gorm.DB
}

func NewSongStore(db *gorm.DB) SongStore {
	return &songStore{
		db: db,
	}
}

func (ss *songStore) table() string {
	return "songs"
}

func (ss *songStore) CreateTable() error {
	return ss.db.Table(ss.table()).AutoMigrate(models.SongDBModel{})
}

func (ss *songStore) Create(song models.SongDBModel) error {
	return ss.db.Table(ss.table()).Create(song).Error
}

func (ss *songStore) GetOne(whereQuery string, whereArgs ...interface{}) (*models.SongDBModel, error) {
	var song models.SongDBModel
	if err := ss.db.Table(ss.table()).Where(whereQuery, whereArgs...).First(&song).Error; err != nil {
		return nil, err
	}

	return &song, nil
}

func (ss *songStore) GetByIDs(songIDs []string) ([]models.SongDBModel, error) {
	var songs []models.SongDBModel
	if err := ss.db.Table(ss.table()).Where("song_id IN ?", songIDs).Find(&songs).Error; err != nil {
		return nil, err
	}

	return songs, nil
}

func (ss *songStore) Delete(whereQuery string, whereArgs ...interface{}) error {
	return ss.db.Table(ss.table()).Where(whereQuery, whereArgs...).Delete(nil).Error
}

func (ss *songStore) IsExists(whereQuery string, whereArgs ...interface{}) (bool, error) {
	var count int64
	if err := ss.db.Table(ss.table()).Where(whereQuery, whereArgs...).Count(&count).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return count > 0, nil
}
