package store

import (
	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

type SettingsStore interface {
	CreateTable() error
	Create(settings models.UserSettingsDBModel) error
	GetOne(userID string) (*models.UserSettingsDBModel, error)
	Update(userID string, updateMap map[string]any) error
	Delete(userID string) error
}

type settingsStore struct {
	db *gorm.DB
}

func NewSettingsStore(db *gorm.DB) SettingsStore {
	return &settingsStore{
		db: db,
	}
}

func (ss *settingsStore) table() string {
	return "user_settings"
}

func (ss *settingsStore) CreateTable() error {
	return ss.db.Table(ss.table()).AutoMigrate(models.UserSettingsDBModel{})
}

func (ss *settingsStore) Create(settings models.UserSettingsDBModel) error {
	return ss.db.Table(ss.table()).Create(settings).Error
}

func (ss *settingsStore) GetOne(userID string) (*models.UserSettingsDBModel, error) {
	var settings models.UserSettingsDBModel
	if err := ss.db.Table(ss.table()).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}

	return &settings, nil
}

func (ss *settingsStore) Update(userID string, updateMap map[string]any) error {
	return ss.db.Table(ss.table()).Where("user_id = ?", userID).Updates(updateMap).Error
}

func (ss *settingsStore) Delete(userID string) error {
	return ss.db.Table(ss.table()).Where("user_id = ?", userID).Delete(nil).Error
}
