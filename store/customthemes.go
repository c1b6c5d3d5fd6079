package store

import (
	"errors"

	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

type CustomThemeStore interface {
	CreateTable() error
	Create(theme models.CustomThemeDBModel) error
	GetOne(whereQuery string, whereArgs ...interface{}) (*models.CustomThemeDBModel, error)
	GetMany(whereQuery string, whereArgs ...interface{}) ([]models.CustomThemeDBModel, error)
	Update(updateMap map[string]any, whereQuery string, whereArgs ...interface{}) error
	Delete(whereQuery string, whereArgs ...interface{}) error
	IsExists(whereQuery string, whereArgs ...interface{}) (bool, error)
}

type customThemeStore struct {
	db *gorm.DB
}

func NewCustomThemeStore(db *gorm.DB) CustomThemeStore {
	return &customThemeStore{
		db: db,
	}
}

func (cs *customThemeStore) table() string {
	return "custom_themes"
}

func (cs *customThemeStore) CreateTable() error {
	return cs.db.Table(cs.table()).AutoMigrate(models.CustomThemeDBModel{})
}

func (cs *customThemeStore) Create(theme models.CustomThemeDBModel) error {
	return cs.db.Table(cs.table()).Create(theme).Error
}

func (cs *customThemeStore) GetOne(whereQuery string, whereArgs ...interface{}) (*models.CustomThemeDBModel, error) {
	var theme models.CustomThemeDBModel
	if err := cs.db.Table(cs.table()).Where(whereQuery, whereArgs...).First(&theme).Error; err != nil {
		return nil, err
	}

	return &theme, nil
}

func (cs *customThemeStore) GetMany(whereQuery string, whereArgs ...interface{}) ([]models.CustomThemeDBModel, error) {
	var themes []models.CustomThemeDBModel
	if err := cs.db.Table(cs.table()).Where(whereQuery, whereArgs...).Order("created_at DESC").Find(&themes).Error; err != nil {
		return nil, err
	}

	return themes, nil
}

func (cs *customThemeStore) Update(updateMap map[string]any, whereQuery string, whereArgs ...interface{}) error {
	return cs.db.Table(cs.table()).Where(whereQuery, whereArgs...).Updates(updateMap).Error
}

func (cs *customThemeStore) Delete(whereQuery string, whereArgs ...interface{}) error {
	return cs.db.Table(cs.table()).Where(whereQuery, whereArgs...).Delete(nil).Error
}

func (cs *customThemeStore) IsExists(whereQuery string, whereArgs ...interface{}) (bool, error) {
	var count int64
	if err := cs.db.Table(cs.table()).Where(whereQuery, whereArgs...).Count(&count).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return count > 0, nil
}
