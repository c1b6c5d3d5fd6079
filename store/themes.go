package store

import (
	"errors"

	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

type ThemeStore interface {
	CreateTable() error
	Create(theme models.ThemeDBModel) error
	GetOne(whereQuery string, whereArgs ...interface{}) (*models.ThemeDBModel, error)
	GetMany(whereQuery string, whereArgs ...interface{}) ([]models.ThemeDBModel, error)
	GetDefault() (*models.ThemeDBModel, error)
	IsExists(whereQuery string, whereArgs ...interface{}) (bool, error)
}

type themeStore struct {
	db *gorm.DB
}

func NewThemeStore(db *gorm.DB) ThemeStore {
	return &themeStore{
		db: db,
	}
}

func (ts *themeStore) table() string {
	return "themes"
}

func (ts *themeStore) CreateTable() error {
	return ts.db.Table(ts.table()).AutoMigrate(models.ThemeDBModel{})
}

func (ts *themeStore) Create(theme models.ThemeDBModel) error {
	return ts.db.Table(ts.table()).Create(theme).Error
}

func (ts *themeStore) GetOne(whereQuery string, whereArgs ...interface{}) (*models.ThemeDBModel, error) {
	var theme models.ThemeDBModel
	if err := ts.db.Table(ts.table()).Where(whereQuery, whereArgs...).First(&theme).Error; err != nil {
		return nil, err
	}

	return &theme, nil
}

func (ts *themeStore) GetMany(whereQuery string, whereArgs ...interface{}) ([]models.ThemeDBModel, error) {
	var themes []models.ThemeDBModel
	q := ts.db.Table(ts.table())
	if whereQuery != "" {
		q = q.Where(whereQuery, whereArgs...)
	}

	if err := q.Order("name").Find(&themes).Error; err != nil {
		return nil, err
	}

	return themes, nil
}

func (ts *themeStore) GetDefault() (*models.ThemeDBModel, error) {
	return ts.GetOne("is_default = ?", true)
}

func (ts *themeStore) IsExists(whereQuery string, whereArgs ...interface{}) (bool, error) {
	var count int64
	if err := ts.db.Table(ts.table()).Where(whereQuery, whereArgs...).Count(&count).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return count > 0, nil
}
