package store

import (
	"errors"

	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

type UserStore interface {
	CreateTable() error
	Create(user models.UserDBModel) error
	GetOne(whereQuery string, whereArgs ...interface{}) (*models.UserDBModel, error)
	Update(updateMap map[string]any, whereQuery string, whereArgs ...interface{}) error
	Delete(whereQuery string, whereArgs ...interface{}) error
	IsExists(whereQuery string, whereArgs ...interface{}) (bool, error)
	DB() *gorm.DB
}

type userStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return &userStore{
		db: db,
	}
}

func (us *userStore) table() string {
	return "users"
}

func (us *userStore) DB() *gorm.DB {
	return us.db
}

func (us *userStore) CreateTable() error {
	return us.db.Table(us.table()).AutoMigrate(models.UserDBModel{})
}

func (us *userStore) Create(user models.UserDBModel) error {
	return us.db.Table(us.table()).Create(user).Error
}

func (us *userStore) GetOne(whereQuery string, whereArgs ...interface{}) (*models.UserDBModel, error) {
	var user models.UserDBModel
	if err := us.db.Table(us.table()).Where(whereQuery, whereArgs...).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (us *userStore) Update(updateMap map[string]any, whereQuery string, whereArgs ...interface{}) error {
	return us.db.Table(us.table()).Where(whereQuery, whereArgs...).Updates(updateMap).Error
}

func (us *userStore) Delete(whereQuery string, whereArgs ...interface{}) error {
	return us.db.Table(us.table()).Where(whereQuery, whereArgs...).Delete(nil).Error
}

func (us *userStore) IsExists(whereQuery string, whereArgs ...interface{}) (bool, error) {
	var count int64
	if err := us.db.Table(us.table()).Where(whereQuery, whereArgs...).Count(&count).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return count > 0, nil
}
