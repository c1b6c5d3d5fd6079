package store

import (
	"time"

	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

type LoginAttemptStore interface {
	CreateTable() error
	Record(email string, at time.Time) error
	CountSince(email string, since time.Time) (int64, error)
	Clear(email string) error
}

type loginAttemptStore struct {
	db *gorm.DB
}

func NewLoginAttemptStore(db *gorm.DB) LoginAttemptStore {
	return &loginAttemptStore{
		db: db,
	}
}

func (ls *loginAttemptStore) table() string {
	return "failed_login_attempts"
}

func (ls *loginAttemptStore) CreateTable() error {
	return ls.db.Table(ls.table()).AutoMigrate(models.FailedLoginAttemptDBModel{})
}

func (ls *loginAttemptStore) Record(email string, at time.Time) error {
	return ls.db.Table(ls.table()).Create(models.FailedLoginAttemptDBModel{
		Email:       email,
		AttemptedAt: at,
	}).Error
}

func (ls *loginAttemptStore) CountSince(email string, since time.Time) (int64, error) {
	var count int64
	if err := ls.db.Table(ls.table()).
		Where("email = ? AND attempted_at >= ?", email, since).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (ls *loginAttemptStore) Clear(email string) error {
	return ls.db.Table(ls.table()).Where("email = ?", email).Delete(nil).Error
}
