package store

import (
	"time"

	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

type VerificationTokenStore interface {
	CreateTable() error
	Create(token models.VerificationTokenDBModel) error
	GetOne(token string) (*models.VerificationTokenDBModel, error)
	Delete(whereQuery string, whereArgs ...interface{}) error
	DeleteExpired(now time.Time) error
}

type verificationTokenStore struct {
	db *gorm.DB
}

func NewVerificationTokenStore(db *gorm.DB) VerificationTokenStore {
	return &verificationTokenStore{
		db: db,
	}
}

func (vs *verificationTokenStore) table() string {
	return "verification_tokens"
}

func (vs *verificationTokenStore) CreateTable() error {
	return vs.db.Table(vs.table()).AutoMigrate(models.VerificationTokenDBModel{})
}

func (vs *verificationTokenStore) Create(token models.VerificationTokenDBModel) error {
	return vs.db.Table(vs.table()).Create(token).Error
}

func (vs *verificationTokenStore) GetOne(token string) (*models.VerificationTokenDBModel, error) {
	var row models.VerificationTokenDBModel
	if err := vs.db.Table(vs.table()).Where("token = ?", token).First(&row).Error; err != nil {
		return nil, err
	}

	return &row, nil
}

func (vs *verificationTokenStore) Delete(whereQuery string, whereArgs ...interface{}) error {
	return vs.db.Table(vs.table()).Where(whereQuery, whereArgs...).Delete(nil).Error
}

func (vs *verificationTokenStore) DeleteExpired(now time.Time) error {
	return vs.db.Table(vs.table()).Where("expires_at < ?", now).Delete(nil).Error
}

type ResetTokenStore interface {
	CreateTable() error
	Create(token models.ResetTokenDBModel) error
	GetOne(token string) (*models.ResetTokenDBModel, error)
	MarkUsed(token string) error
	Delete(whereQuery string, whereArgs ...interface{}) error
}

type resetTokenStore struct {
	db *gorm.DB
}

func NewResetTokenStore(db *gorm.DB) ResetTokenStore {
	return &resetTokenStore{
		db: db,
	}
}

func (rs *resetTokenStore) table() string {
	return "reset_tokens"
}

func (rs *resetTokenStore) CreateTable() error {
	return rs.db.Table(rs.table()).AutoMigrate(models.ResetTokenDBModel{})
}

func (rs *resetTokenStore) Create(token models.ResetTokenDBModel) error {
	return rs.db.Table(rs.table()).Create(token).Error
}

func (rs *resetTokenStore) GetOne(token string) (*models.ResetTokenDBModel, error) {
	var row models.ResetTokenDBModel
	if err := rs.db.Table(rs.table()).Where("token = ?", token).First(&row).Error; err != nil {
		return nil, err
	}

	return &row, nil
}

func (rs *resetTokenStore) MarkUsed(token string) error {
	return rs.db.Table(rs.table()).Where("token = ?", token).Update("used", true).Error
}

func (rs *resetTokenStore) Delete(whereQuery string, whereArgs ...interface{}) error {
	return rs.db.Table(rs.table()).Where(whereQuery, whereArgs...).Delete(nil).Error
}
