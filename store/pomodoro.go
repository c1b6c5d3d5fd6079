package store

import (
	"time"

	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

type PomodoroStore interface {
	CreateTable() error
	Create(session models.PomodoroSessionDBModel) error
	GetOne(whereQuery string, whereArgs ...interface{}) (*models.PomodoroSessionDBModel, error)
	GetRecent(userID string, limit int) ([]models.PomodoroSessionDBModel, error)
	Update(updateMap map[string]any, whereQuery string, whereArgs ...interface{}) error
	Delete(whereQuery string, whereArgs ...interface{}) error
	Stats(userID string, now time.Time) (*models.PomodoroStatsResponse, error)
}

type pomodoroStore struct {
	db *gorm.DB
}

func NewPomodoroStore(db *gorm.DB) PomodoroStore {
	return &pomodoroStore{
		db: db,
	}
}

func (ps *pomodoroStore) table() string {
	return "pomodoro_sessions"
}

func (ps *pomodoroStore) CreateTable() error {
	return ps.db.Table(ps.table()).AutoMigrate(models.PomodoroSessionDBModel{})
}

func (ps *pomodoroStore) Create(session models.PomodoroSessionDBModel) error {
	return ps.db.Table(ps.table()).Create(session).Error
}

func (ps *pomodoroStore) GetOne(whereQuery string, whereArgs ...interface{}) (*models.PomodoroSessionDBModel, error) {
	var session models.PomodoroSessionDBModel
	if err := ps.db.Table(ps.table()).Where(whereQuery, whereArgs...).First(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func (ps *pomodoroStore) GetRecent(userID string, limit int) ([]models.PomodoroSessionDBModel, error) {
	var sessions []models.PomodoroSessionDBModel
	if err := ps.db.Table(ps.table()).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (ps *pomodoroStore) Update(updateMap map[string]any, whereQuery string, whereArgs ...interface{}) error {
	return ps.db.Table(ps.table()).Where(whereQuery, whereArgs...).Updates(updateMap).Error
}

func (ps *pomodoroStore) Delete(whereQuery string, whereArgs ...interface{}) error {
	return ps.db.Table(ps.table()).Where(whereQuery, whereArgs...).Delete(nil).Error
}

func (ps *pomodoroStore) Stats(userID string, now time.Time) (*models.PomodoroStatsResponse, error) {
	stats := &models.PomodoroStatsResponse{}

	if err := ps.db.Table(ps.table()).Where("user_id = ?", userID).Count(&stats.TotalSessions).Error; err != nil {
		return nil, err
	}

	if err := ps.db.Table(ps.table()).Where("user_id = ? AND completed = ?", userID, true).Count(&stats.CompletedSessions).Error; err != nil {
		return nil, err
	}

	var total *int64
	if err := ps.db.Table(ps.table()).
		Where("user_id = ? AND completed = ?", userID, true).
		Select("SUM(duration_seconds)").
		Scan(&total).Error; err != nil {
		return nil, err
	}
	if total != nil {
		stats.TotalFocusSeconds = *total
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := ps.db.Table(ps.table()).
		Where("user_id = ? AND started_at >= ?", userID, dayStart).
		Count(&stats.SessionsToday).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
