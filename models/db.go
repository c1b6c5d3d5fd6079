package models

import "time"

type UserDBModel struct {
	UserID       string    `gorm:"column:user_id;primaryKey" json:"user_id"`
	Username     string    `gorm:"column:username;uniqueIndex" json:"username"`
	Email        string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Bio          string    `gorm:"column:bio" json:"bio"`
	AvatarURL    string    `gorm:"column:avatar_url" json:"avatar_url"`
	ThemeID      *string   `gorm:"column:theme_id" json:"theme_id"`
	IsVerified   bool      `gorm:"column:is_verified" json:"is_verified"`
	IsAdmin      bool      `gorm:"column:is_admin" json:"is_admin"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

type UserSettingsDBModel struct {
	UserID                string `gorm:"column:user_id;primaryKey" json:"user_id"`
	PomodoroMinutes       int    `gorm:"column:pomodoro_minutes;default:25" json:"pomodoro_minutes"`
	ShortBreakMinutes     int    `gorm:"column:short_break_minutes;default:5" json:"short_break_minutes"`
	LongBreakMinutes      int    `gorm:"column:long_break_minutes;default:15" json:"long_break_minutes"`
	PomodorosPerLongBreak int    `gorm:"column:pomodoros_per_long_break;default:4" json:"pomodoros_per_long_break"`
	SoundEnabled          bool   `gorm:"column:sound_enabled;default:true" json:"sound_enabled"`
	NotificationsEnabled  bool   `gorm:"column:notifications_enabled;default:true" json:"notifications_enabled"`
}

type ThemeDBModel struct {
	ThemeID         string `gorm:"column:theme_id;primaryKey" json:"theme_id"`
	Name            string `gorm:"column:name" json:"name"`
	Description     string `gorm:"column:description" json:"description"`
	ImageURL        string `gorm:"column:image_url" json:"image_url"`
	BackgroundColor string `gorm:"column:background_color" json:"background_color"`
	TextColor       string `gorm:"column:text_color" json:"text_color"`
	IsDefault       bool   `gorm:"column:is_default" json:"is_default"`
}

const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationRejected = "rejected"
)

type CustomThemeDBModel struct {
	ThemeID          string    `gorm:"column:theme_id;primaryKey" json:"theme_id"`
	UserID           string    `gorm:"column:user_id;index" json:"user_id"`
	Name             string    `gorm:"column:name" json:"name"`
	Description      string    `gorm:"column:description" json:"description"`
	ImageURL         string    `gorm:"column:image_url" json:"image_url"`
	ImageKey         string    `gorm:"column:image_key" json:"-"`
	BackgroundColor  string    `gorm:"column:background_color" json:"background_color"`
	TextColor        string    `gorm:"column:text_color" json:"text_color"`
	IsPublic         bool      `gorm:"column:is_public" json:"is_public"`
	ModerationStatus string    `gorm:"column:moderation_status;default:pending" json:"moderation_status"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}

type PlaylistDBModel struct {
	PlaylistID  string    `gorm:"column:playlist_id;primaryKey" json:"playlist_id"`
	UserID      string    `gorm:"column:user_id;index" json:"user_id"`
	Name        string    `gorm:"column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	IsPublic    bool      `gorm:"column:is_public" json:"is_public"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

type SongDBModel struct {
	SongID          string `gorm:"column:song_id;primaryKey" json:"song_id"`
	Title           string `gorm:"column:title" json:"title"`
	Artist          string `gorm:"column:artist" json:"artist"`
	URL             string `gorm:"column:url" json:"url"`
	ImageURL        string `gorm:"column:image_url" json:"image_url"`
	DurationSeconds int    `gorm:"column:duration_seconds" json:"duration_seconds"`
}

type PlaylistSongDBModel struct {
	PlaylistID string `gorm:"column:playlist_id;index" json:"playlist_id"`
	SongID     string `gorm:"column:song_id" json:"song_id"`
	Position   int    `gorm:"column:position" json:"position"`
}

type PomodoroSessionDBModel struct {
	SessionID       string     `gorm:"column:session_id;primaryKey" json:"session_id"`
	UserID          string     `gorm:"column:user_id;index" json:"user_id"`
	Task            string     `gorm:"column:task" json:"task"`
	StartedAt       time.Time  `gorm:"column:started_at" json:"started_at"`
	EndedAt         *time.Time `gorm:"column:ended_at" json:"ended_at"`
	DurationSeconds int        `gorm:"column:duration_seconds" json:"duration_seconds"`
	Completed       bool       `gorm:"column:completed" json:"completed"`
}

type VerificationTokenDBModel struct {
	Token     string    `gorm:"column:token;primaryKey"`
	UserID    string    `gorm:"column:user_id;index"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

type ResetTokenDBModel struct {
	Token     string    `gorm:"column:token;primaryKey"`
	UserID    string    `gorm:"column:user_id;index"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	Used      bool      `gorm:"column:used"`
}

type FailedLoginAttemptDBModel struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Email       string    `gorm:"column:email;index"`
	AttemptedAt time.Time `gorm:"column:attempted_at"`
}
