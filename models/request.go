package models

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=30"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

type UpdateSettingsRequest struct {
	PomodoroMinutes       int  `json:"pomodoro_minutes" validate:"required,min=1,max=120"`
	ShortBreakMinutes     int  `json:"short_break_minutes" validate:"required,min=1,max=60"`
	LongBreakMinutes      int  `json:"long_break_minutes" validate:"required,min=1,max=60"`
	PomodorosPerLongBreak int  `json:"pomodoros_per_long_break" validate:"required,min=1,max=12"`
	SoundEnabled          bool `json:"sound_enabled"`
	NotificationsEnabled  bool `json:"notifications_enabled"`
}

type SetThemeRequest struct {
	ThemeID string `json:"theme_id" validate:"required"`
}

type CreateCustomThemeRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Description     string `json:"description" validate:"max=500"`
	ImageURL        string `json:"image_url" validate:"required,url"`
	BackgroundColor string `json:"background_color" validate:"omitempty,hexcolor"`
	TextColor       string `json:"text_color" validate:"omitempty,hexcolor"`
	IsPublic        bool   `json:"is_public"`
}

type UpdateCustomThemeRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description     *string `json:"description" validate:"omitempty,max=500"`
	ImageURL        *string `json:"image_url" validate:"omitempty,url"`
	BackgroundColor *string `json:"background_color" validate:"omitempty,hexcolor"`
	TextColor       *string `json:"text_color" validate:"omitempty,hexcolor"`
	IsPublic        *bool   `json:"is_public"`
}

type ModerateThemeRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    bool   `json:"is_public"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsPublic    *bool   `json:"is_public"`
}

type AddSongRequest struct {
	Title           string `json:"title" validate:"required,min=1,max=200"`
	Artist          string `json:"artist" validate:"max=200"`
	URL             string `json:"url" validate:"required,url"`
	ImageURL        string `json:"image_url" validate:"omitempty,url"`
	DurationSeconds int    `json:"duration_seconds" validate:"min=0"`
}

type ReorderSongsRequest struct {
	SongIDs []string `json:"song_ids" validate:"required,min=1,dive,required"`
}

type StartSessionRequest struct {
	Task      string `json:"task" validate:"max=200"`
	StartedAt string `json:"started_at" validate:"omitempty"`
}
