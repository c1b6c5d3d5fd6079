package models

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserDBModel `json:"user"`
}

type PomodoroStatsResponse struct {
	TotalSessions     int64 `json:"total_sessions"`
	CompletedSessions int64 `json:"completed_sessions"`
	TotalFocusSeconds int64 `json:"total_focus_seconds"`
	SessionsToday     int64 `json:"sessions_today"`
}

type PlaylistSongResponse struct {
	Position int         `json:"position"`
	Song     SongDBModel `json:"song"`
}

type YouTubeSearchResult struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type SpotifyStatusResponse struct {
	Linked bool `json:"linked"`
}

// Messages exchanged with the theme art worker over RabbitMQ.

type ThemeArtRequest struct {
	ThemeID  string `json:"theme_id"`
	ImageURL string `json:"image_url"`
}

type ThemeArtResponse struct {
	ThemeID  string `json:"theme_id"`
	ImageURL string `json:"image_url,omitempty"`
	ImageKey string `json:"image_key,omitempty"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}
