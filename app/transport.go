package app

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

func (app *Application) Router() *echo.Echo {
	e := echo.New()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(app.CreateSessionMiddleware)
	e.Validator = NewValidator()
	e.HTTPErrorHandler = HTTPErrorHandler

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", app.HandleRegister)
	auth.POST("/login", app.HandleLogin)
	auth.POST("/logout", app.HandleLogout)
	auth.GET("/verify-email/:token", app.HandleVerifyEmail)
	auth.POST("/resend-verification", app.HandleResendVerification)
	auth.POST("/forgot-password", app.HandleForgotPassword)
	auth.POST("/reset-password", app.HandleResetPassword)

	users := api.Group("/users", app.RequireAuth)
	users.GET("/me", app.HandleGetMe)
	users.PATCH("/me", app.HandleUpdateProfile)
	users.PUT("/me/password", app.HandleChangePassword)
	users.GET("/me/settings", app.HandleGetSettings)
	users.PUT("/me/settings", app.HandleUpdateSettings)
	users.DELETE("/me", app.HandleDeleteAccount)

	themes := api.Group("/themes")
	themes.GET("", app.HandleListThemes)
	themes.GET("/custom/public", app.HandleListPublicCustomThemes)
	themes.GET("/current", app.HandleGetCurrentTheme, app.RequireAuth)
	themes.PUT("/current", app.HandleSetTheme, app.RequireAuth)
	themes.POST("/custom", app.HandleCreateCustomTheme, app.RequireAuth)
	themes.GET("/custom", app.HandleListMyCustomThemes, app.RequireAuth)
	themes.PATCH("/custom/:id", app.HandleUpdateCustomTheme, app.RequireAuth)
	themes.DELETE("/custom/:id", app.HandleDeleteCustomTheme, app.RequireAuth)

	admin := api.Group("/admin/themes", app.RequireAuth, app.RequireAdmin)
	admin.GET("/pending", app.HandleListPendingThemes)
	admin.PUT("/:id/moderate", app.HandleModerateTheme)

	playlists := api.Group("/playlists")
	playlists.GET("/:id", app.HandleGetPlaylist, app.RequireAuth)
	playlists.GET("/:id/songs", app.HandleListPlaylistSongs, app.RequireAuth)
	playlists.GET("", app.HandleListMyPlaylists, app.RequireAuth)
	playlists.POST("", app.HandleCreatePlaylist, app.RequireAuth)
	playlists.PATCH("/:id", app.HandleUpdatePlaylist, app.RequireAuth)
	playlists.DELETE("/:id", app.HandleDeletePlaylist, app.RequireAuth)
	playlists.POST("/:id/songs", app.HandleAddSong, app.RequireAuth)
	playlists.DELETE("/:id/songs/:songID", app.HandleRemoveSong, app.RequireAuth)
	playlists.PUT("/:id/songs/order", app.HandleReorderSongs, app.RequireAuth)

	pomodoro := api.Group("/pomodoro", app.RequireAuth)
	pomodoro.POST("/sessions", app.HandleStartSession)
	pomodoro.PUT("/sessions/:id/complete", app.HandleCompleteSession)
	pomodoro.GET("/sessions", app.HandleListSessions)
	pomodoro.DELETE("/sessions/:id", app.HandleDeleteSession)
	pomodoro.GET("/stats", app.HandlePomodoroStats)

	spotify := api.Group("/spotify", app.RequireAuth)
	spotify.GET("/auth", app.HandleSpotifyAuth)
	spotify.GET("/status", app.HandleSpotifyStatus)
	spotify.DELETE("/link", app.HandleSpotifyUnlink)
	spotify.GET("/search", app.HandleSpotifySearch, app.UpdateSpotifyTokenIfExpired)
	spotify.GET("/playlists", app.HandleSpotifyPlaylists, app.UpdateSpotifyTokenIfExpired)
	e.GET(app.SpotifyRedirectPath, app.HandleSpotifyRedirect, app.RequireAuth)

	youtube := api.Group("/youtube", app.RequireAuth)
	youtube.GET("/search", app.HandleYouTubeSearch)

	e.GET("/ws/themes/:id", app.HandleThemeArtWS, app.RequireAuth)

	return e
}

// HTTPErrorHandler renders every failure as a JSON {message} body, mapping
// domain and database errors to their HTTP status.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *models.AppError
	var httpErr *echo.HTTPError
	var pgErr *pgconn.PgError

	switch {
	case errors.As(err, &appErr):
		status = appErr.Status
		message = appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else if e, ok := httpErr.Message.(error); ok {
			message = e.Error()
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
		message = "resource not found"
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		status = http.StatusConflict
		message = "resource already exists"
	}

	if status >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, models.MessageResponse{Message: message})
	}

	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}
