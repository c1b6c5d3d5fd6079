package app

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vibeflo/vibeflo/models"
	"gorm.io/gorm"
)

func (app *Application) HandleGetMe(c echo.Context) error {
	user, err := app.UserStore.GetOne("user_id = ?", currentUserID(c))
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (app *Application) HandleUpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := currentUserID(c)
	updateMap := map[string]any{}

	if req.Username != nil {
		taken, err := app.UserStore.IsExists("username = ? AND user_id != ?", *req.Username, userID)
		if err != nil {
			c.Logger().Error(err)
			return err
		}

		if taken {
			return models.Conflict("username already taken")
		}

		updateMap["username"] = *req.Username
	}

	if req.Bio != nil {
		updateMap["bio"] = *req.Bio
	}

	if req.AvatarURL != nil {
		updateMap["avatar_url"] = *req.AvatarURL
	}

	if len(updateMap) == 0 {
		return models.BadRequest("nothing to update")
	}

	if err := app.UserStore.Update(updateMap, "user_id = ?", userID); err != nil {
		c.Logger().Error(err)
		return err
	}

	user, err := app.UserStore.GetOne("user_id = ?", userID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, user)
}

func (app *Application) HandleChangePassword(c echo.Context) error {
	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := app.UserStore.GetOne("user_id = ?", currentUserID(c))
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if !checkPassword(user.PasswordHash, req.CurrentPassword) {
		return models.Unauthorized("current password is incorrect")
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.UserStore.Update(map[string]any{"password_hash": hash}, "user_id = ?", user.UserID); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "password changed"})
}

func (app *Application) HandleGetSettings(c echo.Context) error {
	settings, err := app.SettingsStore.GetOne(currentUserID(c))
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, settings)
}

func (app *Application) HandleUpdateSettings(c echo.Context) error {
	var req models.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := currentUserID(c)

	if err := app.SettingsStore.Update(userID, map[string]any{
		"pomodoro_minutes":         req.PomodoroMinutes,
		"short_break_minutes":      req.ShortBreakMinutes,
		"long_break_minutes":       req.LongBreakMinutes,
		"pomodoros_per_long_break": req.PomodorosPerLongBreak,
		"sound_enabled":            req.SoundEnabled,
		"notifications_enabled":    req.NotificationsEnabled,
	}); err != nil {
		c.Logger().Error(err)
		return err
	}

	settings, err := app.SettingsStore.GetOne(userID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, settings)
}

// HandleDeleteAccount removes the user and everything hanging off the
// account in one transaction, children first.
func (app *Application) HandleDeleteAccount(c echo.Context) error {
	var req models.DeleteAccountRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := currentUserID(c)

	user, err := app.UserStore.GetOne("user_id = ?", userID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		return models.Unauthorized("password is incorrect")
	}

	err = app.UserStore.DB().Transaction(func(tx *gorm.DB) error {
		var playlistIDs []string
		if err := tx.Table("playlists").Where("user_id = ?", userID).Pluck("playlist_id", &playlistIDs).Error; err != nil {
			return err
		}

		if len(playlistIDs) > 0 {
			if err := tx.Table("playlist_songs").Where("playlist_id IN ?", playlistIDs).Delete(nil).Error; err != nil {
				return err
			}
		}

		for _, table := range []string{"playlists", "pomodoro_sessions", "user_settings", "verification_tokens", "reset_tokens", "custom_themes"} {
			if err := tx.Table(table).Where("user_id = ?", userID).Delete(nil).Error; err != nil {
				return err
			}
		}

		if err := tx.Table("failed_login_attempts").Where("email = ?", user.Email).Delete(nil).Error; err != nil {
			return err
		}

		return tx.Table("users").Where("user_id = ?", userID).Delete(nil).Error
	})
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.TokenStore.Delete(c.Request().Context(), userID); err != nil {
		c.Logger().Error(err)
	}

	app.clearAuthCookie(c)

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "account deleted"})
}
