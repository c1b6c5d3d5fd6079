package app

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vibeflo/vibeflo/models"
)

const themeArtWaitLimit = 2 * time.Minute

// HandleThemeArtWS streams the outcome of a custom theme's art job to the
// submitting client. One message is written, then the socket closes.
func (app *Application) HandleThemeArtWS(c echo.Context) error {
	themeID := c.Param("id")

	theme, err := app.CustomThemeStore.GetOne("theme_id = ?", themeID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if theme.UserID != currentUserID(c) {
		return models.Forbidden("not your theme")
	}

	conn, err := app.Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		c.Logger().Error(err)
		return err
	}
	defer conn.Close()

	// The job may have finished before the socket opened.
	if theme.ImageKey != "" {
		return conn.WriteJSON(models.ThemeArtResponse{
			ThemeID:  theme.ThemeID,
			ImageURL: theme.ImageURL,
			ImageKey: theme.ImageKey,
			Success:  true,
		})
	}

	ch := app.RegisterThemeArtChannel(themeID)
	defer app.RemoveThemeArtChannel(themeID)

	select {
	case resp := <-ch:
		return conn.WriteJSON(resp)
	case <-time.After(themeArtWaitLimit):
		return conn.WriteJSON(models.ThemeArtResponse{
			ThemeID: themeID,
			Success: false,
			Error:   "timed out waiting for theme art",
		})
	case <-c.Request().Context().Done():
		return nil
	}
}
