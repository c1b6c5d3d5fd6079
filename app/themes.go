package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vibeflo/vibeflo/models"
	"github.com/vibeflo/vibeflo/rabbit"
	"gorm.io/gorm"
)

func (app *Application) HandleListThemes(c echo.Context) error {
	themes, err := app.ThemeStore.GetMany("")
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, themes)
}

func (app *Application) HandleListPublicCustomThemes(c echo.Context) error {
	themes, err := app.CustomThemeStore.GetMany(
		"is_public = ? AND moderation_status = ?", true, models.ModerationApproved,
	)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, themes)
}

// HandleGetCurrentTheme resolves the caller's theme: built-in first, then
// custom, then the default. A dangling reference is reset to NULL so the
// account heals itself.
func (app *Application) HandleGetCurrentTheme(c echo.Context) error {
	userID := currentUserID(c)

	user, err := app.UserStore.GetOne("user_id = ?", userID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if user.ThemeID == nil {
		return app.respondDefaultTheme(c)
	}

	theme, err := app.ThemeStore.GetOne("theme_id = ?", *user.ThemeID)
	if err == nil {
		return c.JSON(http.StatusOK, theme)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.Logger().Error(err)
		return err
	}

	custom, err := app.CustomThemeStore.GetOne("theme_id = ?", *user.ThemeID)
	if err == nil {
		if custom.UserID == userID || (custom.IsPublic && custom.ModerationStatus == models.ModerationApproved) {
			return c.JSON(http.StatusOK, custom)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.Logger().Error(err)
		return err
	}

	if err := app.UserStore.Update(map[string]any{"theme_id": nil}, "user_id = ?", userID); err != nil {
		c.Logger().Error(err)
		return err
	}

	return app.respondDefaultTheme(c)
}

func (app *Application) respondDefaultTheme(c echo.Context) error {
	theme, err := app.ThemeStore.GetDefault()
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, theme)
}

func (app *Application) HandleSetTheme(c echo.Context) error {
	var req models.SetThemeRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID := currentUserID(c)

	usable, err := app.themeUsableBy(userID, req.ThemeID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if !usable {
		return models.NotFound("theme not found")
	}

	if err := app.UserStore.Update(map[string]any{"theme_id": req.ThemeID}, "user_id = ?", userID); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "theme updated"})
}

// themeUsableBy reports whether the theme is a built-in, one of the user's
// own custom themes, or an approved public one.
func (app *Application) themeUsableBy(userID, themeID string) (bool, error) {
	if exists, err := app.ThemeStore.IsExists("theme_id = ?", themeID); err != nil {
		return false, err
	} else if exists {
		return true, nil
	}

	custom, err := app.CustomThemeStore.GetOne("theme_id = ?", themeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	if custom.UserID == userID {
		return true, nil
	}

	return custom.IsPublic && custom.ModerationStatus == models.ModerationApproved, nil
}

func (app *Application) HandleCreateCustomTheme(c echo.Context) error {
	var req models.CreateCustomThemeRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	theme := models.CustomThemeDBModel{
		ThemeID:          uuid.NewString(),
		UserID:           currentUserID(c),
		Name:             req.Name,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		BackgroundColor:  req.BackgroundColor,
		TextColor:        req.TextColor,
		IsPublic:         req.IsPublic,
		ModerationStatus: models.ModerationPending,
		CreatedAt:        time.Now(),
	}

	if err := app.CustomThemeStore.Create(theme); err != nil {
		c.Logger().Error(err)
		return err
	}

	// Queue the art job; on failure the theme keeps its remote image URL.
	if err := app.publishThemeArtJob(theme.ThemeID, theme.ImageURL); err != nil {
		c.Logger().Error(err)
	}

	return c.JSON(http.StatusCreated, theme)
}

func (app *Application) publishThemeArtJob(themeID, imageURL string) error {
	if app.PublishingConn == nil {
		return nil
	}

	client, err := rabbit.NewClient(app.PublishingConn)
	if err != nil {
		return err
	}
	defer client.Close()

	body, err := json.Marshal(models.ThemeArtRequest{
		ThemeID:  themeID,
		ImageURL: imageURL,
	})
	if err != nil {
		return err
	}

	return client.Send(context.Background(), ThemeArtExchange, ThemeArtRequestQueue, amqp.Publishing{
		ContentType:  "application/json",
		ReplyTo:      app.themeArtResponseQueue(),
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
}

func (app *Application) HandleListMyCustomThemes(c echo.Context) error {
	themes, err := app.CustomThemeStore.GetMany("user_id = ?", currentUserID(c))
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, themes)
}

func (app *Application) HandleUpdateCustomTheme(c echo.Context) error {
	var req models.UpdateCustomThemeRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	themeID := c.Param("id")
	userID := currentUserID(c)

	theme, err := app.CustomThemeStore.GetOne("theme_id = ?", themeID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if theme.UserID != userID {
		return models.Forbidden("not your theme")
	}

	updateMap := map[string]any{}
	contentChanged := false

	if req.Name != nil {
		updateMap["name"] = *req.Name
		contentChanged = true
	}
	if req.Description != nil {
		updateMap["description"] = *req.Description
		contentChanged = true
	}
	if req.ImageURL != nil {
		updateMap["image_url"] = *req.ImageURL
		updateMap["image_key"] = ""
		contentChanged = true
	}
	if req.BackgroundColor != nil {
		updateMap["background_color"] = *req.BackgroundColor
		contentChanged = true
	}
	if req.TextColor != nil {
		updateMap["text_color"] = *req.TextColor
		contentChanged = true
	}
	if req.IsPublic != nil {
		updateMap["is_public"] = *req.IsPublic
	}

	if len(updateMap) == 0 {
		return models.BadRequest("nothing to update")
	}

	// Edits go back through moderation.
	if contentChanged {
		updateMap["moderation_status"] = models.ModerationPending
	}

	if err := app.CustomThemeStore.Update(updateMap, "theme_id = ?", themeID); err != nil {
		c.Logger().Error(err)
		return err
	}

	if req.ImageURL != nil {
		if err := app.publishThemeArtJob(themeID, *req.ImageURL); err != nil {
			c.Logger().Error(err)
		}
	}

	updated, err := app.CustomThemeStore.GetOne("theme_id = ?", themeID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (app *Application) HandleDeleteCustomTheme(c echo.Context) error {
	themeID := c.Param("id")
	userID := currentUserID(c)

	theme, err := app.CustomThemeStore.GetOne("theme_id = ?", themeID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if theme.UserID != userID {
		return models.Forbidden("not your theme")
	}

	if err := app.CustomThemeStore.Delete("theme_id = ?", themeID); err != nil {
		c.Logger().Error(err)
		return err
	}

	// Anyone pointing at the deleted theme falls back to the default.
	if err := app.UserStore.Update(map[string]any{"theme_id": nil}, "theme_id = ?", themeID); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "theme deleted"})
}

func (app *Application) HandleListPendingThemes(c echo.Context) error {
	themes, err := app.CustomThemeStore.GetMany("moderation_status = ?", models.ModerationPending)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, themes)
}

func (app *Application) HandleModerateTheme(c echo.Context) error {
	var req models.ModerateThemeRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	themeID := c.Param("id")

	if exists, err := app.CustomThemeStore.IsExists("theme_id = ?", themeID); err != nil {
		c.Logger().Error(err)
		return err
	} else if !exists {
		return models.NotFound("theme not found")
	}

	if err := app.CustomThemeStore.Update(
		map[string]any{"moderation_status": req.Status}, "theme_id = ?", themeID,
	); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "theme " + req.Status})
}
