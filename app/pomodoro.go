package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/vibeflo/vibeflo/models"
)

func (app *Application) HandleStartSession(c echo.Context) error {
	var req models.StartSessionRequest
	if err := c.Bind(&req); err != nil {
		return models.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	startedAt := time.Now()
	if req.StartedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.StartedAt)
		if err != nil {
			return models.BadRequest("started_at must be RFC3339")
		}
		startedAt = parsed
	}

	session := models.PomodoroSessionDBModel{
		SessionID: uuid.NewString(),
		UserID:    currentUserID(c),
		Task:      req.Task,
		StartedAt: startedAt,
	}

	if err := app.PomodoroStore.Create(session); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusCreated, session)
}

func (app *Application) HandleCompleteSession(c echo.Context) error {
	session, err := app.PomodoroStore.GetOne(
		"session_id = ? AND user_id = ?", c.Param("id"), currentUserID(c),
	)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	if session.Completed {
		return models.BadRequest("session already completed")
	}

	endedAt := time.Now()
	duration := int(endedAt.Sub(session.StartedAt).Seconds())
	if duration < 0 {
		duration = 0
	}

	if err := app.PomodoroStore.Update(map[string]any{
		"ended_at":         endedAt,
		"duration_seconds": duration,
		"completed":        true,
	}, "session_id = ?", session.SessionID); err != nil {
		c.Logger().Error(err)
		return err
	}

	updated, err := app.PomodoroStore.GetOne("session_id = ?", session.SessionID)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (app *Application) HandleListSessions(c echo.Context) error {
	limit := intQueryParam(c, "limit", 20, 100)

	sessions, err := app.PomodoroStore.GetRecent(currentUserID(c), limit)
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, sessions)
}

func (app *Application) HandleDeleteSession(c echo.Context) error {
	userID := currentUserID(c)

	if _, err := app.PomodoroStore.GetOne(
		"session_id = ? AND user_id = ?", c.Param("id"), userID,
	); err != nil {
		c.Logger().Error(err)
		return err
	}

	if err := app.PomodoroStore.Delete(
		"session_id = ? AND user_id = ?", c.Param("id"), userID,
	); err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, models.MessageResponse{Message: "session deleted"})
}

func (app *Application) HandlePomodoroStats(c echo.Context) error {
	stats, err := app.PomodoroStore.Stats(currentUserID(c), time.Now().UTC())
	if err != nil {
		c.Logger().Error(err)
		return err
	}

	return c.JSON(http.StatusOK, stats)
}
