package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/vibeflo/vibeflo/models"
)

func startSession(t *testing.T, app *Application, userID, task, startedAt string) models.PomodoroSessionDBModel {
	t.Helper()

	c, rec := newContext(t, http.MethodPost, "/api/pomodoro/sessions", models.StartSessionRequest{
		Task:      task,
		StartedAt: startedAt,
	}, userID)
	if err := app.HandleStartSession(c); err != nil {
		t.Fatalf("start session failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var session models.PomodoroSessionDBModel
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}

	return session
}

func completeSession(t *testing.T, app *Application, userID, sessionID string) models.PomodoroSessionDBModel {
	t.Helper()

	c, rec := newContext(t, http.MethodPut, "/api/pomodoro/sessions/"+sessionID+"/complete", nil, userID)
	c.SetParamNames("id")
	c.SetParamValues(sessionID)
	if err := app.HandleCompleteSession(c); err != nil {
		t.Fatalf("complete session failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var session models.PomodoroSessionDBModel
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}

	return session
}

func TestStartAndCompleteSession(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")

	started := startSession(t, app, user.UserID, "write report", time.Now().Add(-25*time.Minute).Format(time.RFC3339))
	if started.Completed {
		t.Error("new session should not be completed")
	}

	done := completeSession(t, app, user.UserID, started.SessionID)
	if !done.Completed {
		t.Error("session should be completed")
	}
	if done.EndedAt == nil {
		t.Error("ended_at should be set")
	}
	if done.DurationSeconds < 24*60 {
		t.Errorf("duration should cover the elapsed time, got %d", done.DurationSeconds)
	}

	// A second complete is rejected.
	c, _ := newContext(t, http.MethodPut, "/api/pomodoro/sessions/"+started.SessionID+"/complete", nil, user.UserID)
	c.SetParamNames("id")
	c.SetParamValues(started.SessionID)
	if status := appErrorStatus(t, app.HandleCompleteSession(c)); status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func TestStartSessionBadTimestamp(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")

	c, _ := newContext(t, http.MethodPost, "/api/pomodoro/sessions", models.StartSessionRequest{
		StartedAt: "yesterday at noon",
	}, user.UserID)
	if status := appErrorStatus(t, app.HandleStartSession(c)); status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func TestCompleteSomeoneElsesSession(t *testing.T) {
	app, _ := newTestApplication(t)

	owner := registerUser(t, app, "sam", "sam@example.com", "correct-horse")
	stranger := registerUser(t, app, "frodo", "frodo@example.com", "correct-horse")

	session := startSession(t, app, owner.UserID, "", "")

	c, _ := newContext(t, http.MethodPut, "/api/pomodoro/sessions/"+session.SessionID+"/complete", nil, stranger.UserID)
	c.SetParamNames("id")
	c.SetParamValues(session.SessionID)
	if err := app.HandleCompleteSession(c); err == nil {
		t.Error("completing another user's session should fail")
	}
}

func TestListSessionsLimit(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")

	for i := 0; i < 5; i++ {
		startSession(t, app, user.UserID, "", "")
	}

	c, rec := newContext(t, http.MethodGet, "/api/pomodoro/sessions?limit=3", nil, user.UserID)
	if err := app.HandleListSessions(c); err != nil {
		t.Fatalf("list sessions failed: %v", err)
	}

	var sessions []models.PomodoroSessionDBModel
	if err := json.Unmarshal(rec.Body.Bytes(), &sessions); err != nil {
		t.Fatalf("failed to decode sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("expected 3 sessions, got %d", len(sessions))
	}
}

func TestDeleteSession(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")
	session := startSession(t, app, user.UserID, "", "")

	c, rec := newContext(t, http.MethodDelete, "/api/pomodoro/sessions/"+session.SessionID, nil, user.UserID)
	c.SetParamNames("id")
	c.SetParamValues(session.SessionID)
	if err := app.HandleDeleteSession(c); err != nil {
		t.Fatalf("delete session failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	sessions, err := app.PomodoroStore.GetRecent(user.UserID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("session should be gone, got %d", len(sessions))
	}
}

func TestPomodoroStats(t *testing.T) {
	app, _ := newTestApplication(t)

	user := registerUser(t, app, "sam", "sam@example.com", "correct-horse")

	// Two completed today, one still running, one completed last week.
	first := startSession(t, app, user.UserID, "", time.Now().Add(-2*time.Minute).Format(time.RFC3339))
	completeSession(t, app, user.UserID, first.SessionID)

	second := startSession(t, app, user.UserID, "", time.Now().Add(-time.Minute).Format(time.RFC3339))
	completeSession(t, app, user.UserID, second.SessionID)

	startSession(t, app, user.UserID, "", "")

	lastWeek := time.Now().AddDate(0, 0, -7)
	if err := app.PomodoroStore.Create(models.PomodoroSessionDBModel{
		SessionID:       "old-session",
		UserID:          user.UserID,
		StartedAt:       lastWeek,
		EndedAt:         &lastWeek,
		DurationSeconds: 1500,
		Completed:       true,
	}); err != nil {
		t.Fatal(err)
	}

	c, rec := newContext(t, http.MethodGet, "/api/pomodoro/stats", nil, user.UserID)
	if err := app.HandlePomodoroStats(c); err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	var stats models.PomodoroStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}

	if stats.TotalSessions != 4 {
		t.Errorf("expected 4 total sessions, got %d", stats.TotalSessions)
	}
	if stats.CompletedSessions != 3 {
		t.Errorf("expected 3 completed sessions, got %d", stats.CompletedSessions)
	}
	if stats.SessionsToday != 3 {
		t.Errorf("expected 3 sessions today, got %d", stats.SessionsToday)
	}
	if stats.TotalFocusSeconds < 1500 {
		t.Errorf("focus time should include the old session, got %d", stats.TotalFocusSeconds)
	}
}
