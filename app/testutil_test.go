package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/vibeflo/vibeflo/models"
	"github.com/vibeflo/vibeflo/store"
	"golang.org/x/oauth2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type sentMail struct {
	kind     string
	to       string
	username string
	token    string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) SendVerification(to, username, token string) error {
	m.sent = append(m.sent, sentMail{kind: "verification", to: to, username: username, token: token})
	return nil
}

func (m *fakeMailer) SendPasswordReset(to, username, token string) error {
	m.sent = append(m.sent, sentMail{kind: "reset", to: to, username: username, token: token})
	return nil
}

func (m *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	if len(m.sent) == 0 {
		t.Fatal("expected at least one sent mail")
	}
	return m.sent[len(m.sent)-1]
}

type fakeTokenStore struct {
	tokens map[string]*oauth2.Token
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*oauth2.Token{}}
}

func (ts *fakeTokenStore) Save(_ context.Context, userID string, token *oauth2.Token) error {
	ts.tokens[userID] = token
	return nil
}

func (ts *fakeTokenStore) Get(_ context.Context, userID string) (*oauth2.Token, error) {
	return ts.tokens[userID], nil
}

func (ts *fakeTokenStore) Update(_ context.Context, userID string, token *oauth2.Token) error {
	if _, ok := ts.tokens[userID]; !ok {
		return fmt.Errorf("token to update not found")
	}
	ts.tokens[userID] = token
	return nil
}

func (ts *fakeTokenStore) Delete(_ context.Context, userID string) error {
	delete(ts.tokens, userID)
	return nil
}

func (ts *fakeTokenStore) Exists(_ context.Context, userID string) (bool, error) {
	_, ok := ts.tokens[userID]
	return ok, nil
}

func newTestApplication(t *testing.T) (*Application, *fakeMailer) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	mailer := &fakeMailer{}

	app := &Application{
		BaseURL:   "http://localhost:8080",
		JWTSecret: []byte("test-secret"),

		CookieStore: sessions.NewCookieStore([]byte("test-session-secret")),

		Mailer: mailer,

		UserStore:              store.NewUserStore(db),
		SettingsStore:          store.NewSettingsStore(db),
		ThemeStore:             store.NewThemeStore(db),
		CustomThemeStore:       store.NewCustomThemeStore(db),
		PlaylistStore:          store.NewPlaylistStore(db),
		SongStore:              store.NewSongStore(db),
		PlaylistSongStore:      store.NewPlaylistSongStore(db),
		PomodoroStore:          store.NewPomodoroStore(db),
		VerificationTokenStore: store.NewVerificationTokenStore(db),
		ResetTokenStore:        store.NewResetTokenStore(db),
		LoginAttemptStore:      store.NewLoginAttemptStore(db),
		TokenStore:             newFakeTokenStore(),

		themeArtChannels: make(map[string]chan models.ThemeArtResponse),
	}

	if err := app.migrateAndSeed(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return app, mailer
}

// newContext builds an echo context carrying an optional JSON body and an
// optional authenticated user.
func newContext(t *testing.T, method, target string, body any, userID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if userID != "" {
		c.Set("user_id", userID)
	}

	return c, rec
}

func appErrorStatus(t *testing.T, err error) int {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error")
	}

	appErr, ok := err.(*models.AppError)
	if !ok {
		t.Fatalf("expected *models.AppError, got %T: %v", err, err)
	}

	return appErr.Status
}

func registerUser(t *testing.T, app *Application, username, email, password string) *models.UserDBModel {
	t.Helper()

	c, rec := newContext(t, http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, "")

	if err := app.HandleRegister(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	user, err := app.UserStore.GetOne("email = ?", email)
	if err != nil {
		t.Fatalf("registered user not found: %v", err)
	}

	return user
}
