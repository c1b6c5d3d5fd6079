package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/gorilla/websocket"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vibeflo/vibeflo/models"
	"github.com/vibeflo/vibeflo/rabbit"
	"github.com/vibeflo/vibeflo/store"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	ThemeArtExchange     = "theme-art"
	ThemeArtRequestQueue = "theme-art-request"
)

type Application struct {
	BaseURL   string
	JWTSecret []byte

	CookieStore *sessions.CookieStore

	SpotifyRedirectPath string
	Authenticator       *spotifyauth.Authenticator

	YouTube *youtube.Service

	MinioClient     *minio.Client
	MinioBucketName string

	Mailer Mailer

	UserStore              store.UserStore
	SettingsStore          store.SettingsStore
	ThemeStore             store.ThemeStore
	CustomThemeStore       store.CustomThemeStore
	PlaylistStore          store.PlaylistStore
	SongStore              store.SongStore
	PlaylistSongStore      store.PlaylistSongStore
	PomodoroStore          store.PomodoroStore
	VerificationTokenStore store.VerificationTokenStore
	ResetTokenStore        store.ResetTokenStore
	LoginAttemptStore      store.LoginAttemptStore
	TokenStore             store.TokenStore

	ThemeArtResponseClient *rabbit.Client
	PublishingConn         *amqp.Connection
	RabbitMQInstanceID     string

	themeArtMu       sync.Mutex
	themeArtChannels map[string]chan models.ThemeArtResponse

	Upgrader websocket.Upgrader
}

func NewApplication() (*Application, error) {
	db := createSQLDB()

	rc := createRedisClient()

	app := &Application{
		BaseURL:   os.Getenv("BASE_URL"),
		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		CookieStore: sessions.NewCookieStore([]byte(os.Getenv("SECRET"))),

		SpotifyRedirectPath: os.Getenv("SPOTIFY_REDIRECT_PATH"),
		Authenticator: spotifyauth.New(
			spotifyauth.WithRedirectURL(fmt.Sprintf("%s%s", os.Getenv("BASE_URL"), os.Getenv("SPOTIFY_REDIRECT_PATH"))),
			spotifyauth.WithScopes(
				spotifyauth.ScopeUserReadPrivate,
				spotifyauth.ScopePlaylistReadPrivate,
			),
			spotifyauth.WithClientID(os.Getenv("SPOTIFY_CLIENT_ID")),
			spotifyauth.WithClientSecret(os.Getenv("SPOTIFY_CLIENT_SECRET")),
		),

		Mailer: NewSMTPMailer(),

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
		TokenStore:             store.NewTokenStore(rc, "spotify_tokens"),

		themeArtChannels: make(map[string]chan models.ThemeArtResponse),

		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	if err := app.migrateAndSeed(); err != nil {
		return nil, err
	}

	if key := os.Getenv("YT_API_KEY"); key != "" {
		ytService, err := youtube.NewService(context.Background(), option.WithAPIKey(key))
		if err != nil {
			return nil, err
		}
		app.YouTube = ytService
	}

	minioClient, err := minio.New(os.Getenv("MINIO_SERVER_ADDR"), &minio.Options{
		Creds: credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
	})
	if err != nil {
		return nil, err
	}
	app.MinioClient = minioClient
	app.MinioBucketName = os.Getenv("MINIO_BUCKET_NAME")

	if err := app.connectRabbitMQ(); err != nil {
		return nil, err
	}

	return app, nil
}

// connectRabbitMQ wires the theme art pipeline: jobs are published to the
// shared request queue, replies come back on a per-instance response queue.
// Publishing and consuming use separate connections.
func (app *Application) connectRabbitMQ() error {
	user := os.Getenv("RABBITMQ_USER")
	password := os.Getenv("RABBITMQ_PASSWORD")
	vhost := os.Getenv("RABBITMQ_VHOST")
	addr := os.Getenv("RABBITMQ_ADDR")

	app.RabbitMQInstanceID = uuid.NewString()

	consumingConn, err := rabbit.Connect(user, password, addr, vhost)
	if err != nil {
		return err
	}

	publishingConn, err := rabbit.Connect(user, password, addr, vhost)
	if err != nil {
		return err
	}
	app.PublishingConn = publishingConn

	if _, err := rabbit.NewQueueClient(publishingConn, ThemeArtRequestQueue, true, true); err != nil {
		return err
	}

	responseClient, err := rabbit.NewQueueClient(consumingConn, app.themeArtResponseQueue(), true, true)
	if err != nil {
		return err
	}
	app.ThemeArtResponseClient = responseClient

	return nil
}

func (app *Application) themeArtResponseQueue() string {
	return "theme-art-response-" + app.RabbitMQInstanceID
}

// RegisterThemeArtChannel returns the channel a websocket waits on for the
// outcome of the given theme's art job.
func (app *Application) RegisterThemeArtChannel(themeID string) chan models.ThemeArtResponse {
	app.themeArtMu.Lock()
	defer app.themeArtMu.Unlock()

	ch, ok := app.themeArtChannels[themeID]
	if !ok {
		ch = make(chan models.ThemeArtResponse, 1)
		app.themeArtChannels[themeID] = ch
	}

	return ch
}

func (app *Application) RemoveThemeArtChannel(themeID string) {
	app.themeArtMu.Lock()
	defer app.themeArtMu.Unlock()

	delete(app.themeArtChannels, themeID)
}

// DispatchThemeArt hands a worker response to the waiting websocket, if any.
func (app *Application) DispatchThemeArt(resp models.ThemeArtResponse) {
	app.themeArtMu.Lock()
	ch, ok := app.themeArtChannels[resp.ThemeID]
	app.themeArtMu.Unlock()

	if ok {
		select {
		case ch <- resp:
		default:
		}
	}
}
