package worker

import (
	"net/http"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vibeflo/vibeflo/rabbit"
)

const (
	ThemeArtExchange     = "theme-art"
	ThemeArtRequestQueue = "theme-art-request"
)

type Application struct {
	MinioClient     *minio.Client
	MinioBucketName string

	ConsumingClient *rabbit.Client
	PublishingConn  *amqp.Connection

	Service ThemeArtService
}

func NewApplication() (*Application, error) {
	minioClient, err := minio.New(os.Getenv("MINIO_SERVER_ADDR"), &minio.Options{
		Creds: credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
	})
	if err != nil {
		return nil, err
	}

	bucket := os.Getenv("MINIO_BUCKET_NAME")

	user := os.Getenv("RABBITMQ_USER")
	password := os.Getenv("RABBITMQ_PASSWORD")
	vhost := os.Getenv("RABBITMQ_VHOST")
	addr := os.Getenv("RABBITMQ_ADDR")

	// Separate connections for consuming and publishing; each in-flight
	// job publishes its reply on a channel of its own.
	consumingConn, err := rabbit.Connect(user, password, addr, vhost)
	if err != nil {
		return nil, err
	}

	consumingClient, err := rabbit.NewQueueClient(consumingConn, ThemeArtRequestQueue, true, true)
	if err != nil {
		return nil, err
	}

	publishingConn, err := rabbit.Connect(user, password, addr, vhost)
	if err != nil {
		return nil, err
	}

	return &Application{
		MinioClient:     minioClient,
		MinioBucketName: bucket,
		ConsumingClient: consumingClient,
		PublishingConn:  publishingConn,
		Service: NewThemeArtService(minioClient, bucket, &http.Client{
			Timeout: 30 * time.Second,
		}),
	}, nil
}
