package worker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/vibeflo/vibeflo/models"
)

const (
	maxImageBytes    = 10 << 20
	presignedLinkTTL = 7 * 24 * time.Hour
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type ThemeArtService interface {
	Process(ctx context.Context, req models.ThemeArtRequest) (*models.ThemeArtResponse, error)
}

type themeArtService struct {
	minioClient *minio.Client
	bucket      string
	httpClient  *http.Client
}

func NewThemeArtService(minioClient *minio.Client, bucket string, httpClient *http.Client) ThemeArtService {
	return &themeArtService{
		minioClient: minioClient,
		bucket:      bucket,
		httpClient:  httpClient,
	}
}

// Process downloads the submitted image, stores it in the bucket and
// returns a presigned GET URL for it.
func (svc *themeArtService) Process(ctx context.Context, req models.ThemeArtRequest) (*models.ThemeArtResponse, error) {
	data, contentType, err := svc.fetchImage(ctx, req.ImageURL)
	if err != nil {
		return nil, err
	}

	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("unsupported image type %q", contentType)
	}

	key := fmt.Sprintf("themes/%s%s", req.ThemeID, ext)

	if _, err := svc.minioClient.PutObject(ctx, svc.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("store theme art: %w", err)
	}

	url, err := svc.minioClient.PresignedGetObject(ctx, svc.bucket, key, presignedLinkTTL, nil)
	if err != nil {
		return nil, fmt.Errorf("presign theme art: %w", err)
	}

	return &models.ThemeArtResponse{
		ThemeID:  req.ThemeID,
		ImageURL: url.String(),
		ImageKey: key,
		Success:  true,
	}, nil
}

func (svc *themeArtService) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := svc.httpClient.Do(request)
	if err != nil {
		return nil, "", fmt.Errorf("fetch theme art: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch theme art: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read theme art: %w", err)
	}

	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("theme art larger than %d bytes", maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if _, ok := imageExtensions[contentType]; !ok {
		contentType = http.DetectContentType(data)
	}

	return data, contentType, nil
}
