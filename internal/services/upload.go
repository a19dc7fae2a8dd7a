package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/emberlane/emberlane-backend/internal/platform/logger"
)

// maxImageWidth is the widest image the site ever renders; larger uploads are
// scaled down before they are stored.
const maxImageWidth = 1600

// UploadService stores an admin-uploaded image and returns the public URL the
// content records should reference.
type UploadService interface {
	SaveImage(ctx context.Context, filename string, data []byte) (string, error)
}

// normalizeImage scales the image down to maxImageWidth when needed and
// re-encodes it in its original format. Formats imaging cannot decode are
// stored as uploaded.
func normalizeImage(filename string, data []byte) []byte {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	if img.Bounds().Dx() <= maxImageWidth {
		return data
	}
	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return data
	}
	resized := imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return data
	}
	return buf.Bytes()
}

// objectName builds a collision-free stored name that keeps the original
// extension so content type detection keeps working downstream.
func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}

// localUploader writes into a directory served as static files under
// /uploads.
type localUploader struct {
	log *logger.Logger
	dir string
}

func NewLocalUploader(log *logger.Logger, dir string) (UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localUploader{
		log: log.With("service", "LocalUploader", "dir", dir),
		dir: dir,
	}, nil
}

func (u *localUploader) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	name := objectName(filename)
	path := filepath.Join(u.dir, name)
	if err := os.WriteFile(path, normalizeImage(filename, data), 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	u.log.Info("Image stored locally", "file", name)
	return "/uploads/" + name, nil
}

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	BaseURL   string
}

type s3Uploader struct {
	log     *logger.Logger
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Uploader(ctx context.Context, log *logger.Logger, cfg S3Config) (UploadService, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required for s3 uploads")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required for s3 uploads")
	}
	if cfg.Region == "" {
		cfg.Region = "ap-southeast-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &s3Uploader{
		log:     log.With("service", "S3Uploader", "bucket", cfg.Bucket),
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

func (u *s3Uploader) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	name := objectName(filename)
	body := normalizeImage(filename, data)

	contentType := mimeTypeForExt(filepath.Ext(name))
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String("uploads/" + name),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}
	u.log.Info("Image stored in S3", "key", "uploads/"+name)
	return u.baseURL + "/uploads/" + name, nil
}

func mimeTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
