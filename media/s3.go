package media

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store implements Store on top of an S3 bucket. Video uploads are probed
// for duration before being stored; image uploads are not.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
	prober *Prober
}

func NewS3Store(ctx context.Context) (*S3Store, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET environment variable not set")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: cfg.Region,
		prober: NewProber(),
	}, nil
}

var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

func isVideo(ext string) bool {
	return strings.HasPrefix(contentTypes[ext], "video/")
}

// Upload stores the local file under a fresh object key and returns its URL.
func (s *S3Store) Upload(ctx context.Context, localPath string) (*Asset, error) {
	ext := strings.ToLower(filepath.Ext(localPath))
	contentType, ok := contentTypes[ext]
	if !ok {
		contentType = "application/octet-stream"
	}

	asset := &Asset{}
	if isVideo(ext) {
		duration, err := s.prober.Duration(ctx, localPath)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", localPath, err)
		}
		asset.Duration = duration
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer file.Close()

	key := uuid.NewString() + ext
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	asset.URL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	log.Printf("Uploaded %s to S3: s3://%s/%s", filepath.Base(localPath), s.bucket, key)
	return asset, nil
}

// Delete removes the object behind an asset URL.
func (s *S3Store) Delete(ctx context.Context, assetURL string) error {
	key, err := s.objectKey(assetURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	log.Printf("Deleted from S3: s3://%s/%s", s.bucket, key)
	return nil
}

func (s *S3Store) objectKey(assetURL string) (string, error) {
	u, err := url.Parse(assetURL)
	if err != nil {
		return "", fmt.Errorf("invalid asset URL %q: %w", assetURL, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("asset URL %q has no object key", assetURL)
	}
	return key, nil
}
