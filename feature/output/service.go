package output

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FoixaSoftware/fooocus/core/codec"
	"github.com/FoixaSoftware/fooocus/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// dateLayout names the per-day subdirectory a file is saved under.
const dateLayout = "2006-01-02"

// uploadContentType is declared for every upload, whatever the container.
const uploadContentType = "image/jpeg"

var errIsDirectory = errors.New("is a directory")

// Service manages generated image files on disk and in remote storage.
type Service struct {
	cfg    Config
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new output file service. The base output directory is
// created if it does not exist.
func NewService(cfg Config, client storage.Client, bucket string, logger *zap.Logger) (*Service, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", cfg.Dir, err)
	}
	return &Service{
		cfg:    cfg,
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Save encodes img into the current date bucket under name and the
// normalized extension, embedding meta into PNG output, and returns the
// forward-slash relative path of the new file. An empty name gets a
// generated UUID. An existing file at the same path is overwritten.
func (s *Service) Save(img image.Image, meta map[string]any, name, extension string) (string, error) {
	format := codec.NormalizeFormat(extension)
	if name == "" {
		name = uuid.NewString()
	}

	dateBucket := time.Now().Format(dateLayout)
	relPath := dateBucket + "/" + name + "." + string(format)

	dir := filepath.Join(s.cfg.Dir, dateBucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create date bucket %s: %w", dateBucket, err)
	}

	f, err := os.Create(filepath.Join(dir, name+"."+string(format)))
	if err != nil {
		return "", fmt.Errorf("create output file %s: %w", relPath, err)
	}
	if err := codec.Encode(f, img, format, meta); err != nil {
		f.Close()
		return "", fmt.Errorf("encode output file %s: %w", relPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close output file %s: %w", relPath, err)
	}

	s.logger.Debug("saved output file", zap.String("file", relPath))
	return relPath, nil
}

// Delete removes a saved file. A missing or non-regular target is reported
// as a warning and removal is still attempted; failures are logged, never
// returned. Directories are never removed, so an empty or date-only path
// cannot take out the base directory or a date bucket.
func (s *Service) Delete(relPath string) {
	target := s.resolve(relPath)
	fi, err := os.Stat(target)
	if err != nil || !fi.Mode().IsRegular() {
		s.logger.Warn("output file does not exist or is not a file", zap.String("file", relPath))
	}
	if err == nil && fi.IsDir() {
		s.logger.Error("delete output file failed", zap.String("file", relPath), zap.Error(errIsDirectory))
		return
	}
	if err := os.Remove(target); err != nil {
		s.logger.Error("delete output file failed", zap.String("file", relPath), zap.Error(err))
		return
	}
	s.logger.Info("deleted output file", zap.String("file", relPath))
}

// ToBytes re-encodes a saved file as PNG and returns the raw bytes. An empty
// path or a missing/non-regular target yields nil with no error; codec
// failures propagate.
func (s *Service) ToBytes(relPath string) ([]byte, error) {
	if relPath == "" {
		return nil, nil
	}
	target := s.resolve(relPath)
	fi, err := os.Stat(target)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, nil
	}

	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open output file %s: %w", relPath, err)
	}
	defer f.Close()

	img, err := codec.Decode(f)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := codec.Encode(&buf, img, codec.FormatPNG, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToBase64 is ToBytes with the result base64-encoded. Absent targets yield
// the empty string with no error.
func (s *Service) ToBase64(relPath string) (string, error) {
	data, err := s.ToBytes(relPath)
	if err != nil || data == nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Upload copies a saved file to the remote bucket under
// <userID>/<transactionID>/<relPath> and returns its public URL. Any empty
// input or a missing target yields the empty string with no error and no
// remote call; client failures propagate.
func (s *Service) Upload(ctx context.Context, relPath, transactionID, userID string) (string, error) {
	if relPath == "" || transactionID == "" || userID == "" {
		return "", nil
	}
	target := s.resolve(relPath)
	fi, err := os.Stat(target)
	if err != nil || !fi.Mode().IsRegular() {
		return "", nil
	}

	f, err := os.Open(target)
	if err != nil {
		return "", fmt.Errorf("open output file %s: %w", relPath, err)
	}
	defer f.Close()

	key := userID + "/" + transactionID + "/" + relPath
	_, err = s.client.PutObject(ctx, s.bucket, key, f, fi.Size(), minio.PutObjectOptions{
		ContentType: uploadContentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload output file %s: %w", relPath, err)
	}
	return s.client.PublicURL(s.bucket, key), nil
}

// ServeURL composes the static-server URL for a saved file. It performs no
// existence check; an empty path yields an empty URL.
func (s *Service) ServeURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return s.cfg.ServeBase + strings.ReplaceAll(relPath, "\\", "/")
}

// EnsureBucket checks that the remote bucket exists and creates it when it
// does not. Intended to run once at startup.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *Service) resolve(relPath string) string {
	return filepath.Join(s.cfg.Dir, filepath.FromSlash(relPath))
}
