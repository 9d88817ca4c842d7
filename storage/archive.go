package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	appconfig "ytautomation/config"

	"go.uber.org/zap"
)

// ObjectStore is the subset of S3 the archive uses.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
}

// Archive keeps copies of rendered and uploaded clips under bucket/prefix.
type Archive struct {
	store  ObjectStore
	bucket string
	prefix string
	logger *zap.Logger
}

// NewArchive wraps store.
func NewArchive(store ObjectStore, bucket, prefix string, logger *zap.Logger) *Archive {
	return &Archive{
		store:  store,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// NewArchiveFromEnv returns nil when S3_BUCKET is unset.
func NewArchiveFromEnv(ctx context.Context, env appconfig.Env, logger *zap.Logger) (*Archive, error) {
	if env.S3Bucket == "" {
		return nil, nil
	}

	s3Client, err := NewS3(ctx, S3Config{
		Region:       env.S3Region,
		Profile:      env.S3Profile,
		UsePathStyle: env.S3UsePathStyle,
		Endpoint:     env.S3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3: %w", err)
	}

	logger.Info("Archive enabled", zap.String("bucket", env.S3Bucket), zap.String("prefix", env.S3Prefix))
	return NewArchive(s3Client, env.S3Bucket, env.S3Prefix, logger), nil
}

// Key returns the object key for id with extension ext (".webm").
func (a *Archive) Key(id, ext string) string {
	name := id + ext
	if a.prefix == "" {
		return name
	}
	return path.Join(a.prefix, name)
}

// Store writes body under Key(id, ext) and returns the key.
func (a *Archive) Store(ctx context.Context, id, ext string, body io.Reader) (string, error) {
	key := a.Key(id, ext)
	if err := a.store.Put(ctx, a.bucket, key, body, contentType(ext)); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}
	a.logger.Info("Archived", zap.String("bucket", a.bucket), zap.String("key", key))
	return key, nil
}

// StoreFile archives the file at p under its base name.
func (a *Archive) StoreFile(ctx context.Context, p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer f.Close()

	ext := filepath.Ext(p)
	return a.Store(ctx, strings.TrimSuffix(filepath.Base(p), ext), ext, f)
}

// Has reports whether Key(id, ext) is already archived.
func (a *Archive) Has(ctx context.Context, id, ext string) (bool, error) {
	return a.store.Exists(ctx, a.bucket, a.Key(id, ext))
}

func contentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".webm":
		return "video/webm"
	case ".mp4":
		return "video/mp4"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// WithTimeout bounds an archive call.
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, appconfig.ArchiveTimeout)
}
