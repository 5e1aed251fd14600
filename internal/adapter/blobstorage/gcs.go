package blobstorage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/maribelsv/showcase/internal/core/port"
)

var _ port.ImageSaver = (*GCSImageStore)(nil)

// A GCSImageStore uploads product images to a bucket and hands back
// the public download URL stored on the product document.
type GCSImageStore struct {
	cl     *storage.Client
	bucket string
	folder string
}

func NewGCSImageStore(
	ctx context.Context, bucket, credentialsFile string,
) (GCSImageStore, error) {
	const op = "NewGCSImageStore"

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	cl, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return GCSImageStore{}, fmt.Errorf("%s: %w", op, err)
	}

	return GCSImageStore{cl: cl, bucket: bucket, folder: "productos"}, nil
}

func (s GCSImageStore) SaveImage(
	ctx context.Context, filename, contentType string, data io.Reader,
) (string, error) {
	const op = "GCSImageStore.SaveImage"

	// Randomized object name, the original extension is kept.
	object := s.folder + "/" + uuid.NewString() + path.Ext(filename)

	w := s.cl.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%s: failed to upload %q: %w", op, object, err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%s: failed to close writer for %q: %w", op, object, err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, object)
	return url, nil
}

func (s GCSImageStore) Close() {
	const op = "GCSImageStore.Close"
	log := slog.With("op", op)

	if err := s.cl.Close(); err != nil {
		log.Error("failed to close storage client", "err", err)
		return
	}
	log.Info("storage client is closed")
}
