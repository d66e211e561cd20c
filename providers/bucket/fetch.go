package bucket

import (
	"context"

	"go.uber.org/zap"

	"shin-college/storage"
)

// Fetcher lädt den Korpus als Objekt aus einem S3-Bucket.
type Fetcher struct {
	Client storage.ObjectGetter
	Bucket string
	Key    string
	Logger *zap.Logger
}

// NewFetcher erstellt einen neuen S3-Fetcher.
func NewFetcher(client storage.ObjectGetter, bucket, key string, logger *zap.Logger) *Fetcher {
	return &Fetcher{Client: client, Bucket: bucket, Key: key, Logger: logger}
}

func (f *Fetcher) Name() string { return "s3" }

func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	f.Logger.Debug("Lade Korpus aus S3.", zap.String("bucket", f.Bucket), zap.String("key", f.Key))
	return storage.DownloadFile(ctx, f.Client, f.Bucket, f.Key)
}
