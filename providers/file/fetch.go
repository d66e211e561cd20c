package file

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Fetcher liest den Korpus aus einer lokalen Datei.
type Fetcher struct {
	Path   string
	Logger *zap.Logger
}

// NewFetcher erstellt einen neuen Datei-Fetcher.
func NewFetcher(path string, logger *zap.Logger) *Fetcher {
	return &Fetcher{Path: path, Logger: logger}
}

func (f *Fetcher) Name() string { return "file" }

func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.Logger.Debug("Lese Korpus-Datei.", zap.String("path", f.Path))
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}
	return data, nil
}
