package httpjson

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// customTransport fügt jeder Anfrage einen User-Agent-Header hinzu.
type customTransport struct {
	Transport http.RoundTripper
}

func (t *customTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "shin-college/1.0")
	return t.Transport.RoundTrip(req)
}

var httpClient = &http.Client{
	Timeout:   60 * time.Second,
	Transport: &customTransport{Transport: http.DefaultTransport},
}

// Fetcher lädt den Korpus per HTTP. Neben reinem JSON werden .json.gz und
// .tar.gz (erste .json-Datei im Archiv) verstanden.
type Fetcher struct {
	URL    string
	Client *http.Client
	Logger *zap.Logger
}

// NewFetcher erstellt einen neuen HTTP-Fetcher.
func NewFetcher(url string, logger *zap.Logger) *Fetcher {
	return &Fetcher{URL: url, Client: httpClient, Logger: logger}
}

func (f *Fetcher) Name() string { return "http" }

func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	log := f.Logger.With(zap.String("url", f.URL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("corpus request failed with status: %d", resp.StatusCode)
	}

	link := strings.ToLower(f.URL)
	switch {
	case strings.HasSuffix(link, ".tar.gz") || strings.HasSuffix(link, ".tgz"):
		log.Debug("Tar.gz-Archiv erkannt, starte Extraktion.")
		return extractJSONFromTarGz(resp.Body)
	case strings.HasSuffix(link, ".gz") || resp.Header.Get("Content-Type") == "application/gzip":
		log.Debug("Gzip erkannt.")
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(gz)
	}
	return io.ReadAll(resp.Body)
}

func extractJSONFromTarGz(r io.Reader) ([]byte, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Typeflag == tar.TypeReg && strings.HasSuffix(strings.ToLower(header.Name), ".json") {
			return io.ReadAll(tr)
		}
	}
	return nil, fmt.Errorf("no json file in archive")
}
