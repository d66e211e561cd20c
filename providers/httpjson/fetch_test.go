package httpjson

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const corpusJSON = `[{"volume":"1. A","themes":[]}]`

func gzipped(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(data)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func tarball(t *testing.T, files map[string]string) []byte {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, name := range []string{"README.txt", "data/corpus.json"} {
		body, ok := files[name]
		if !ok {
			continue
		}
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return gzipped(t, buf.Bytes())
}

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/corpus.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "shin-college/1.0" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(corpusJSON))
	})
	mux.HandleFunc("/corpus.json.gz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gzipped(t, []byte(corpusJSON)))
	})
	mux.HandleFunc("/corpus.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(tarball(t, map[string]string{"README.txt": "x", "data/corpus.json": corpusJSON}))
	})
	mux.HandleFunc("/empty.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(tarball(t, map[string]string{"README.txt": "x"}))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchFormats(t *testing.T) {
	srv := newServer(t)
	for _, path := range []string{"/corpus.json", "/corpus.json.gz", "/corpus.tar.gz"} {
		f := NewFetcher(srv.URL+path, zap.NewNop())
		data, err := f.Fetch(context.Background())
		require.NoError(t, err, path)
		require.JSONEq(t, corpusJSON, string(data), path)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := newServer(t)

	_, err := NewFetcher(srv.URL+"/missing", zap.NewNop()).Fetch(context.Background())
	require.ErrorContains(t, err, "status: 404")

	_, err = NewFetcher(srv.URL+"/empty.tar.gz", zap.NewNop()).Fetch(context.Background())
	require.ErrorContains(t, err, "no json file")
}
