package fileutil_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/networkteam/shopcheck/fileutil"
)

func TestDoesFileExist(t *testing.T) {
	dir := t.TempDir()

	assert.True(t, fileutil.DoesFileExist(dir, 0))
	assert.False(t, fileutil.DoesFileExist(filepath.Join(dir, "missing"), 0))
	assert.False(t, fileutil.DoesFileExist(filepath.Join(dir, "missing"), 200*time.Millisecond))
}

func TestDoesFileExist_WaitsForFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.zip")

	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = os.WriteFile(path, []byte("zip"), 0o644)
	}()

	assert.True(t, fileutil.DoesFileExist(path, 5*time.Second))
}

func TestDeleteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "module.zip")
	require.NoError(t, os.WriteFile(path, []byte("zip"), 0o644))

	require.NoError(t, fileutil.DeleteFile(path))
	assert.NoFileExists(t, path)

	assert.NoError(t, fileutil.DeleteFile(path))
}

func newDownloader() *fileutil.Downloader {
	return &fileutil.Downloader{
		InitialInterval: 10 * time.Millisecond,
		MaxElapsedTime:  2 * time.Second,
	}
}

func TestDownloader_Download_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("PK module"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "module.zip")
	err := newDownloader().Download(context.Background(), srv.URL+"/ps_facetedsearch.zip", dest)
	require.NoError(t, err)

	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "PK module", string(content))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDownloader_Download_NotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "module.zip")
	err := newDownloader().Download(context.Background(), srv.URL, dest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load())
	assert.NoFileExists(t, dest)
}

func TestDownloader_Download_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := newDownloader().Download(ctx, srv.URL, filepath.Join(t.TempDir(), "module.zip"))
	assert.Error(t, err)
}
