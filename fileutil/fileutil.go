// Package fileutil checks, deletes and downloads files used by the campaigns.
package fileutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/natefinch/atomic"
)

// DefaultExistTimeout is how long DoesFileExist waits by default.
const DefaultExistTimeout = 5 * time.Second

const pollInterval = 100 * time.Millisecond

// DoesFileExist reports whether path exists, polling until it appears or timeout elapses.
func DoesFileExist(path string, timeout time.Duration) bool {
	exists := func() error {
		_, err := os.Stat(path)
		return err
	}
	if timeout <= 0 {
		return exists() == nil
	}

	b := backoff.NewConstantBackOff(pollInterval)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return backoff.Retry(exists, backoff.WithContext(b, ctx)) == nil
}

// DeleteFile removes path. A missing file is not an error.
func DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	return nil
}

// Downloader fetches files over HTTP and retries transient failures.
type Downloader struct {
	Client *http.Client
	// InitialInterval is the first retry delay.
	InitialInterval time.Duration
	// MaxElapsedTime stops retrying.
	MaxElapsedTime time.Duration
}

// NewDownloader creates a Downloader sending requests through transport.
// A nil transport uses http.DefaultTransport.
func NewDownloader(transport http.RoundTripper) *Downloader {
	return &Downloader{
		Client:          &http.Client{Timeout: 2 * time.Minute, Transport: transport},
		InitialInterval: 500 * time.Millisecond,
		MaxElapsedTime:  time.Minute,
	}
}

// DefaultDownloader is used by DownloadFile.
var DefaultDownloader = NewDownloader(nil)

// DownloadFile downloads url to dest with DefaultDownloader.
func DownloadFile(ctx context.Context, url, dest string) error {
	return DefaultDownloader.Download(ctx, url, dest)
}

// Download fetches url and atomically writes the body to dest.
// Server errors and network failures are retried with exponential backoff, client errors are not.
func (d *Downloader) Download(ctx context.Context, url, dest string) error {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	b := backoff.NewExponentialBackOff()
	if d.InitialInterval > 0 {
		b.InitialInterval = d.InitialInterval
	}
	b.MaxElapsedTime = d.MaxElapsedTime

	var body []byte
	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("requesting %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			err := fmt.Errorf("requesting %s: unexpected status %s", url, resp.Status)
			if resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading %s: %w", url, err)
		}
		return nil
	}

	if err := backoff.Retry(fetch, backoff.WithContext(b, ctx)); err != nil {
		return err
	}

	if err := atomic.WriteFile(dest, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}
