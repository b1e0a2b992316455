package fetch

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "github.com/alexcpass/fraud-test-kaggle/internal/platform/http"
)

// Downloader pulls the transaction dataset from a remote URL onto disk so
// the pipeline can ingest it locally.
type Downloader struct {
	client *httpClient.Client
	logger zerolog.Logger
}

// Options holds options for creating a new Downloader
type Options struct {
	RequestTimeout time.Duration
	RequestsPerSec int
}

// New creates a dataset Downloader.
func New(opts Options) *Downloader {
	return &Downloader{
		client: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:        opts.RequestTimeout,
			RequestsPerSec: opts.RequestsPerSec,
		}),
		logger: log.With().Str("component", "fetch").Logger(),
	}
}

// Download fetches url and writes it to dest. The file is written to a
// temporary sibling first and renamed into place, so a failed download never
// clobbers an existing dataset.
func (d *Downloader) Download(ctx context.Context, url, dest string) error {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move dataset into place: %w", err)
	}

	d.logger.Info().Str("url", url).Str("dest", dest).Int64("bytes", written).Msg("dataset downloaded")
	return nil
}
