package editor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"

	"github.com/rise-and-shine/docstore/filestore"
)

const (
	fetchAttempts  = 3
	fetchDelay     = 500 * time.Millisecond
	fetchTimeout   = 30 * time.Second
	fetchSizeLimit = 200 << 20
)

// DocumentFetcher downloads the document bytes the editor points a save
// callback at.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches documents over HTTP with bounded retries on
// transient failures. Client errors from the editor's document server are
// not retried.
type HTTPFetcher struct {
	client *http.Client
}

var _ DocumentFetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var data []byte

	err := retry.Do(
		func() error {
			var err error
			data, err = f.fetchOnce(ctx, url)
			return err
		},
		retry.Attempts(fetchAttempts),
		retry.Delay(fetchDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.Context(ctx),
	)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return data, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"transient": "true"}))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e := errx.New(
			fmt.Sprintf("unexpected document status: %s", resp.Status),
			errx.WithDetails(errx.D{"status_code": fmt.Sprint(resp.StatusCode)}),
		)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, errx.Wrap(e, errx.WithDetails(errx.D{"transient": "true"}))
		}
		return nil, e
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, fetchSizeLimit+1))
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"transient": "true"}))
	}
	if len(data) > fetchSizeLimit {
		return nil, errx.New("document exceeds size limit", errx.WithCode(filestore.CodeFileTooLarge))
	}

	return data, nil
}

func isTransient(err error) bool {
	return errx.AsErrorX(err).Details()["transient"] == "true"
}
