package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	errUnexpected   = errors.New("unexpected status code")
	errNoHTTPClient = errors.New("http client not configured")
)

// doRequest executes a single GET against the provider and returns the raw
// response body. One attempt only: a failure is reported to the caller, which
// falls back to defaults and waits for the next cycle.
func doRequest(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}
