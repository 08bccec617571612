package pubsub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseBodyLen bounds the part of a failing endpoint's response that
// ends up in the returned error.
const maxResponseBodyLen = 512

type client struct {
	http *http.Client
}

func newHTTPClient(requestTimeout time.Duration) *client {
	return &client{&http.Client{Timeout: requestTimeout}}
}

// post delivers the JSON payload to endpoint. Any response other than
// 200 OK is an error. The request is aborted as soon as ctx is done.
func (c *client) post(
	ctx context.Context, endpoint, payload string, header map[string]string,
) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, endpoint, strings.NewReader(payload),
	)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range header {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		//nolint
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyLen))
	return fmt.Errorf(
		"%w: status %d: %s", ErrEndpointFailure, resp.StatusCode, body,
	)
}
