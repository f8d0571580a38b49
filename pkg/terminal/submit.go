package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxResponseBody bounds how much of the response Submit keeps.
const maxResponseBody = 1 << 20

// Response is what the action route answered.
type Response struct {
	StatusCode int
	// Location is set when the route redirected, typically back to the
	// change list after a successful run.
	Location string
	Body     string
}

// Succeeded reports a 2xx answer or a redirect, which is what a button sends
// once its callback ran.
func (r Response) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

// Submit posts values to actionURL. Redirects are not followed so the caller
// sees the button's own answer.
func Submit(ctx context.Context, client *http.Client, actionURL string, values url.Values) (Response, error) {
	if strings.TrimSpace(actionURL) == "" {
		return Response{}, errors.New("terminal: missing action url")
	}
	if client == nil {
		client = http.DefaultClient
	}
	noRedirect := *client
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, actionURL, strings.NewReader(values.Encode()))
	if err != nil {
		return Response{}, fmt.Errorf("terminal: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := noRedirect.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("terminal: submit: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return Response{}, fmt.Errorf("terminal: read response: %w", err)
	}
	return Response{
		StatusCode: resp.StatusCode,
		Location:   resp.Header.Get("Location"),
		Body:       string(body),
	}, nil
}
