package gcal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const primaryCalendarID = "primary"

// AuthError reports that the provider rejected the bearer credential.
type AuthError struct {
	Body string
}

func (e *AuthError) Error() string {
	return "google calendar rejected the access token"
}

// UnavailableError reports any other non-success provider response.
// Body carries the raw provider error for diagnostics.
type UnavailableError struct {
	StatusCode int
	Body       string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("google calendar request failed with status %d", e.StatusCode)
}

// Client fetches events from the caller's primary Google Calendar.
// The access token is supplied per request; the client itself holds no
// credentials.
type Client struct {
	logger *slog.Logger
	opts   []option.ClientOption
}

// NewClient creates a new calendar client. Extra options are appended
// to the per-request service options; tests use this to point the
// client at a local server.
func NewClient(logger *slog.Logger, opts ...option.ClientOption) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{logger: logger, opts: opts}
}

// FetchUpcoming returns events from the primary calendar starting at or
// after since, in the order the provider reports them. All result pages
// are followed.
func (c *Client) FetchUpcoming(ctx context.Context, accessToken string, since time.Time) ([]*calendar.Event, error) {
	opts := append([]option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})),
	}, c.opts...)

	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	var items []*calendar.Event
	pageToken := ""
	for {
		call := service.Events.List(primaryCalendarID).
			TimeMin(since.Format(time.RFC3339)).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, classifyError(err)
		}
		items = append(items, resp.Items...)
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	c.logger.Debug("fetched events from google calendar", "count", len(items))
	return items, nil
}

// classifyError maps provider responses onto the client's error types.
// 401 means the token was rejected; everything else non-success is an
// upstream availability problem.
func classifyError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusUnauthorized {
			return &AuthError{Body: gerr.Body}
		}
		return &UnavailableError{StatusCode: gerr.Code, Body: gerr.Body}
	}
	return fmt.Errorf("failed to retrieve events: %w", err)
}
