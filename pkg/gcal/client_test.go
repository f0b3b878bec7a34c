package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(nil, option.WithEndpoint(srv.URL))
}

// TestFetchUpcoming_Success tests the happy path, the bearer header
// and the timeMin bound.
func TestFetchUpcoming_Success(t *testing.T) {
	since := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization header = %q, want %q", got, "Bearer tok-123")
		}
		if got := r.URL.Query().Get("timeMin"); got != since.Format(time.RFC3339) {
			t.Errorf("timeMin = %q, want %q", got, since.Format(time.RFC3339))
		}
		json.NewEncoder(w).Encode(&calendar.Events{
			Items: []*calendar.Event{
				{Id: "ev-1", Summary: "Standup"},
				{Id: "ev-2", Summary: "Review"},
			},
		})
	})

	items, err := client.FetchUpcoming(context.Background(), "tok-123", since)
	if err != nil {
		t.Fatalf("FetchUpcoming() failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Id != "ev-1" || items[1].Id != "ev-2" {
		t.Errorf("items out of order: %q, %q", items[0].Id, items[1].Id)
	}
}

// TestFetchUpcoming_FollowsPages tests that all result pages are
// fetched.
func TestFetchUpcoming_FollowsPages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("pageToken") {
		case "":
			json.NewEncoder(w).Encode(&calendar.Events{
				Items:         []*calendar.Event{{Id: "page1"}},
				NextPageToken: "next",
			})
		case "next":
			json.NewEncoder(w).Encode(&calendar.Events{
				Items: []*calendar.Event{{Id: "page2"}},
			})
		default:
			t.Errorf("unexpected pageToken %q", r.URL.Query().Get("pageToken"))
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	items, err := client.FetchUpcoming(context.Background(), "tok", time.Now())
	if err != nil {
		t.Fatalf("FetchUpcoming() failed: %v", err)
	}
	if len(items) != 2 || items[0].Id != "page1" || items[1].Id != "page2" {
		t.Fatalf("got %d items %+v, want page1 then page2", len(items), items)
	}
}

// TestFetchUpcoming_AuthRejected tests the 401 mapping.
func TestFetchUpcoming_AuthRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	})

	_, err := client.FetchUpcoming(context.Background(), "bad-token", time.Now())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("FetchUpcoming() error = %v, want *AuthError", err)
	}
}

// TestFetchUpcoming_Unavailable tests that any other non-success
// response carries the provider body.
func TestFetchUpcoming_Unavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503,"message":"Backend Error"}}`))
	})

	_, err := client.FetchUpcoming(context.Background(), "tok", time.Now())
	var unavailErr *UnavailableError
	if !errors.As(err, &unavailErr) {
		t.Fatalf("FetchUpcoming() error = %v, want *UnavailableError", err)
	}
	if unavailErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", unavailErr.StatusCode)
	}
	if unavailErr.Body == "" {
		t.Error("Body is empty, want raw provider error")
	}
}
