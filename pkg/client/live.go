package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	maxStreamBackoff  = 30 * time.Second
	maxStreamAttempts = 5
)

// Reconnect backoff doubles per consecutive failure, capped at
// maxStreamBackoff. A var so tests can shorten the waits.
var baseStreamBackoff = time.Second

// Event is one server-sent event from a booking's live feed. Type is one of
// connected, progress, arrived, session_ended, status_changed or error.
type Event struct {
	Type string
	Data json.RawMessage
}

// StreamBooking opens the live event feed for a booking and returns a channel
// of events. The stream reconnects on transient failures with exponential
// backoff and gives up after five consecutive failed attempts, at which point
// the channel is closed. Cancel ctx to stop listening.
func (c *Client) StreamBooking(ctx context.Context, bookingID int32) <-chan Event {
	out := make(chan Event, 16)
	go func() {
		defer close(out)
		failures := 0
		for {
			connected, err := c.streamOnce(ctx, bookingID, out)
			if ctx.Err() != nil {
				return
			}
			if connected {
				failures = 0
			}
			delay := streamBackoff(failures)
			if !connected {
				failures++
				if failures >= maxStreamAttempts {
					return
				}
			}
			// An expired access token makes every reconnect fail the
			// same way, so refresh the session before trying again.
			if apiErr, ok := err.(*APIError); ok && apiErr.Code == codeTokenExpired {
				_ = c.doOnce(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, nil)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}()
	return out
}

func streamBackoff(failures int) time.Duration {
	d := baseStreamBackoff << failures
	if d > maxStreamBackoff || d <= 0 {
		return maxStreamBackoff
	}
	return d
}

// streamOnce holds one SSE connection open until it drops or ctx is
// cancelled. It reports whether the connection was established.
func (c *Client) streamOnce(ctx context.Context, bookingID int32, out chan<- Event) (bool, error) {
	path := fmt.Sprintf("/api/v1/bookings/%d/live", bookingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")

	// The shared client has a timeout that would sever a long-lived stream.
	httpClient := &http.Client{Jar: c.HTTP.Jar}
	res, err := httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: res.StatusCode, Code: "UNKNOWN"}
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(res.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Error
		}
		return false, apiErr
	}

	var eventType string
	var data strings.Builder
	scanner := bufio.NewScanner(res.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if eventType != "" || data.Len() > 0 {
				ev := Event{Type: eventType, Data: json.RawMessage(data.String())}
				select {
				case out <- ev:
				case <-ctx.Done():
					return true, ctx.Err()
				}
			}
			eventType = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
			// heartbeat comment
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	return true, scanner.Err()
}
