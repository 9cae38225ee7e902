package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const tokenScope = "http://www.thinkministry.com/dataplatform/scopes/all"

// Event is a scheduled happening in one of the streaming-capable rooms.
type Event struct {
	Title string
	Start time.Time
}

// Info carries the connection settings for a Ministry Platform instance.
type Info struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	// Locations are the room IDs with streaming capability. Without any,
	// the lookup stays disabled.
	Locations []int
}

// Client queries the Ministry Platform events calendar. The OAuth token
// is fetched on first use and cached for the client's lifetime, which is
// a single run.
type Client struct {
	info       Info
	httpClient *http.Client
	logger     *slog.Logger
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a calendar client.
func New(info Info, logger *slog.Logger, opts ...Option) (*Client, error) {
	info.Endpoint = strings.TrimRight(strings.TrimSpace(info.Endpoint), "/")
	if info.Endpoint == "" {
		return nil, errors.New("calendar endpoint required")
	}
	if info.ClientID == "" || info.ClientSecret == "" {
		return nil, errors.New("calendar client credentials required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	client := &Client{
		info:       info,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// EventsSince lists non-cancelled events in the streaming rooms starting
// at or after since. With no streaming rooms configured it reports the
// lookup disabled and returns nothing.
func (c *Client) EventsSince(ctx context.Context, since time.Time) ([]Event, error) {
	if len(c.info.Locations) == 0 {
		c.logger.Warn("no streaming locations configured, calendar lookup disabled")
		return nil, nil
	}
	if c.token == "" {
		if err := c.authenticate(ctx); err != nil {
			return nil, err
		}
	}

	locations := make([]string, 0, len(c.info.Locations))
	for _, loc := range c.info.Locations {
		locations = append(locations, fmt.Sprintf("Location_ID eq %d", loc))
	}
	filter := fmt.Sprintf("Event_Start_Date ge %s and Cancelled eq false and (%s)",
		since.UTC().Format(time.RFC3339), strings.Join(locations, " or "))

	query := url.Values{}
	query.Set("$filter", filter)
	query.Set("$select", "Event_Title,Event_Start_Date")

	endpoint := c.info.Endpoint + "/tables/Events?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build events request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("events endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var payload []eventPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode events response: %w", err)
	}

	events := make([]Event, 0, len(payload))
	for _, e := range payload {
		start, err := parseEventTime(e.Start)
		if err != nil {
			c.logger.Warn("skipping event with bad start date", "title", e.Title, "error", err)
			continue
		}
		events = append(events, Event{Title: e.Title, Start: start})
	}
	return events, nil
}

func (c *Client) authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", tokenScope)
	form.Set("client_id", c.info.ClientID)
	form.Set("client_secret", c.info.ClientSecret)

	endpoint := c.info.Endpoint + "/oauth/connect/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return errors.New("token endpoint returned no access_token")
	}
	c.token = payload.AccessToken
	return nil
}

type eventPayload struct {
	Title string `json:"Event_Title"`
	Start string `json:"Event_Start_Date"`
}

// The platform reports start dates in UTC but without a zone suffix.
func parseEventTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s+"Z")
}
