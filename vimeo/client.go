package vimeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"automaton/model"
)

const (
	acceptHeader    = "application/vnd.vimeo.*+json;version=3.4"
	videoFields     = "uri,name,created_time,modified_time,is_playable,parent_folder.uri,live_event.uri"
	defaultPageSize = 100
)

// StatusError is returned for non-2xx platform responses. Callers branch
// on Status for the handful of codes the platform uses as answers rather
// than failures.
type StatusError struct {
	Status int
	Method string
	Path   string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("vimeo %s %s returned %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("vimeo %s %s returned %d: %s", e.Method, e.Path, e.Status, e.Body)
}

// Client wraps the hosting platform's REST API.
type Client struct {
	baseURL    string
	token      string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
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

// WithPageSize overrides the listing page size.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// New creates a platform client authenticated with the given access token.
func New(baseURL, token string, logger *slog.Logger, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("vimeo access token required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("vimeo base url required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	client := &Client{
		baseURL:    baseURL,
		token:      token,
		pageSize:   defaultPageSize,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Me returns the authenticated account's user ID.
func (c *Client) Me(ctx context.Context) (string, error) {
	var payload struct {
		URI string `json:"uri"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", nil, nil, &payload); err != nil {
		return "", fmt.Errorf("fetch account: %w", err)
	}
	id := ExtractID(payload.URI, "users")
	if id == "" {
		return "", fmt.Errorf("no user id in uri %q", payload.URI)
	}
	return id, nil
}

// RecentVideos lists the account's videos newest-first and stops at the
// first one created before since. Records with missing or malformed
// metadata are skipped with a warning rather than failing the page.
func (c *Client) RecentVideos(ctx context.Context, since time.Time) ([]model.VideoRecord, error) {
	var out []model.VideoRecord
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(c.pageSize))
		query.Set("sort", "date")
		query.Set("direction", "desc")
		query.Set("fields", videoFields)

		var payload videoPage
		if err := c.do(ctx, http.MethodGet, "/me/videos", query, nil, &payload); err != nil {
			return nil, fmt.Errorf("list videos page %d: %w", page, err)
		}
		for _, v := range payload.Data {
			record, err := v.record()
			if err != nil {
				c.logger.Warn("skipping video with bad metadata", "uri", v.URI, "error", err)
				continue
			}
			if record.CreatedAt.Before(since) {
				return out, nil
			}
			out = append(out, record)
		}
		// An empty page ends the listing no matter what paging claims.
		if len(payload.Data) == 0 {
			return out, nil
		}
		if payload.Paging.Next == "" {
			return out, nil
		}
	}
}

// UpdateTitle sets the video's display title.
func (c *Client) UpdateTitle(ctx context.Context, videoID model.VideoID, title string) error {
	form := url.Values{}
	form.Set("name", title)
	if err := c.do(ctx, http.MethodPatch, "/videos/"+string(videoID), nil, form, nil); err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

// AddToFolder files the video into the folder. The platform answers 400
// when the video is already there, which is the state we wanted.
func (c *Client) AddToFolder(ctx context.Context, userID string, folderID model.FolderID, videoID model.VideoID) error {
	err := c.do(ctx, http.MethodPut, projectVideoPath(userID, folderID, videoID), nil, nil, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusBadRequest {
		return nil
	}
	if err != nil {
		return fmt.Errorf("add to folder: %w", err)
	}
	return nil
}

// RemoveFromFolder takes the video out of the folder. A 404 means it was
// not there to begin with, which is equally fine.
func (c *Client) RemoveFromFolder(ctx context.Context, userID string, folderID model.FolderID, videoID model.VideoID) error {
	err := c.do(ctx, http.MethodDelete, projectVideoPath(userID, folderID, videoID), nil, nil, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove from folder: %w", err)
	}
	return nil
}

func projectVideoPath(userID string, folderID model.FolderID, videoID model.VideoID) string {
	return fmt.Sprintf("/users/%s/projects/%s/videos/%s", userID, folderID, videoID)
}

func (c *Client) do(ctx context.Context, method, path string, query, form url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var body io.Reader
	if len(form) > 0 {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", acceptHeader)
	if len(form) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vimeo %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			Status: resp.StatusCode,
			Method: method,
			Path:   path,
			Body:   strings.TrimSpace(string(data)),
		}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type videoPage struct {
	Data   []videoPayload `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

type videoPayload struct {
	URI          string  `json:"uri"`
	Name         string  `json:"name"`
	CreatedTime  string  `json:"created_time"`
	ModifiedTime string  `json:"modified_time"`
	IsPlayable   bool    `json:"is_playable"`
	ParentFolder *uriRef `json:"parent_folder"`
	LiveEvent    *uriRef `json:"live_event"`
}

type uriRef struct {
	URI string `json:"uri"`
}

// Timestamps stay strings in the payload so one malformed record cannot
// fail the whole page decode.
func (v videoPayload) record() (model.VideoRecord, error) {
	id := ExtractID(v.URI, "videos")
	if id == "" {
		return model.VideoRecord{}, fmt.Errorf("no video id in uri %q", v.URI)
	}
	if v.CreatedTime == "" {
		return model.VideoRecord{}, errors.New("missing created_time")
	}
	created, err := time.Parse(time.RFC3339, v.CreatedTime)
	if err != nil {
		return model.VideoRecord{}, fmt.Errorf("parse created_time: %w", err)
	}
	record := model.VideoRecord{
		ID:        model.VideoID(id),
		Title:     v.Name,
		CreatedAt: created,
		Playable:  v.IsPlayable,
	}
	if v.ModifiedTime != "" {
		if modified, err := time.Parse(time.RFC3339, v.ModifiedTime); err == nil {
			record.ModifiedAt = modified
		}
	}
	if v.ParentFolder != nil {
		record.Folder = model.FolderID(ExtractFolderID(v.ParentFolder.URI))
	}
	if v.LiveEvent != nil {
		record.LiveEvent = model.LiveEventID(ExtractID(v.LiveEvent.URI, "live_events"))
	}
	return record, nil
}
