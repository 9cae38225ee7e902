package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"automaton/model"
)

const userAgent = "Automaton/0.1.0"

// Service is the push-notification surface used around a run.
type Service interface {
	RunCompleted(ctx context.Context, summary *model.RunSummary) error
	RunFailed(ctx context.Context, err error) error
}

// NewService builds a notification service backed by ntfy when a topic
// URL is configured, and a noop implementation otherwise.
func NewService(topic string) Service {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return noopService{}
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) RunCompleted(ctx context.Context, summary *model.RunSummary) error {
	duration := summary.Duration().Round(time.Second)
	message := fmt.Sprintf("Scanned %d videos in %s: %d retitled, %d moved, %d unclassified, %d skipped",
		summary.Scanned, duration, summary.TitleUpdated, summary.Moved, summary.Unclassified, summary.Skipped())

	title := "Automaton - Run Complete"
	data := payload{tags: []string{"automaton", "run", "completed"}}
	if summary.Failed > 0 {
		title = "Automaton - Run Complete (with errors)"
		message = fmt.Sprintf("%s, %d failed", message, summary.Failed)
		data.priority = "high"
	}
	if summary.DryRun {
		message = "[dry run] " + message
	}
	data.title = title
	data.message = message
	return n.send(ctx, data)
}

func (n *ntfyService) RunFailed(ctx context.Context, err error) error {
	message := "Run failed: unknown"
	if err != nil {
		message = "Run failed: " + strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "Automaton - Run Failed",
		message:  message,
		tags:     []string{"automaton", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) RunCompleted(context.Context, *model.RunSummary) error { return nil }
func (noopService) RunFailed(context.Context, error) error                { return nil }
