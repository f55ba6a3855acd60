package interview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultRequestTimeout bounds each round trip so a hung backend cannot
// leave the UI in the loading state forever.
const DefaultRequestTimeout = 30 * time.Second

// Client talks to the question/evaluation service. Both operations are
// single-attempt JSON POSTs; retry policy is the caller's problem (the
// session converts failures into inline warning turns instead).
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type questionRequest struct {
	JobType     string `json:"job_type"`
	ChatHistory []Turn `json:"chat_history"`
}

type evaluateRequest struct {
	JobType     string `json:"job_type"`
	Answer      string `json:"answer"`
	ChatHistory []Turn `json:"chat_history"`
}

// NextQuestion asks the backend for the next question given the role and
// the full transcript so far.
func (c *Client) NextQuestion(ctx context.Context, role string, history []Turn) (*Question, error) {
	var q Question
	if err := c.postJSON(ctx, "/api/question", questionRequest{JobType: role, ChatHistory: history}, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Evaluate submits the user's answer for feedback.
func (c *Client) Evaluate(ctx context.Context, role, answer string, history []Turn) (*Feedback, error) {
	var fb Feedback
	if err := c.postJSON(ctx, "/api/evaluate", evaluateRequest{JobType: role, Answer: answer, ChatHistory: history}, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("calling %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
