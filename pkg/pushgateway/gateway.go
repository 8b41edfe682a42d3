package pushgateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/givebridge/givebridge-backend/internal/config"
)

// Message is one push notification handed to the delivery provider.
type Message struct {
	RecipientID string                 `json:"recipientId"`
	Kind        string                 `json:"kind"`
	Title       string                 `json:"title"`
	Body        string                 `json:"body"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// Gateway represents a push notification delivery provider
type Gateway interface {
	Push(msg Message) (string, error)
}

// HTTPGateway delivers pushes through the configured provider endpoint
type HTTPGateway struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// MockGateway simulates push delivery for local development and tests
type MockGateway struct{}

// NewHTTPGateway creates a new HTTPGateway
func NewHTTPGateway(cfg *config.Config) Gateway {
	return &HTTPGateway{
		BaseURL: cfg.Push.BaseURL,
		APIKey:  cfg.Push.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewMockGateway creates a new MockGateway
func NewMockGateway() Gateway {
	return &MockGateway{}
}

// Push delivers a message through the HTTP provider
func (g *HTTPGateway) Push(msg Message) (string, error) {
	jsonBody, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal push message: %w", err)
	}

	req, err := http.NewRequest("POST", g.BaseURL+"/push", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("push request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		MessageID string `json:"messageId"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return response.MessageID, nil
}

// Push simulates delivery and returns a mock message id
func (g *MockGateway) Push(msg Message) (string, error) {
	return fmt.Sprintf("MOCK-PUSH-%d", time.Now().UnixNano()), nil
}
