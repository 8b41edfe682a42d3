package certrenderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/givebridge/givebridge-backend/internal/config"
	"github.com/givebridge/givebridge-backend/internal/models"
)

// Renderer turns a certificate record into a hosted PDF and returns its URL.
// Rendering may fail; callers must treat failure as non-fatal since the
// certificate record exists independently of the PDF.
type Renderer interface {
	Render(cert *models.Certificate, recipient *models.User) (string, error)
}

// HTTPRenderer calls the external certificate generation service
type HTTPRenderer struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// MockRenderer fabricates a URL without calling any external service
type MockRenderer struct{}

// NewHTTPRenderer creates a new HTTPRenderer
func NewHTTPRenderer(cfg *config.Config) Renderer {
	return &HTTPRenderer{
		BaseURL: cfg.Certificate.RendererURL,
		APIKey:  cfg.Certificate.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewMockRenderer creates a new MockRenderer
func NewMockRenderer() Renderer {
	return &MockRenderer{}
}

// Render requests a rendered PDF for the certificate
func (r *HTTPRenderer) Render(cert *models.Certificate, recipient *models.User) (string, error) {
	requestBody := map[string]interface{}{
		"certificateNumber": cert.CertificateNumber,
		"title":             cert.Title,
		"description":       cert.Description,
		"issuer":            cert.Issuer,
		"issueDate":         cert.IssueDate,
		"recipientName":     recipient.Name,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal render request: %w", err)
	}

	req, err := http.NewRequest("POST", r.BaseURL+"/certificates/render", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.APIKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("render request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return response.URL, nil
}

// Render returns a deterministic mock URL
func (r *MockRenderer) Render(cert *models.Certificate, recipient *models.User) (string, error) {
	return fmt.Sprintf("https://certificates.givebridge.local/%s.pdf", cert.CertificateNumber), nil
}
