// Package mlclient talks to the plate-recognition service. Its failure mode
// is deliberate: any error degrades to a nil result so complaint creation can
// fall through to manual review instead of blocking or failing.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/Aaryan-549/CivicPulse/internal/config"
	"github.com/Aaryan-549/CivicPulse/internal/validation"
)

// Client is an HTTP client for the ML service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a client with the configured request timeout. The timeout
// bounds the whole call so the pre-transaction validation step can never hang
// complaint creation.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: config.MLRequestTimeout},
	}
}

// ValidatePlate submits the image for plate OCR. It returns nil on any
// failure: unreachable service, timeout, non-200, undecodable body.
func (c *Client) ValidatePlate(ctx context.Context, image []byte) *validation.PlateResult {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", "plate.jpg")
	if err != nil {
		log.Printf("ML Service Error: %v", err)
		return nil
	}
	if _, err := part.Write(image); err != nil {
		log.Printf("ML Service Error: %v", err)
		return nil
	}
	if err := w.Close(); err != nil {
		log.Printf("ML Service Error: %v", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/ocr/plate", body)
	if err != nil {
		log.Printf("ML Service Error: %v", err)
		return nil
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("ML Service Error: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("ML Service Error: unexpected status %d", resp.StatusCode)
		return nil
	}

	var result validation.PlateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("ML Service Error: %v", err)
		return nil
	}
	return &result
}

// Healthy reports whether the ML service answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, config.MLHealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
