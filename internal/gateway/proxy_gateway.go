package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lshigami/Snapquiz/internal/imageenc"
)

type proxyGateway struct {
	url    string
	client *http.Client
}

// NewProxyGateway posts images to a server-side proxy that holds the provider key and the
// instruction prompt. A nil client gets a default with a generous timeout.
func NewProxyGateway(url string, client *http.Client) ModelGateway {
	if client == nil {
		client = &http.Client{Timeout: 90 * time.Second}
	}
	return &proxyGateway{url: url, client: client}
}

func (p *proxyGateway) Name() string { return "proxy:" + p.url }

type proxyRequest struct {
	ImageData string `json:"imageData"`
	MimeType  string `json:"mimeType"`
}

// GenerateContent ignores prompt; the proxy owns its copy of the instruction.
func (p *proxyGateway) GenerateContent(ctx context.Context, _ string, img imageenc.Image) (string, error) {
	body, err := json.Marshal(proxyRequest{ImageData: img.Data, MimeType: img.MIMEType})
	if err != nil {
		return "", fmt.Errorf("failed to encode proxy request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build proxy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxy request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read proxy response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("proxy returned status %d: %s", resp.StatusCode, truncate(payload, 200))
	}

	var envelope RESTResponse
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", fmt.Errorf("malformed proxy response envelope: %w", err)
	}
	text, ok := envelope.CandidateText()
	if !ok {
		return "", fmt.Errorf("proxy response carried no candidate text")
	}
	return text, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
