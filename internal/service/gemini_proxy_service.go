package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lshigami/Snapquiz/config"
	"github.com/lshigami/Snapquiz/internal/gateway"
	"github.com/lshigami/Snapquiz/internal/imageenc"
	"github.com/rs/zerolog/log"
)

var (
	ErrProxyKeyMissing     = errors.New("API key not configured")
	ErrUpstreamUnreachable = errors.New("gemini upstream unreachable")
)

// GeminiProxyService holds the Gemini key on the server side and forwards image prompts
// to generateContent. The upstream status and body are handed back untouched.
type GeminiProxyService interface {
	Forward(ctx context.Context, imageData, mimeType string) (int, []byte, error)
}

type geminiProxyService struct {
	apiKey  string
	model   string
	baseURL string
	prompt  string
	client  *http.Client
}

func NewGeminiProxyService(cfg *config.Config) GeminiProxyService {
	return newGeminiProxyService(cfg, &http.Client{Timeout: 90 * time.Second})
}

func newGeminiProxyService(cfg *config.Config, client *http.Client) *geminiProxyService {
	if cfg.Gemini.ApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. The Gemini proxy route will answer 500.")
	}
	return &geminiProxyService{
		apiKey:  cfg.Gemini.ApiKey,
		model:   cfg.Gemini.Model,
		baseURL: strings.TrimRight(cfg.Gemini.BaseURL, "/"),
		prompt:  BuildQuizPrompt(cfg.Quiz.QuestionCount),
		client:  client,
	}
}

func (s *geminiProxyService) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, url.QueryEscape(s.apiKey))
}

func (s *geminiProxyService) Forward(ctx context.Context, imageData, mimeType string) (int, []byte, error) {
	if s.apiKey == "" {
		return 0, nil, ErrProxyKeyMissing
	}
	if mimeType == "" {
		mimeType = imageenc.MIMETypeJPEG
	}

	payload, err := json.Marshal(gateway.NewImagePromptRequest(s.prompt, mimeType, imageData))
	if err != nil {
		return 0, nil, fmt.Errorf("error encoding gemini request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("error building gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// the key travels in the query string, keep it out of the logs
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return 0, nil, fmt.Errorf("%w: %v", ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: reading body: %v", ErrUpstreamUnreachable, err)
	}
	log.Info().Int("status", resp.StatusCode).Str("model", s.model).Int("bytes", len(body)).Msg("Gemini proxy: upstream answered")
	return resp.StatusCode, body, nil
}
