// Package gateway holds the clients that turn a prompt plus an image into raw model text.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/lshigami/Snapquiz/config"
	"github.com/lshigami/Snapquiz/internal/imageenc"
)

// ModelGateway sends one prompt and one image to a vision model and returns the text of the
// first candidate. Any error is a transport failure from the caller's point of view.
type ModelGateway interface {
	GenerateContent(ctx context.Context, prompt string, img imageenc.Image) (string, error)
	Name() string
}

const (
	ProviderGemini = "gemini"
	ProviderProxy  = "proxy"
	ProviderOpenAI = "openai"
)

// New builds the gateway selected by cfg.Model.Provider.
func New(cfg *config.Config) (ModelGateway, error) {
	switch strings.ToLower(cfg.Model.Provider) {
	case "", ProviderGemini:
		return NewGeminiGateway(cfg.Gemini.ApiKey, cfg.Gemini.Model)
	case ProviderProxy:
		return NewProxyGateway(cfg.Model.ProxyURL, nil), nil
	case ProviderOpenAI:
		return NewOpenAIGateway(cfg.OpenAI.ApiKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}
