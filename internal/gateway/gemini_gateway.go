package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Snapquiz/internal/imageenc"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var ErrClientNotInitialized = errors.New("gemini client not initialized")

type geminiGateway struct {
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiGateway calls the model directly through the Gemini SDK. Without an API key the
// gateway is still returned, but every call fails.
func NewGeminiGateway(apiKey, modelName string) (ModelGateway, error) {
	if apiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Gemini gateway will be non-functional.")
		return &geminiGateway{modelName: modelName}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiGateway{model: client.GenerativeModel(modelName), modelName: modelName}, nil
}

func (g *geminiGateway) Name() string { return "gemini:" + g.modelName }

func (g *geminiGateway) GenerateContent(ctx context.Context, prompt string, img imageenc.Image) (string, error) {
	if g.model == nil {
		return "", ErrClientNotInitialized
	}
	raw, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return "", fmt.Errorf("invalid image payload: %w", err)
	}

	resp, err := g.model.GenerateContent(ctx,
		genai.Blob{MIMEType: img.MIMEType, Data: raw},
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates or parts")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return sb.String(), nil
}
