package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/Snapquiz/internal/imageenc"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

var ErrOpenAIKeyMissing = errors.New("openai api key not configured")

type openAIGateway struct {
	client *openai.Client
	model  string
}

// NewOpenAIGateway uses an OpenAI vision model. baseURL may be empty.
func NewOpenAIGateway(apiKey, model, baseURL string) ModelGateway {
	if model == "" {
		model = openai.GPT4o
	}
	if apiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set. OpenAI gateway will be non-functional.")
		return &openAIGateway{model: model}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIGateway{client: openai.NewClientWithConfig(cfg), model: model}
}

func (o *openAIGateway) Name() string { return "openai:" + o.model }

func (o *openAIGateway) GenerateContent(ctx context.Context, prompt string, img imageenc.Image) (string, error) {
	if o.client == nil {
		return "", ErrOpenAIKeyMissing
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    "data:" + img.MIMEType + ";base64," + img.Data,
							Detail: openai.ImageURLDetailAuto,
						},
					},
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", o.model)
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("%s returned no text content", o.model)
	}
	return text, nil
}
