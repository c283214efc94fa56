package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Model    Model
	Gemini   Gemini
	OpenAI   OpenAI
	Quiz     Quiz
	Image    Image
	LogLevel string
}

type Server struct {
	Port           string
	UploadMaxBytes int64
}

// Model selects which gateway answers quiz generation requests: "gemini", "proxy" or "openai".
type Model struct {
	Provider string
	ProxyURL string
}

type Gemini struct {
	ApiKey  string
	Model   string
	BaseURL string
}

type OpenAI struct {
	ApiKey  string
	Model   string
	BaseURL string
}

type Quiz struct {
	QuestionCount  int
	MaxRetries     int
	RetryDelay     time.Duration
	AttemptTimeout time.Duration
	AnswerTimeout  time.Duration
	FeedbackDelay  time.Duration
	SessionTTL     time.Duration
}

type Image struct {
	MaxWidth    int
	JPEGQuality int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.UploadMaxBytes = viper.GetInt64("UPLOAD_MAX_BYTES")
	config.LogLevel = viper.GetString("LOG_LEVEL")

	config.Model.Provider = viper.GetString("MODEL_PROVIDER")
	config.Model.ProxyURL = viper.GetString("PROXY_URL")

	config.Gemini.ApiKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")
	config.Gemini.BaseURL = viper.GetString("GEMINI_BASE_URL")

	config.OpenAI.ApiKey = viper.GetString("OPENAI_API_KEY")
	config.OpenAI.Model = viper.GetString("OPENAI_MODEL")
	config.OpenAI.BaseURL = viper.GetString("OPENAI_BASE_URL")

	config.Quiz.QuestionCount = viper.GetInt("QUIZ_QUESTION_COUNT")
	config.Quiz.MaxRetries = viper.GetInt("QUIZ_MAX_RETRIES")
	config.Quiz.RetryDelay = viper.GetDuration("QUIZ_RETRY_DELAY")
	config.Quiz.AttemptTimeout = viper.GetDuration("QUIZ_ATTEMPT_TIMEOUT")
	config.Quiz.AnswerTimeout = viper.GetDuration("QUIZ_ANSWER_TIMEOUT")
	config.Quiz.FeedbackDelay = viper.GetDuration("QUIZ_FEEDBACK_DELAY")
	config.Quiz.SessionTTL = viper.GetDuration("SESSION_TTL")

	config.Image.MaxWidth = viper.GetInt("IMAGE_MAX_WIDTH")
	config.Image.JPEGQuality = viper.GetInt("IMAGE_JPEG_QUALITY")

	log.Info().
		Str("port", config.Server.Port).
		Str("provider", config.Model.Provider).
		Bool("gemini_key_set", config.Gemini.ApiKey != "").
		Bool("openai_key_set", config.OpenAI.ApiKey != "").
		Interface("quiz", config.Quiz).
		Interface("image", config.Image).
		Msg("Config loaded")
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("MODEL_PROVIDER", "gemini")
	viper.SetDefault("PROXY_URL", "http://localhost:8080/api/gemini-proxy")

	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o")

	viper.SetDefault("QUIZ_QUESTION_COUNT", 10)
	viper.SetDefault("QUIZ_MAX_RETRIES", 2)
	viper.SetDefault("QUIZ_RETRY_DELAY", "1s")
	viper.SetDefault("QUIZ_ATTEMPT_TIMEOUT", "60s")
	viper.SetDefault("QUIZ_ANSWER_TIMEOUT", "30s")
	viper.SetDefault("QUIZ_FEEDBACK_DELAY", "1.5s")
	viper.SetDefault("SESSION_TTL", "1h")

	viper.SetDefault("IMAGE_MAX_WIDTH", 1080)
	viper.SetDefault("IMAGE_JPEG_QUALITY", 70)
}
