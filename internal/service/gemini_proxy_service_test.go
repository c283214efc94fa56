package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lshigami/Snapquiz/config"
	"github.com/lshigami/Snapquiz/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proxyConfig(baseURL, key string) *config.Config {
	cfg := &config.Config{}
	cfg.Gemini.ApiKey = key
	cfg.Gemini.Model = "gemini-2.0-flash"
	cfg.Gemini.BaseURL = baseURL
	cfg.Quiz.QuestionCount = 10
	return cfg
}

func TestGeminiProxyForwardsImageThenPrompt(t *testing.T) {
	var got gateway.RESTRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer upstream.Close()

	svc := newGeminiProxyService(proxyConfig(upstream.URL+"/", "secret"), upstream.Client())
	status, body, err := svc.Forward(context.Background(), "QUJD", "image/png")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"candidates":[]}`, string(body))

	require.Len(t, got.Contents, 1)
	parts := got.Contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, "image/png", parts[0].InlineData.MimeType)
	assert.Equal(t, "QUJD", parts[0].InlineData.Data)
	assert.Contains(t, parts[1].Text, "exactly 4 options")
}

func TestGeminiProxyRelaysUpstreamErrors(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	defer upstream.Close()

	svc := newGeminiProxyService(proxyConfig(upstream.URL, "secret"), upstream.Client())
	status, body, err := svc.Forward(context.Background(), "QUJD", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Contains(t, string(body), "quota")
}

func TestGeminiProxyWithoutKey(t *testing.T) {
	svc := newGeminiProxyService(proxyConfig("http://127.0.0.1:1", ""), http.DefaultClient)
	_, _, err := svc.Forward(context.Background(), "QUJD", "image/jpeg")
	assert.ErrorIs(t, err, ErrProxyKeyMissing)
}

func TestGeminiProxyUnreachableHidesKey(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	addr := upstream.URL
	upstream.Close()

	svc := newGeminiProxyService(proxyConfig(addr, "topsecret"), http.DefaultClient)
	_, _, err := svc.Forward(context.Background(), "QUJD", "image/jpeg")
	require.ErrorIs(t, err, ErrUpstreamUnreachable)
	assert.NotContains(t, err.Error(), "topsecret")
}
