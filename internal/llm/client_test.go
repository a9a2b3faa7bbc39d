package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clausesync/internal/config"
	"clausesync/internal/llm"
)

func newTestClient(serverURL string) *llm.Client {
	cfg := &config.LLMConfig{
		APIKey:      "test-api-key",
		Model:       "gpt-3.5-turbo",
		TimeoutSecs: 30,
	}
	return llm.NewClientWithEndpoint(cfg, serverURL)
}

func successResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-3.5-turbo", reqBody["model"])
		assert.Equal(t, float64(1000), reqBody["max_tokens"])
		assert.Equal(t, 0.5, reqBody["temperature"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 2)
		sys := messages[0].(map[string]interface{})
		assert.Equal(t, "system", sys["role"])
		usr := messages[1].(map[string]interface{})
		assert.Equal(t, "user", usr["role"])
		assert.Equal(t, "review this", usr["content"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(successResponse(`{"key_clauses":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	reply, err := c.Complete(context.Background(), "you are a reviewer", "review this")

	require.NoError(t, err)
	assert.Equal(t, `{"key_clauses":[]}`, reply)
}

func TestComplete_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Complete(context.Background(), "sys", "usr")

	require.Error(t, err)
	var httpErr *llm.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "upstream exploded", httpErr.Body)
}

func TestComplete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "17")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Complete(context.Background(), "sys", "usr")

	require.Error(t, err)
	var rateErr *llm.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 17*time.Second, rateErr.RetryAfter)

	var httpErr *llm.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
}

func TestComplete_RateLimitedDefaultRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Complete(context.Background(), "sys", "usr")

	var rateErr *llm.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 60*time.Second, rateErr.RetryAfter)
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Complete(context.Background(), "sys", "usr")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestComplete_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused

	c := newTestClient(server.URL)
	_, err := c.Complete(context.Background(), "sys", "usr")

	require.Error(t, err)
	var httpErr *llm.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, llm.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, llm.ParseRetryAfterHeader("soon"))
	assert.Equal(t, 30, llm.ParseRetryAfterHeader("30"))
}
