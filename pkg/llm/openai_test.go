package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestOpenAIComplete(t *testing.T) {
	var body map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gemini-2.5-flash",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": "```json\n[]\n```",
					},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(srv.URL+"/", "test-key", "gemini-2.5-flash")

	got, err := client.Complete(context.Background(), CompletionRequest{
		Prompt:      "hello",
		Temperature: 0.9,
		MaxTokens:   8000,
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, "```json\n[]\n```", got)
	assert.Equal(t, "gemini-2.5-flash", body["model"])
	assert.Equal(t, 0.9, body["temperature"])
	assert.Equal(t, float64(8000), body["max_tokens"])

	messages := body["messages"].([]interface{})
	assert.Equal(t, 1, len(messages))
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "hello", msg["content"])
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(srv.URL+"/", "test-key", "m")

	_, err := client.Complete(context.Background(), CompletionRequest{Prompt: "hi"})
	assert.NotEqual(t, nil, err)
}
