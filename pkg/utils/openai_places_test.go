package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestClient(t *testing.T, content string, status int) (*OpenAIPlaceClient, *[]openai.ChatCompletionRequest) {
	t.Helper()

	var seen []openai.ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		seen = append(seen, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return NewOpenAIPlaceClientWithConfig(cfg, ""), &seen
}

func TestOpenAIPlaceClient_FindPlaces(t *testing.T) {
	client, seen := newOpenAITestClient(t, `{"places":[{"name":"Parc Monceau","rating":4.7,"description":"Landscaped park.","address":"35 Bd de Courcelles","categoryTag":"Park"}]}`, http.StatusOK)

	places, err := client.FindPlaces(context.Background(), "Paris", "Parks", 5)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Parc Monceau", places[0].Name)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, openai.GPT4oMini, req.Model)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
	assert.Equal(t, "Find 5 popular Parks near Paris.", req.Messages[len(req.Messages)-1].Content)
}

func TestOpenAIPlaceClient_FindPlacesMissingKey(t *testing.T) {
	client, _ := newOpenAITestClient(t, `{"results":[]}`, http.StatusOK)

	_, err := client.FindPlaces(context.Background(), "Paris", "Parks", 5)
	require.ErrorIs(t, err, ErrInvalidModelResponse)
}

func TestOpenAIPlaceClient_DescribePlace(t *testing.T) {
	client, _ := newOpenAITestClient(t, "  A leafy retreat with a colonnade.  ", http.StatusOK)

	text, err := client.DescribePlace(context.Background(), "Parc Monceau", "35 Bd de Courcelles")
	require.NoError(t, err)
	assert.Equal(t, "A leafy retreat with a colonnade.", text)
}

func TestOpenAIPlaceClient_UpstreamFailure(t *testing.T) {
	client, _ := newOpenAITestClient(t, "", http.StatusInternalServerError)

	_, err := client.DescribePlace(context.Background(), "x", "y")
	require.ErrorIs(t, err, ErrModelFailure)
}
