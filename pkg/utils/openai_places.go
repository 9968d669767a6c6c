package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"nearby/internal/models/response_models"
)

const openAISystemPrompt = "You list points of interest. Reply with a JSON object of the form " +
	`{"places":[{"name":string,"rating":number 0-5,"description":string,"address":string,"categoryTag":string}]}` +
	" and nothing else. Every field is required."

// OpenAIPlaceClient implements PlaceModelInterface on the chat completions API.
// JSON mode only yields objects, so the array is wrapped in a "places" key.
type OpenAIPlaceClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIPlaceClient(apiKey, model string) *OpenAIPlaceClient {
	return NewOpenAIPlaceClientWithConfig(openai.DefaultConfig(apiKey), model)
}

func NewOpenAIPlaceClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIPlaceClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIPlaceClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAIPlaceClient) FindPlaces(ctx context.Context, location, category string, count int) ([]response_models.Place, error) {
	content, err := c.complete(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPlacesPrompt(location, category, count)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Places json.RawMessage `json:"places"`
	}
	if err := json.Unmarshal([]byte(cleanJSONResponse(content)), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelResponse, err)
	}
	if len(envelope.Places) == 0 {
		return nil, fmt.Errorf("%w: missing places key", ErrInvalidModelResponse)
	}
	return ParsePlaces(string(envelope.Places))
}

func (c *OpenAIPlaceClient) DescribePlace(ctx context.Context, placeName, location string) (string, error) {
	content, err := c.complete(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildDetailsPrompt(placeName, location)},
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (c *OpenAIPlaceClient) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", ErrModelFailure, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: no content generated by OpenAI", ErrInvalidModelResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIPlaceClient) Close() error {
	return nil
}
