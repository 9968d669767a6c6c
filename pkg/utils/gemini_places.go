package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"nearby/internal/models/response_models"
)

// GeminiPlaceClient implements PlaceModelInterface using Google's Gemini models
type GeminiPlaceClient struct {
	client *genai.Client
	model  string
}

// NewGeminiPlaceClient creates a new Gemini client
func NewGeminiPlaceClient(apiKey, model string) (*GeminiPlaceClient, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlaceClient{
		client: client,
		model:  model,
	}, nil
}

// placeSchema mirrors response_models.Place; every field is required.
var placeSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":        {Type: genai.TypeString, Description: "The name of the place."},
		"rating":      {Type: genai.TypeNumber, Description: "A numerical rating out of 5, e.g., 4.5."},
		"description": {Type: genai.TypeString, Description: "A brief, one-sentence description of the place."},
		"address":     {Type: genai.TypeString, Description: "Approximate address or distance, e.g., '123 Main St, 1.2 mi'."},
		"categoryTag": {Type: genai.TypeString, Description: "A single, relevant category tag, e.g., 'Café', 'Italian', 'Park'."},
	},
	Required: []string{"name", "rating", "description", "address", "categoryTag"},
}

func (c *GeminiPlaceClient) FindPlaces(ctx context.Context, location, category string, count int) ([]response_models.Place, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: placeSchema,
	}

	resp, err := m.GenerateContent(ctx, genai.Text(BuildPlacesPrompt(location, category, count)))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini: %v", ErrModelFailure, err)
	}

	content, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return ParsePlaces(content)
}

func (c *GeminiPlaceClient) DescribePlace(ctx context.Context, placeName, location string) (string, error) {
	m := c.client.GenerativeModel(c.model)

	resp, err := m.GenerateContent(ctx, genai.Text(BuildDetailsPrompt(placeName, location)))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrModelFailure, err)
	}

	content, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content generated by Gemini", ErrInvalidModelResponse)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text parts in Gemini response", ErrInvalidModelResponse)
	}
	return sb.String(), nil
}

// Close closes the Gemini client
func (c *GeminiPlaceClient) Close() error {
	return c.client.Close()
}
