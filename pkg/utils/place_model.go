package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"nearby/internal/models/response_models"
)

// PlaceModelInterface is a generative backend able to list places and
// describe a single place.
type PlaceModelInterface interface {
	FindPlaces(ctx context.Context, location, category string, count int) ([]response_models.Place, error)
	DescribePlace(ctx context.Context, placeName, location string) (string, error)
	Close() error
}

func BuildPlacesPrompt(location, category string, count int) string {
	return fmt.Sprintf("Find %d popular %s near %s.", count, category, location)
}

func BuildDetailsPrompt(placeName, location string) string {
	return fmt.Sprintf(`Provide a more detailed, 2-3 sentence description for a place called "%s", `+
		`which is located around "%s". Focus on its ambiance, popular items, or what makes it unique. `+
		"Do not repeat the name of the place in the response.", placeName, location)
}

// ParsePlaces decodes a model reply that must be a JSON array of places.
// Ratings outside 0-5 are clamped.
func ParsePlaces(content string) ([]response_models.Place, error) {
	content = cleanJSONResponse(content)

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelResponse, err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidModelResponse)
	}

	var places []response_models.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModelResponse, err)
	}

	for i := range places {
		switch {
		case places[i].Rating < 0:
			places[i].Rating = 0
		case places[i].Rating > 5:
			places[i].Rating = 5
		}
	}
	return places, nil
}

// cleanJSONResponse strips markdown fences that some models add around JSON.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```JSON")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
