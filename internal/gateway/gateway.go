// Package gateway is the client-side facade over the single action endpoint.
// Every call is one POST with no retry, no cache and no timeout of its own;
// cancellation comes from the caller's context.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"nearby/internal/models/request_models"
	"nearby/internal/places"
)

// ErrInvalidFormat is returned when findNearbyPlaces does not yield an array.
var ErrInvalidFormat = errors.New("invalid response format from API")

// APIError is a non-success response from the endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway: %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Action  string `json:"action"`
	Payload any    `json:"payload"`
}

// Call posts {action, payload} and decodes the JSON result into out.
func (c *Client) Call(ctx context.Context, action string, payload any, out any) error {
	body, err := json.Marshal(envelope{Action: action, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed", zap.String("action", action), zap.Error(err))
		return fmt.Errorf("%s: %w", action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", action, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
		c.logger.Warn("gateway returned error",
			zap.String("action", action),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
			zap.String("trace_id", resp.Header.Get("X-Trace-ID")))
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("gateway returned malformed JSON", zap.String("action", action), zap.Error(err))
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	return nil
}

func errorMessage(status int, raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(status)
}

func (c *Client) FindNearbyPlaces(ctx context.Context, location, category string) ([]places.Place, error) {
	var raw json.RawMessage
	err := c.Call(ctx, request_models.ActionFindNearbyPlaces, request_models.FindNearbyPlacesRequest{
		Location: location,
		Category: category,
	}, &raw)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.logger.Warn("findNearbyPlaces did not return an array", zap.ByteString("body", trimmed))
		return nil, ErrInvalidFormat
	}

	var result []places.Place
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return result, nil
}

func (c *Client) GetPlaceDetails(ctx context.Context, placeName, location string) (string, error) {
	var details string
	err := c.Call(ctx, request_models.ActionGetPlaceDetails, request_models.PlaceDetailsRequest{
		PlaceName: placeName,
		Location:  location,
	}, &details)
	if err != nil {
		return "", err
	}
	return details, nil
}
