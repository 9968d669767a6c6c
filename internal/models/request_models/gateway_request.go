package request_models

import "encoding/json"

const (
	ActionFindNearbyPlaces = "findNearbyPlaces"
	ActionGetPlaceDetails  = "getPlaceDetails"
)

// GatewayRequest is the envelope accepted by the action endpoint. Payload is
// decoded once the action is known.
type GatewayRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

type FindNearbyPlacesRequest struct {
	Location string `json:"location"`
	Category string `json:"category"`
}

type PlaceDetailsRequest struct {
	PlaceName string `json:"placeName"`
	Location  string `json:"location"`
}
