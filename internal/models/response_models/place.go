package response_models

// Place is a point of interest as produced by the model for one category query.
type Place struct {
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	CategoryTag string  `json:"categoryTag"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}
