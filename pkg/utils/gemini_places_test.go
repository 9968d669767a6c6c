package utils

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, wantErr: true},
		{name: "no parts", resp: candidate(), wantErr: true},
		{name: "only non-text parts", resp: candidate(genai.Blob{MIMEType: "image/png", Data: []byte{1}}), wantErr: true},
		{name: "single text", resp: candidate(genai.Text("A quiet garden.")), want: "A quiet garden."},
		{
			name: "text parts joined, others skipped",
			resp: candidate(genai.Text(`[{"name":`), genai.Blob{MIMEType: "image/png"}, genai.Text(`"Louvre"}]`)),
			want: `[{"name":"Louvre"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.resp)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidModelResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaceSchema(t *testing.T) {
	require.Equal(t, genai.TypeObject, placeSchema.Type)
	assert.Len(t, placeSchema.Properties, 5)
	assert.ElementsMatch(t,
		[]string{"name", "rating", "description", "address", "categoryTag"},
		placeSchema.Required)
}
