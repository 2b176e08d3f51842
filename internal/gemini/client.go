package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Generator sends a prompt to a generative model and returns its text and
// grounding citations. Client is the production implementation; tests use a mock.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Response, error)
}

// Client calls the Gemini API with Google Search grounding enabled.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewClient creates a Gemini client for model.
// An empty model falls back to gemini-2.5-flash.
func NewClient(ctx context.Context, apiKey, model string, temperature float32) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Client{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Model returns the model name used for requests.
func (c *Client) Model() string {
	return c.model
}

// Generate runs a single grounded generation request.
// An empty Response.Text is returned as-is; deciding whether that is an
// error is left to the caller.
func (c *Client) Generate(ctx context.Context, prompt string) (Response, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return Response{}, fmt.Errorf("GenAI generate failed: %w", err)
	}

	return responseFromResult(result), nil
}

// responseFromResult flattens the SDK response. Missing candidates or
// grounding metadata simply produce an empty text or citation list.
func responseFromResult(result *genai.GenerateContentResponse) Response {
	if result == nil {
		return Response{}
	}

	resp := Response{Text: result.Text()}

	if len(result.Candidates) == 0 || result.Candidates[0] == nil {
		return resp
	}
	metadata := result.Candidates[0].GroundingMetadata
	if metadata == nil {
		return resp
	}
	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		resp.Citations = append(resp.Citations, Citation{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return resp
}
