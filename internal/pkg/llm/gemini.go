package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient calls the Gemini API with JSON-constrained output.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, schema OutputSchema, out any) error {
	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   toGenAISchema(schema),
		},
	)
	if err != nil {
		return fmt.Errorf("GenAI generate failed: %w", err)
	}
	if resp == nil {
		return ErrEmptyOutput
	}

	return decodeOutput(resp.Text(), schema, out)
}

// Name returns the engine name.
func (c *GeminiClient) Name() string {
	return fmt.Sprintf("genai:%s", c.model)
}

func toGenAISchema(schema OutputSchema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(schema.Fields))
	required := make([]string, 0, len(schema.Fields))
	order := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		props[f.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: f.Description,
		}
		required = append(required, f.Name)
		order = append(order, f.Name)
	}

	return &genai.Schema{
		Type:             genai.TypeObject,
		Title:            schema.Name,
		Properties:       props,
		Required:         required,
		PropertyOrdering: order,
	}
}
