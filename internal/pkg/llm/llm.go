// Package llm wraps the hosted generative model behind a single structured
// request: a prompt in, a JSON object matching a declared schema out.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyOutput     = errors.New("model returned no output")
	ErrMalformedOutput = errors.New("model output does not match the declared schema")
)

// Field is one string property of a structured response.
type Field struct {
	Name        string
	Description string
}

// OutputSchema declares an object whose fields are all required strings.
type OutputSchema struct {
	Name   string
	Fields []Field
}

// Generator is the consumed model contract.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema OutputSchema, out any) error
}

// decodeOutput parses the model text into out and checks the declared fields are present.
func decodeOutput(text string, schema OutputSchema, out any) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyOutput
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	for _, f := range schema.Fields {
		if _, ok := raw[f.Name]; !ok {
			return fmt.Errorf("%w: missing field %q", ErrMalformedOutput, f.Name)
		}
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	return nil
}
