package analysis

import "errors"

var (
	ErrModelUnavailable = errors.New("generative model is not configured")
	ErrNoSummary        = errors.New("the AI model did not return a summary")
	ErrNoEstimates      = errors.New("the AI model did not return material estimates")
)
