package analysis

import "errors"

var (
	// ErrRetrieverRequired is returned when a retriever is not provided.
	ErrRetrieverRequired = errors.New("retriever required")

	// ErrAnalystRequired is returned when an analyst is not provided.
	ErrAnalystRequired = errors.New("analyst required")

	// ErrPipelineRequired is returned when a pipeline is not provided.
	ErrPipelineRequired = errors.New("pipeline required")

	// ErrInvalidTopK is returned when the top-k count is not positive.
	ErrInvalidTopK = errors.New("top-k must be greater than 0")
)
