package embeddings

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyEmbedding = errors.New("embedding provider returned no vector")
	ErrEmptyText      = errors.New("embedding text is empty")
)

// ProviderError reports a non-2xx response from the embedding provider.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider status %d: %s", e.StatusCode, e.Body)
}
