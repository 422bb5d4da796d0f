// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"
)

// Profile selects the sampling behavior of a model call.
type Profile string

const (
	// ProfilePrecise is the low-randomness profile used for deterministic
	// extraction, tips, and completeness checks.
	ProfilePrecise Profile = "precise"
	// ProfileCreative is the higher-randomness profile used for recipe and
	// compilation generation.
	ProfileCreative Profile = "creative"
)

// ModelGateway wraps a text-generation capability. Implementations enforce a
// bounded wall-clock timeout and a small fixed number of transport retries;
// exhaustion surfaces as a GenerationFailure error code.
type ModelGateway interface {
	// Complete returns the raw text completion for the prompt.
	Complete(ctx context.Context, systemPrompt, userPrompt string, profile Profile) (string, error)

	// CompleteStructured completes the prompt and decodes the response into
	// out, which must be a pointer to the target shape. A response that does
	// not decode surfaces as a ParseFailure error code; callers never receive
	// a partially populated object on error.
	CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, profile Profile, out interface{}) error
}

// SearchHit is one result from the web-search capability.
type SearchHit struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// SearchService wraps a web-search capability. Implementations must surface
// authentication-class failures with the SearchAuthFailure error code so
// callers can stop issuing queries for the rest of the run.
type SearchService interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchHit, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
