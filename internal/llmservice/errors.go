package llmservice

import (
	"fmt"
	"net/http"
)

// Kind classifies generation failures so callers can tell throttling, bad
// credentials, transport faults, and unusable payloads apart.
type Kind string

const (
	KindRateLimited       Kind = "rate_limited"
	KindInvalidKey        Kind = "invalid_key"
	KindNetwork           Kind = "network"
	KindMalformedResponse Kind = "malformed_response"
)

// GenerationError wraps a provider failure with its classification.
type GenerationError struct {
	Provider string
	Kind     Kind
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindInvalidKey
	default:
		return KindNetwork
	}
}
