package music

import "context"

// InstrumentalProvider is the contract every music backend implements.
// Availability is decided once at startup from configuration (usually the
// presence of an API credential); an unavailable provider is skipped
// during fallback but may still be attempted as the last resort.
type InstrumentalProvider interface {
	Name() string
	Available() bool
	GenerateInstrumental(ctx context.Context, req GenerationRequest) (*GenerationResult, error)
}

// VocalsProvider is the optional vocal-synthesis capability. Only
// providers that also implement this interface can serve GenerateVocals.
type VocalsProvider interface {
	GenerateVocals(ctx context.Context, beatPath string, req GenerationRequest) (string, error)
}
