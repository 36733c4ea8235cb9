package music

import (
	"context"
	"time"

	"benixspace-be/internal/pkg/logger"
)

// Selector tries providers in preference order until one succeeds. Each
// provider failure is non-fatal; only exhaustion of all candidates raises.
// The provider table is read-only after construction, so a Selector is
// safe for concurrent use.
type Selector struct {
	providers map[string]InstrumentalProvider
	order     []string // default preference order
	timeout   time.Duration
	logger    logger.ILogger
}

// NewSelector builds a selector over the given providers. The argument
// order is the default preference order; the last provider is the
// degrade-of-last-resort attempted even when nothing reports available.
// timeout bounds each individual provider attempt; zero disables it.
func NewSelector(log logger.ILogger, timeout time.Duration, providers ...InstrumentalProvider) *Selector {
	table := make(map[string]InstrumentalProvider, len(providers))
	order := make([]string, 0, len(providers))
	available := make([]string, 0, len(providers))
	for _, p := range providers {
		table[p.Name()] = p
		order = append(order, p.Name())
		if p.Available() {
			available = append(available, p.Name())
		}
	}

	log.Info("MUSIC", "Available music services", map[string]interface{}{
		"services": available,
	})

	return &Selector{
		providers: table,
		order:     order,
		timeout:   timeout,
		logger:    log,
	}
}

// candidateOrder is deterministic for a given (preferred, availability)
// pair: preferred first when available, then the default order filtered to
// available providers. When nothing is available the lowest-priority
// provider is still returned so the request degrades instead of failing
// outright.
func (s *Selector) candidateOrder(preferred string) []string {
	order := make([]string, 0, len(s.order))
	if p, ok := s.providers[preferred]; ok && p.Available() {
		order = append(order, preferred)
	}
	for _, name := range s.order {
		if name == preferred && len(order) > 0 && order[0] == preferred {
			continue
		}
		if s.providers[name].Available() {
			order = append(order, name)
		}
	}
	if len(order) == 0 {
		order = append(order, s.order[len(s.order)-1])
	}
	return order
}

// GenerateMusic attempts instrumental generation across the candidate
// order, returning on the first success with ServiceUsed stamped. When
// every candidate fails the error from the last attempt is surfaced,
// wrapped in *AllProvidersFailedError.
func (s *Selector) GenerateMusic(ctx context.Context, req GenerationRequest, preferred string) (*GenerationResult, error) {
	var lastErr error
	var lastName string

	for _, name := range s.candidateOrder(preferred) {
		provider := s.providers[name]

		s.logger.Info("MUSIC", "Attempting music generation", map[string]interface{}{
			"service": name,
		})

		result, err := s.attempt(ctx, provider, req)
		if err == nil {
			result.ServiceUsed = name
			return result, nil
		}

		s.logger.Error("MUSIC", "Music service failed, trying next", map[string]interface{}{
			"service": name,
			"error":   err.Error(),
		})
		lastErr = err
		lastName = name
	}

	return nil, &AllProvidersFailedError{LastService: lastName, Err: lastErr}
}

// attempt bounds a single provider call so a hung backend falls through
// to the next candidate instead of stalling the request.
func (s *Selector) attempt(ctx context.Context, provider InstrumentalProvider, req GenerationRequest) (*GenerationResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return provider.GenerateInstrumental(ctx, req)
}

// GenerateVocals routes to the first available provider that implements
// vocal synthesis. Returns ErrCapabilityUnavailable when none does; the
// caller decides whether that is fatal.
func (s *Selector) GenerateVocals(ctx context.Context, beatPath string, req GenerationRequest) (string, error) {
	for _, name := range s.order {
		provider := s.providers[name]
		vocals, ok := provider.(VocalsProvider)
		if !ok || !provider.Available() {
			continue
		}
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		return vocals.GenerateVocals(ctx, beatPath, req)
	}
	return "", ErrCapabilityUnavailable
}
