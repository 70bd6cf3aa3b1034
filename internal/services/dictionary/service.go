// -----------------------------------------------------------------------
// Definition Service - resolves candidate terms to simplified
// definitions, memoized in-process for the lifetime of the service
// -----------------------------------------------------------------------

package dictionary

import (
	"context"
	"errors"
	"strings"
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/interfaces"
)

const (
	// FallbackNotFound is returned and cached when the dictionary knows
	// nothing about a term.
	FallbackNotFound = "Definition not found."
	// FallbackLookupFailed is returned and cached when the lookup call
	// itself fails. Both fallbacks count as successful resolutions so a
	// single bad term never blocks its batch.
	FallbackLookupFailed = "Failed to get definition."
)

// Service resolves terms to simplified definitions. Definitions are a pure
// function of the term, so resolved values are cached without expiry and
// each unique term costs at most one external call per process lifetime.
type Service struct {
	client      interfaces.DictionaryClient
	cache       *gocache.Cache
	concurrency int
	logger      arbor.ILogger
}

// NewService creates a new definition service
func NewService(client interfaces.DictionaryClient, concurrency int, logger arbor.ILogger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		client:      client,
		cache:       gocache.New(gocache.NoExpiration, 0),
		concurrency: concurrency,
		logger:      logger,
	}
}

// Resolve maps each input term to its simplified definition. Keys of the
// returned map are the raw input terms; cache keys are normalized
// (lowercased, trimmed) so casing variants share one definition. Lookup
// failures degrade to fallback strings rather than failing the batch.
func (s *Service) Resolve(ctx context.Context, terms []string) map[string]string {
	results := make(map[string]string, len(terms))
	if len(terms) == 0 {
		return results
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	sem := make(chan struct{}, s.concurrency)
	pending := make(map[string]struct{}, len(terms))

	for _, term := range terms {
		key := normalizeTerm(term)
		if key == "" {
			continue
		}

		if cached, ok := s.cache.Get(key); ok {
			mu.Lock()
			results[term] = cached.(string)
			mu.Unlock()
			continue
		}

		// One fetch per unique normalized term per batch; casing
		// variants reuse the same in-flight result via the cache on a
		// later Resolve, and within the batch via pending.
		if _, inFlight := pending[key]; inFlight {
			continue
		}
		pending[key] = struct{}{}

		wg.Add(1)
		sem <- struct{}{}

		go func(raw, key string) {
			defer wg.Done()
			defer func() { <-sem }()

			definition := s.fetch(ctx, key)
			s.cache.Set(key, definition, gocache.NoExpiration)

			mu.Lock()
			results[raw] = definition
			mu.Unlock()
		}(term, key)
	}

	wg.Wait()

	// Casing variants skipped as in-flight duplicates resolve off the
	// now-populated cache.
	for _, term := range terms {
		key := normalizeTerm(term)
		if key == "" {
			continue
		}
		if _, ok := results[term]; ok {
			continue
		}
		if cached, found := s.cache.Get(key); found {
			results[term] = cached.(string)
		}
	}

	return results
}

// fetch performs the external lookup and simplification for one term.
func (s *Service) fetch(ctx context.Context, term string) string {
	definition, err := s.client.Lookup(ctx, term)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoDefinition) {
			s.logger.Debug().Str("term", term).Msg("No definition available")
			return FallbackNotFound
		}
		s.logger.Warn().Err(err).Str("term", term).Msg("Definition lookup failed")
		return FallbackLookupFailed
	}
	return Simplify(definition)
}

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
