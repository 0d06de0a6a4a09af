// Package resolve runs the provider fallback chain for one search query.
package resolve

import (
	"context"
	"log"

	"github.com/steebus/notion-book-fetch/internal/entity"
	"github.com/steebus/notion-book-fetch/internal/metrics"
)

// Provider is one external book-search backend.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, query string) (*entity.BookMetadata, error)
}

// retrySuffix is appended to a free-text query when both providers come
// up empty, to disambiguate short titles.
const retrySuffix = " book"

// Pipeline resolves a query against the primary provider with fallback
// to the secondary one.
type Pipeline struct {
	primary  Provider
	fallback Provider
	metrics  *metrics.Metrics
}

func New(primary, fallback Provider, m *metrics.Metrics) *Pipeline {
	return &Pipeline{primary: primary, fallback: fallback, metrics: m}
}

// attempt pairs a provider with the query variant to send it.
type attempt struct {
	provider Provider
	query    string
}

// Resolve consumes the attempt chain in order and returns the first
// metadata any provider produces, or nil when every attempt misses.
// Lookup errors are logged and treated as misses; there is no delay
// between attempts.
func (p *Pipeline) Resolve(ctx context.Context, q entity.SearchQuery) *entity.BookMetadata {
	for _, a := range p.attempts(q) {
		meta, err := a.provider.Lookup(ctx, a.query)
		if err != nil {
			log.Printf("resolve: %s lookup %q failed: %v", a.provider.Name(), a.query, err)
			p.metrics.CountLookup(a.provider.Name(), metrics.LookupError)
			continue
		}
		if meta != nil {
			p.metrics.CountLookup(a.provider.Name(), metrics.LookupHit)
			return meta
		}
		p.metrics.CountLookup(a.provider.Name(), metrics.LookupMiss)
	}
	return nil
}

// attempts builds the ordered descriptor list: both providers with the
// original query, and for free-text queries a second round with the
// retry suffix appended. Four attempts maximum.
func (p *Pipeline) attempts(q entity.SearchQuery) []attempt {
	attempts := []attempt{
		{p.primary, q.Text},
		{p.fallback, q.Text},
	}
	if q.Kind == entity.QueryFreetext {
		relaxed := q.Text + retrySuffix
		attempts = append(attempts,
			attempt{p.primary, relaxed},
			attempt{p.fallback, relaxed},
		)
	}
	return attempts
}
