// Package enrich runs full resolution passes over the record store.
package enrich

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/steebus/notion-book-fetch/internal/entity"
	"github.com/steebus/notion-book-fetch/internal/metrics"
	"github.com/steebus/notion-book-fetch/internal/query"
)

// RecordStore is the external database holding book entries.
type RecordStore interface {
	ListRecords(ctx context.Context) ([]entity.SourceRecord, error)
	UpdateRecord(ctx context.Context, pageID string, meta *entity.BookMetadata, originalTitle string) error
}

// Resolver turns a search query into metadata, or nil when unresolved.
type Resolver interface {
	Resolve(ctx context.Context, q entity.SearchQuery) *entity.BookMetadata
}

// Report summarizes one pass. In-memory only, used for logging and the
// trigger response.
type Report struct {
	RunID        string
	Matched      int
	Resolved     int
	Unresolved   int
	Updated      int
	UpdateFailed int
	Outcomes     []entity.UpdateOutcome
	StartedAt    time.Time
	FinishedAt   time.Time
	Error        string
}

type Service struct {
	store    RecordStore
	resolver Resolver
	metrics  *metrics.Metrics

	// mu serializes passes: overlapping triggers wait rather than
	// interleave record processing.
	mu sync.Mutex
}

func NewService(store RecordStore, resolver Resolver, m *metrics.Metrics) *Service {
	return &Service{store: store, resolver: resolver, metrics: m}
}

// Run executes one full pass: list every record, keep the ones whose
// title carries the sentinel suffix, resolve each and write the result
// back. Records are processed strictly one at a time; per-record
// failures are logged and never abort the pass. Nothing marks a record
// as processed — a title still carrying the sentinel is picked up again
// on the next pass.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	defer func() {
		report.FinishedAt = time.Now()
	}()

	records, err := s.store.ListRecords(ctx)
	if err != nil {
		log.Printf("enrich: run %s: listing records failed: %v", report.RunID, err)
		report.Error = err.Error()
		s.metrics.CountPass(metrics.PassFailed)
		return report, err
	}
	log.Printf("enrich: run %s: fetched %d records", report.RunID, len(records))

	for _, record := range records {
		if !query.HasSentinel(record.Title) {
			continue
		}
		report.Matched++

		q := query.Classify(record.Title)
		log.Printf("enrich: run %s: searching %q (%s)", report.RunID, q.Text, q.Kind)

		meta := s.resolver.Resolve(ctx, q)
		if meta == nil {
			report.Unresolved++
			s.metrics.CountRecord(metrics.RecordUnresolved)
			log.Printf("enrich: run %s: no book information found for %q", report.RunID, q.Text)
			continue
		}
		report.Resolved++
		s.metrics.CountRecord(metrics.RecordResolved)

		outcome := entity.UpdateOutcome{PageID: record.ID, Title: record.Title}
		if err := s.store.UpdateRecord(ctx, record.ID, meta, record.Title); err != nil {
			report.UpdateFailed++
			s.metrics.CountRecord(metrics.RecordUpdateFailed)
			log.Printf("enrich: run %s: updating record %s failed: %v", report.RunID, record.ID, err)
		} else {
			outcome.Success = true
			report.Updated++
			s.metrics.CountRecord(metrics.RecordUpdated)
			log.Printf("enrich: run %s: updated record %s with %q", report.RunID, record.ID, meta.Title)
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	s.metrics.CountPass(metrics.PassOK)
	log.Printf("enrich: run %s: matched=%d resolved=%d unresolved=%d updated=%d failed=%d",
		report.RunID, report.Matched, report.Resolved, report.Unresolved, report.Updated, report.UpdateFailed)
	return report, nil
}
