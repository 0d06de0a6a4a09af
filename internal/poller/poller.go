// Package poller runs resolution passes on a fixed interval when the
// service is not operating as a triggered web server.
package poller

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/steebus/notion-book-fetch/internal/enrich"
	"github.com/steebus/notion-book-fetch/internal/metrics"
)

// PassRunner executes one full resolution pass.
type PassRunner interface {
	Run(ctx context.Context) (*enrich.Report, error)
}

type Poller struct {
	runner   PassRunner
	interval time.Duration
	metrics  *metrics.Metrics
	errs     chan error
}

func New(runner PassRunner, interval time.Duration, m *metrics.Metrics) *Poller {
	return &Poller{
		runner:   runner,
		interval: interval,
		metrics:  m,
		errs:     make(chan error, 1),
	}
}

// Errors exposes per-pass failures to a supervisor. Failures are
// non-fatal either way; an unread error is dropped rather than
// blocking the loop.
func (p *Poller) Errors() <-chan error {
	return p.errs
}

// Start blocks, running one pass immediately and then one per interval
// until the context is canceled. A failed or panicking pass is reported
// and the loop continues at the next tick.
func (p *Poller) Start(ctx context.Context) {
	log.Printf("poller: checking every %s", p.interval)
	for {
		p.runOnce(ctx)

		select {
		case <-ctx.Done():
			log.Printf("poller: stopping: %v", ctx.Err())
			return
		case <-time.After(p.interval):
		}
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.CountPass(metrics.PassFailed)
			p.report(fmt.Errorf("pass panicked: %v", r))
		}
	}()

	if _, err := p.runner.Run(ctx); err != nil {
		p.report(err)
	}
}

func (p *Poller) report(err error) {
	log.Printf("poller: pass failed: %v", err)
	select {
	case p.errs <- err:
	default:
	}
}
