// Package replay runs a recorded session end to end: producers deliver the fixture's
// batches concurrently, a single pump feeds them to a collector, and the drained order
// is answered as an LSP reply and optionally journaled.
package replay

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/qresp/am"
	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/fixture"
	"github.com/teranos/qresp/journal"
	"github.com/teranos/qresp/logger"
	"github.com/teranos/qresp/query"
	"github.com/teranos/qresp/query/reply"
)

// Collector is what the pump feeds and the session drains.
type Collector interface {
	query.Ingester
	Drain() []*query.Response
}

// Runner replays fixtures.
type Runner struct {
	config  *am.Config
	logger  *zap.SugaredLogger
	tracer  query.Tracer
	journal *journal.Journal
}

// Option configures a Runner.
type Option func(*Runner)

// WithJournal records every drained session.
func WithJournal(j *journal.Journal) Option {
	return func(r *Runner) { r.journal = j }
}

// WithTracer overrides the tracer derived from config.
func WithTracer(t query.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// New creates a runner. A nil logger discards logs.
func New(config *am.Config, log *zap.SugaredLogger, opts ...Option) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Runner{config: config, logger: log, tracer: query.NopTracer{}}
	if config.Trace.Enabled {
		r.tracer = logger.QueryTracer(log.Named("collector"))
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is the outcome of one replayed session.
type Result struct {
	File     query.FileRef
	Request  reply.Request
	Ordered  []*query.Response
	Reply    any
	Batches  int
	Session  *journal.Session
	Duration time.Duration
	// Mismatch is set when the fixture lists an expected order that was not drained.
	Mismatch error
}

// Run replays fx once.
func (r *Runner) Run(ctx context.Context, fx *fixture.Fixture) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "replay not started")
	}
	start := time.Now()
	c := r.newCollector(fx.FileRef())

	batches, err := r.deliver(ctx, r.contextLogger(ctx), fx.Messages(), c)
	if err != nil {
		return nil, err
	}

	// Every producer has finished; the single drain happens here.
	ordered := c.Drain()

	res := &Result{
		File:     fx.FileRef(),
		Request:  fx.Request,
		Ordered:  ordered,
		Batches:  batches,
		Mismatch: fx.Verify(ordered),
	}

	if fx.Request.Kind != "" {
		opts := reply.Options{
			Markdown:           r.config.Reply.Markdown,
			MaxCompletionItems: r.config.Reply.MaxCompletionItems,
		}
		res.Reply, err = reply.Build(fx.Request, fx.Document(), nil, ordered, opts)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build reply")
		}
	}

	if r.journal != nil {
		res.Session, err = r.journal.Record(ctx, res.File, res.Request, ordered)
		if err != nil {
			return nil, errors.Wrap(err, "failed to journal session")
		}
		ctx = logger.WithSession(ctx, res.Session.ID)
	}

	res.Duration = time.Since(start)
	log := r.contextLogger(ctx)
	log.Infow("Replayed session",
		logger.FieldFile, string(res.File),
		logger.FieldRequest, string(res.Request.Kind),
		logger.FieldBatch, res.Batches,
		logger.FieldCount, len(ordered),
		logger.FieldDurationMS, res.Duration.Milliseconds(),
	)
	if res.Mismatch != nil {
		log.Warnw("Drained order differs from fixture expectation",
			logger.FieldFile, string(res.File),
			logger.FieldError, res.Mismatch,
		)
	}
	return res, nil
}

// contextLogger tags the runner's logger with the request, component and session
// carried by ctx.
func (r *Runner) contextLogger(ctx context.Context) *zap.SugaredLogger {
	if fields := logger.FieldsFromContext(ctx); len(fields) > 0 {
		return r.logger.With(fields...)
	}
	return r.logger
}

func (r *Runner) newCollector(file query.FileRef) Collector {
	opts := []query.Option{
		query.WithTracer(r.tracer),
		query.WithCapacity(r.config.Collector.ExpectedResponses),
	}
	if r.config.Collector.Synchronized {
		return query.NewSync(file, opts...)
	}
	return query.New(file, opts...)
}

// deliver sends batches from concurrent producers through a channel that a single pump
// drains into c. Batches are handed to producers round-robin, so arrival order across
// producers is not deterministic.
func (r *Runner) deliver(ctx context.Context, log *zap.SugaredLogger, batches [][]*query.Message, c Collector) (int, error) {
	producers := r.config.Pump.Producers
	if producers <= 0 {
		producers = 1
	}
	ch := make(chan []*query.Message, r.config.Pump.Buffer)

	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < producers; p++ {
		g.Go(func() error {
			for i := p; i < len(batches); i += producers {
				select {
				case ch <- batches[i]:
					log.Debugw("Delivered batch",
						logger.FieldBatch, i,
						logger.FieldBatchSize, len(batches[i]),
					)
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		// Close once every producer has returned, successfully or not
		_ = g.Wait()
		close(ch)
		close(done)
	}()

	n, pumpErr := query.Pump(ctx, ch, c)
	if pumpErr != nil {
		// Unblock producers still waiting to send
		go func() {
			for range ch {
			}
		}()
		<-done
		return n, errors.Wrap(pumpErr, "replay interrupted")
	}
	<-done
	if err := g.Wait(); err != nil {
		return n, errors.Wrap(err, "producer failed")
	}
	return n, nil
}
