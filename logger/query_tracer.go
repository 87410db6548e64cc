package logger

import (
	"github.com/teranos/qresp/query"
	"go.uber.org/zap"
)

// queryTracer writes collector events as debug lines.
type queryTracer struct {
	log *zap.SugaredLogger
}

// QueryTracer adapts a zap logger to query.Tracer. Events are logged at debug level and
// have no effect on collected data. A nil logger yields query.NopTracer.
func QueryTracer(log *zap.SugaredLogger) query.Tracer {
	if log == nil {
		return query.NopTracer{}
	}
	return &queryTracer{log: log}
}

func (t *queryTracer) Ingested(file query.FileRef, r *query.Response) {
	t.log.Debugw("Ingested query response",
		FieldFile, string(file),
		FieldKind, r.Kind().String(),
		FieldRank, query.Rank(r.Kind()),
		FieldSpan, r.Span.String(),
	)
	if !r.Span.Valid() {
		t.log.Warnw("Query response has malformed span",
			FieldFile, string(file),
			FieldKind, r.Kind().String(),
			FieldSpan, r.Span.String(),
		)
	}
}

func (t *queryTracer) Skipped(file query.FileRef, index int, reason query.SkipReason) {
	t.log.Debugw("Skipped message",
		FieldFile, string(file),
		FieldIndex, index,
		FieldReason, reason.String(),
	)
}

func (t *queryTracer) Drained(file query.FileRef, n int) {
	t.log.Debugw("Drained query responses",
		FieldFile, string(file),
		FieldCount, n,
	)
}
