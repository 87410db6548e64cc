package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/qresp/query"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		wantLevel  zapcore.Level
	}{
		{"JSON output mode", true, 0, zapcore.WarnLevel},
		{"Console output mode", false, 1, zapcore.InfoLevel},
		{"Console debug", false, 2, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() {
				Logger = zap.NewNop().Sugar()
				Verbosity = 0
			})

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.verbosity, Verbosity)
			assert.True(t, Logger.Desugar().Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, Logger.Desugar().Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(7))

	assert.False(t, ShouldTraceIngest(VerbosityDebug))
	assert.True(t, ShouldTraceIngest(VerbosityTrace))
	assert.Equal(t, "Trace (-vvv+)", LevelName(5))
	assert.Equal(t, "Unknown", LevelName(-1))
}

func TestFieldsFromContext(t *testing.T) {
	ctx := WithSession(context.Background(), "s-1")
	ctx = WithComponent(ctx, "replay")

	fields := FieldsFromContext(ctx)
	assert.Equal(t, []interface{}{FieldSession, "s-1", FieldComponent, "replay"}, fields)
	assert.Empty(t, FieldsFromContext(context.Background()))
}

func TestQueryTracer(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := QueryTracer(zap.New(core).Sugar())

	c := query.New("a.rb", query.WithTracer(tr))
	c.Ingest([]*query.Message{
		nil,
		query.ResponseMessage(&query.Response{Span: query.Span{Begin: 2, End: 4}, Payload: &query.Edit{}}),
	})
	c.Drain()

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "Skipped message", entries[0].Message)
	assert.Equal(t, "absent", entries[0].ContextMap()[FieldReason])

	ingest := entries[1].ContextMap()
	assert.Equal(t, "Ingested query response", entries[1].Message)
	assert.Equal(t, "edit", ingest[FieldKind])
	assert.Equal(t, int64(8), ingest[FieldRank])
	assert.Equal(t, "[2,4)", ingest[FieldSpan])
	assert.Equal(t, "a.rb", ingest[FieldFile])

	assert.Equal(t, "Drained query responses", entries[2].Message)
	assert.Equal(t, int64(1), entries[2].ContextMap()[FieldCount])
}

func TestQueryTracer_MalformedSpanWarns(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := QueryTracer(zap.New(core).Sugar())

	tr.Ingested("a.rb", &query.Response{Span: query.Span{Begin: 9, End: 1}})
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestQueryTracer_NilLogger(t *testing.T) {
	assert.IsType(t, query.NopTracer{}, QueryTracer(nil))
}
