package fixture

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/query"
	"github.com/teranos/qresp/query/reply"
)

func TestLoad_AllFormatsAgree(t *testing.T) {
	for _, name := range []string{"hover.toml", "hover.yaml", "hover.json"} {
		t.Run(name, func(t *testing.T) {
			fx, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, query.FileRef("lib/a.rb"), fx.FileRef())
			assert.Equal(t, reply.Request{Kind: reply.RequestHover, Offset: 3}, fx.Request)
			require.Len(t, fx.Batches, 2)
			assert.Equal(t, 3, fx.ResponseCount())

			batches := fx.Messages()
			require.Len(t, batches, 2)
			assert.Nil(t, batches[0][1], "absent slot")
			assert.Equal(t, query.MessageDiagnostic, batches[1][0].Kind)
			assert.Equal(t, query.SeverityWarning, batches[1][0].Diagnostic.Severity)

			send, ok := batches[0][0].Response.Payload.(*query.Send)
			require.True(t, ok)
			assert.Equal(t, "A", send.Receiver)
			assert.Equal(t, "foo", send.Method)
			assert.Equal(t, []query.Location{{File: "lib/a.rb", Span: query.Span{Begin: 0, End: 1}}}, send.Definitions)

			edit, ok := batches[1][2].Response.Payload.(*query.Edit)
			require.True(t, ok)
			assert.Equal(t, []query.CompletionItem{{Label: "foo", Method: true, InsertText: "foo"}}, edit.Items)

			c := query.New(fx.FileRef())
			for _, b := range batches {
				c.Ingest(b)
			}
			assert.NoError(t, fx.Verify(c.Drain()))
		})
	}
}

func TestMessages_FreshContainers(t *testing.T) {
	fx, err := Load(filepath.Join("testdata", "completion.toml"))
	require.NoError(t, err)

	c := query.New(fx.FileRef())
	c.Ingest(fx.Messages()[0])
	c.Ingest(fx.Messages()[0])
	assert.Equal(t, 6, c.Len(), "each call yields containers that still hold their responses")
}

func TestLoad_DefaultKindIsResponse(t *testing.T) {
	fx, err := Load(filepath.Join("testdata", "completion.toml"))
	require.NoError(t, err)
	assert.Equal(t, 3, fx.ResponseCount())

	c := query.New(fx.FileRef())
	c.Ingest(fx.Messages()[0])
	assert.NoError(t, fx.Verify(c.Drain()))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.toml"))
	assert.True(t, errors.IsNotFoundError(err))

	_, err = Load("session.txt")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		want   string
	}{
		{"no file", `{"batches": []}`, FormatJSON, "no file"},
		{"unknown variant", `{"file": "a.rb", "batches": [{"messages": [{"variant": "lambda"}]}]}`, FormatJSON, "lambda"},
		{"unknown kind", "file: a.rb\nbatches:\n  - messages:\n      - kind: telemetry\n", FormatYAML, "telemetry"},
		{"unknown severity", "file = \"a.rb\"\n[[batch]]\n[[batch.message]]\nkind = \"diagnostic\"\nseverity = \"fatal\"\n", FormatTOML, "fatal"},
		{"unknown JSON field", `{"file": "a.rb", "bogus": 1}`, FormatJSON, "bogus"},
		{"broken TOML", "file = ", FormatTOML, "TOML"},
		{"unknown format", "", Format("xml"), "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestVerify(t *testing.T) {
	fx := &Fixture{File: "a.rb", Expect: []string{"edit[2,4)", "send[2,6)"}}
	ordered := []*query.Response{
		{Span: query.Span{Begin: 2, End: 4}, Payload: &query.Edit{}},
		{Span: query.Span{Begin: 2, End: 6}, Payload: &query.Send{}},
	}
	assert.NoError(t, fx.Verify(ordered))

	err := fx.Verify([]*query.Response{ordered[1], ordered[0]})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "position 0")

	assert.Error(t, fx.Verify(ordered[:1]))
	assert.NoError(t, (&Fixture{File: "a.rb"}).Verify(nil))
}

func TestDocument(t *testing.T) {
	fx := &Fixture{File: "lib/a.rb", Text: "x"}
	doc := fx.Document()
	assert.Equal(t, query.FileRef("lib/a.rb"), doc.File)
	assert.Equal(t, "file:///lib/a.rb", string(doc.URI))

	fx.URI = "file:///srv/lib/a.rb"
	assert.Equal(t, "file:///srv/lib/a.rb", string(fx.Document().URI))
}
