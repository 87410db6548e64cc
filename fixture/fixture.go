// Package fixture loads recorded query sessions: the document, the request and the
// batches of upstream messages a collector received while answering it.
package fixture

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/query"
	"github.com/teranos/qresp/query/reply"
)

// Fixture is one recorded session in file form.
type Fixture struct {
	File    string        `toml:"file" yaml:"file" json:"file"`
	URI     string        `toml:"uri" yaml:"uri" json:"uri"`
	Text    string        `toml:"text" yaml:"text" json:"text"`
	Request reply.Request `toml:"request" yaml:"request" json:"request"`
	Batches []Batch       `toml:"batch" yaml:"batches" json:"batches"`
	// Expect optionally lists the drained order as "kind[begin,end)" strings.
	Expect []string `toml:"expect" yaml:"expect" json:"expect"`
}

// Batch is one delivery from the upstream channel.
type Batch struct {
	Messages []Message `toml:"message" yaml:"messages" json:"messages"`
}

// Message is the file form of a query.Message.
type Message struct {
	// Kind is response, diagnostic, progress or absent.
	Kind    string `toml:"kind" yaml:"kind" json:"kind"`
	Variant string `toml:"variant" yaml:"variant" json:"variant"`
	Begin   uint32 `toml:"begin" yaml:"begin" json:"begin"`
	End     uint32 `toml:"end" yaml:"end" json:"end"`

	// Payload fields; which apply depends on Variant.
	Name      string                 `toml:"name" yaml:"name" json:"name"`
	Type      string                 `toml:"type" yaml:"type" json:"type"`
	Receiver  string                 `toml:"receiver" yaml:"receiver" json:"receiver"`
	Symbol    string                 `toml:"symbol" yaml:"symbol" json:"symbol"`
	Signature string                 `toml:"signature" yaml:"signature" json:"signature"`
	Prefix    string                 `toml:"prefix" yaml:"prefix" json:"prefix"`
	Items     []query.CompletionItem `toml:"items" yaml:"items" json:"items"`
	Defs      []Location             `toml:"defs" yaml:"defs" json:"defs"`
	Message   string                 `toml:"message" yaml:"message" json:"message"`
	Severity  string                 `toml:"severity" yaml:"severity" json:"severity"`
}

// Location is the file form of a definition site.
type Location struct {
	File  string `toml:"file" yaml:"file" json:"file"`
	Begin uint32 `toml:"begin" yaml:"begin" json:"begin"`
	End   uint32 `toml:"end" yaml:"end" json:"end"`
}

// Format selects a decoder.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.WithHint(
		errors.NewInvalidRequestError("unsupported fixture extension %q", filepath.Ext(path)),
		"fixtures must end in .toml, .yaml, .yml or .json",
	)
}

// Load reads and validates a fixture file.
func Load(path string) (*Fixture, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.NewNotFoundError("fixture %s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read fixture %s", path)
	}
	fx, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "fixture %s", path)
	}
	return fx, nil
}

// Decode parses data in the given format and validates it.
func Decode(data []byte, format Format) (*Fixture, error) {
	var fx Fixture
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &fx); err != nil {
			return nil, errors.Wrap(err, "failed to decode TOML")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &fx); err != nil {
			return nil, errors.Wrap(err, "failed to decode YAML")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&fx); err != nil {
			return nil, errors.Wrap(err, "failed to decode JSON")
		}
	default:
		return nil, errors.NewInvalidRequestError("unknown fixture format %q", format)
	}

	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate checks every message can be converted.
func (f *Fixture) Validate() error {
	if f.File == "" {
		return errors.NewInvalidRequestError("fixture has no file")
	}
	for b, batch := range f.Batches {
		for i, m := range batch.Messages {
			if _, err := m.toMessage(); err != nil {
				return errors.Wrapf(err, "batch %d message %d", b, i)
			}
		}
	}
	return nil
}

// FileRef is the identifier responses in this fixture refer to their own file by.
func (f *Fixture) FileRef() query.FileRef {
	return query.FileRef(f.File)
}

// Document returns the fixture's source text indexed for reply building.
func (f *Fixture) Document() *reply.Document {
	uri := f.URI
	if uri == "" {
		uri = "file:///" + strings.TrimPrefix(filepath.ToSlash(f.File), "/")
	}
	return reply.NewDocument(f.FileRef(), uri, f.Text)
}

// Messages converts the fixture into fresh upstream batches. Each call returns new
// containers, since ingestion empties them.
func (f *Fixture) Messages() [][]*query.Message {
	out := make([][]*query.Message, len(f.Batches))
	for b, batch := range f.Batches {
		msgs := make([]*query.Message, len(batch.Messages))
		for i, m := range batch.Messages {
			// Validate already rejected anything that fails here.
			msgs[i], _ = m.toMessage()
		}
		out[b] = msgs
	}
	return out
}

// ResponseCount is the number of query responses across all batches.
func (f *Fixture) ResponseCount() int {
	n := 0
	for _, batch := range f.Batches {
		for _, m := range batch.Messages {
			if k := normalize(m.Kind); k == "response" || k == "" {
				n++
			}
		}
	}
	return n
}

// Describe renders a response the way Expect lists it.
func Describe(r *query.Response) string {
	return r.Kind().String() + r.Span.String()
}

// Verify compares a drained order against Expect. A fixture without Expect always
// verifies.
func (f *Fixture) Verify(ordered []*query.Response) error {
	if len(f.Expect) == 0 {
		return nil
	}
	got := make([]string, len(ordered))
	for i, r := range ordered {
		got[i] = Describe(r)
	}
	if len(got) != len(f.Expect) {
		return errors.Newf("expected %d responses, drained %d: %v", len(f.Expect), len(got), got)
	}
	for i := range got {
		if got[i] != f.Expect[i] {
			return errors.WithDetailf(
				errors.Newf("position %d: expected %s, drained %s", i, f.Expect[i], got[i]),
				"drained order: %v", got,
			)
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
