// Package reply turns an ordered sequence of query responses into LSP replies.
//
// The first response in drained order is the most specific interpretation of the query
// location, so single-answer replies (hover, definition) read from the front.
package reply

import (
	"fmt"
	"strings"

	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/internal/util"
	"github.com/teranos/qresp/query"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// RequestKind names the IDE request being answered.
type RequestKind string

const (
	RequestHover      RequestKind = "hover"
	RequestDefinition RequestKind = "definition"
	RequestReferences RequestKind = "references"
	RequestCompletion RequestKind = "completion"
)

// Request describes the query that produced a session's responses.
type Request struct {
	Kind   RequestKind `json:"kind" toml:"kind" yaml:"kind"`
	Offset uint32      `json:"offset" toml:"offset" yaml:"offset"`
}

// Options tune reply construction.
type Options struct {
	// Markdown selects markdown hover contents; plain text otherwise.
	Markdown bool
	// MaxCompletionItems caps completion lists. Zero means no cap.
	MaxCompletionItems int
}

// Resolver maps a file identifier to its document. Locations in files it cannot resolve
// are dropped.
type Resolver func(query.FileRef) (*Document, bool)

// Single resolves only doc's own file.
func Single(doc *Document) Resolver {
	return func(f query.FileRef) (*Document, bool) {
		if f == doc.File {
			return doc, true
		}
		return nil, false
	}
}

// Build answers req from ordered responses. A nil resolver resolves doc's own file only.
func Build(req Request, doc *Document, resolve Resolver, ordered []*query.Response, opts Options) (any, error) {
	if resolve == nil {
		resolve = Single(doc)
	}
	switch req.Kind {
	case RequestHover:
		return Hover(doc, ordered, opts), nil
	case RequestDefinition:
		return Definition(doc.File, resolve, ordered), nil
	case RequestReferences:
		return References(doc, ordered), nil
	case RequestCompletion:
		return Completion(ordered, opts.MaxCompletionItems), nil
	}
	return nil, errors.WithHint(
		errors.NewInvalidRequestError("unknown request kind %q", req.Kind),
		"supported kinds: hover, definition, references, completion",
	)
}

// Hover renders the first response that has something to say. It returns nil when no
// response does.
func Hover(doc *Document, ordered []*query.Response, opts Options) *protocol.Hover {
	for _, r := range ordered {
		text := HoverText(r)
		if text == "" {
			continue
		}
		kind := protocol.MarkupKindPlainText
		if opts.Markdown {
			kind = protocol.MarkupKindMarkdown
			text = "```\n" + text + "\n```"
		}
		rng := doc.rangeOf(r.Span.Begin, r.Span.End)
		return &protocol.Hover{
			Contents: protocol.MarkupContent{Kind: kind, Value: text},
			Range:    &rng,
		}
	}
	return nil
}

// HoverText describes a response in one line, or returns "" when it carries nothing
// worth showing.
func HoverText(r *query.Response) string {
	switch p := r.Payload.(type) {
	case *query.MethodDef:
		if p.Signature != "" {
			return p.Signature
		}
		return p.Symbol
	case *query.Send:
		call := p.Method
		if p.Receiver != "" {
			call = p.Receiver + "#" + p.Method
		}
		if p.ResultType == "" {
			return call
		}
		return fmt.Sprintf("%s: %s", call, p.ResultType)
	case *query.Field:
		return typed(p.Name, p.Type)
	case *query.Ident:
		return typed(p.Name, p.Type)
	case *query.Constant:
		return p.Symbol
	case *query.Literal:
		return p.Type
	case *query.Other:
		return p.Description
	}
	// Edits answer completion requests, not hovers.
	return ""
}

func typed(name, typ string) string {
	if typ == "" {
		return name
	}
	if name == "" {
		return typ
	}
	return name + ": " + typ
}

// Definition returns the definition sites of the first response that has any.
func Definition(file query.FileRef, resolve Resolver, ordered []*query.Response) []protocol.Location {
	for _, r := range ordered {
		defs := r.Definitions(file)
		if len(defs) == 0 {
			continue
		}
		locs := make([]protocol.Location, 0, len(defs))
		for _, def := range defs {
			target, ok := resolve(def.File)
			if !ok {
				continue
			}
			locs = append(locs, protocol.Location{URI: target.URI, Range: target.rangeOf(def.Span.Begin, def.Span.End)})
		}
		if len(locs) > 0 {
			return locs
		}
	}
	return []protocol.Location{}
}

// References lists every response span in drained order, skipping duplicates.
func References(doc *Document, ordered []*query.Response) []protocol.Location {
	locs := make([]protocol.Location, 0, len(ordered))
	seen := make(map[query.Span]bool, len(ordered))
	for _, r := range ordered {
		if seen[r.Span] {
			continue
		}
		seen[r.Span] = true
		locs = append(locs, protocol.Location{URI: doc.URI, Range: doc.rangeOf(r.Span.Begin, r.Span.End)})
	}
	return locs
}

// Completion gathers the items of every Edit response, in drained order. max caps the
// list and marks it incomplete when items were cut.
func Completion(ordered []*query.Response, max int) *protocol.CompletionList {
	list := &protocol.CompletionList{Items: []protocol.CompletionItem{}}
	for _, r := range ordered {
		edit, ok := r.Payload.(*query.Edit)
		if !ok {
			continue
		}
		for _, item := range edit.Items {
			if max > 0 && len(list.Items) >= max {
				list.IsIncomplete = true
				return list
			}
			list.Items = append(list.Items, completionItem(item, len(list.Items)))
		}
	}
	return list
}

func completionItem(item query.CompletionItem, position int) protocol.CompletionItem {
	kind := protocol.CompletionItemKindVariable
	if item.Method {
		kind = protocol.CompletionItemKindMethod
	}
	// SortText preserves drained order in clients that re-sort by label.
	return protocol.CompletionItem{
		Label:      item.Label,
		Kind:       &kind,
		Detail:     stringPtrOrNil(item.Detail),
		InsertText: stringPtrOrNil(item.InsertText),
		SortText:   util.Ptr(fmt.Sprintf("%04d", position)),
	}
}

func stringPtrOrNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
