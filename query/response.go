package query

// FileRef identifies the file a session's responses were produced for.
type FileRef string

// Location points at a span in some file, typically a definition site.
type Location struct {
	File FileRef `json:"file"`
	Span Span    `json:"span"`
}

// Response is one candidate interpretation of the code at a query location.
type Response struct {
	Span    Span
	Payload Payload
}

// Kind returns the variant of the response. A response without payload is KindOther.
func (r *Response) Kind() Kind {
	if r == nil || r.Payload == nil {
		return KindOther
	}
	return r.Payload.Kind()
}

// Payload is the variant-specific part of a response. The set of implementations is closed;
// see the types below.
type Payload interface {
	Kind() Kind
	payload()
}

// CompletionItem is a single autocomplete suggestion carried by an Edit.
type CompletionItem struct {
	Label      string `json:"label" toml:"label" yaml:"label"`
	Detail     string `json:"detail,omitempty" toml:"detail" yaml:"detail"`
	InsertText string `json:"insert_text,omitempty" toml:"insert_text" yaml:"insert_text"`
	// Method is true when the suggestion names a method rather than a value.
	Method bool `json:"method,omitempty" toml:"method" yaml:"method"`
}

// Edit is an autocomplete suggestion set for the text at Span.
type Edit struct {
	Prefix string
	Items  []CompletionItem
}

// MethodDef is the definition site of a method.
type MethodDef struct {
	Symbol    string
	Signature string
}

// Send is a call site.
type Send struct {
	Receiver    string
	Method      string
	ResultType  string
	Definitions []Location
}

// Field is a reference to an instance or class field.
type Field struct {
	Name        string
	Type        string
	Definitions []Location
}

// Ident is a local variable reference.
type Ident struct {
	Name        string
	Type        string
	Definitions []Location
}

// Constant is a reference to a constant, class or module.
type Constant struct {
	Symbol      string
	Definitions []Location
}

// Literal is a literal expression.
type Literal struct {
	Type string
}

// Other covers expressions with no more specific interpretation.
type Other struct {
	Description string
}

func (*Edit) Kind() Kind      { return KindEdit }
func (*MethodDef) Kind() Kind { return KindMethodDef }
func (*Send) Kind() Kind      { return KindSend }
func (*Field) Kind() Kind     { return KindField }
func (*Ident) Kind() Kind     { return KindIdent }
func (*Constant) Kind() Kind  { return KindConstant }
func (*Literal) Kind() Kind   { return KindLiteral }
func (*Other) Kind() Kind     { return KindOther }

func (*Edit) payload()      {}
func (*MethodDef) payload() {}
func (*Send) payload()      {}
func (*Field) payload()     {}
func (*Ident) payload()     {}
func (*Constant) payload()  {}
func (*Literal) payload()   {}
func (*Other) payload()     {}

// Definitions returns the definition sites a response points at. A MethodDef is its own
// definition in file.
func (r *Response) Definitions(file FileRef) []Location {
	if r == nil {
		return nil
	}
	switch p := r.Payload.(type) {
	case *MethodDef:
		return []Location{{File: file, Span: r.Span}}
	case *Send:
		return p.Definitions
	case *Field:
		return p.Definitions
	case *Ident:
		return p.Definitions
	case *Constant:
		return p.Definitions
	}
	return nil
}
