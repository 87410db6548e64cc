package query

// MessageKind tags what an upstream message carries.
type MessageKind uint8

const (
	MessageQueryResponse MessageKind = iota
	MessageDiagnostic
	MessageProgress
)

func (k MessageKind) String() string {
	switch k {
	case MessageQueryResponse:
		return "query_response"
	case MessageDiagnostic:
		return "diagnostic"
	case MessageProgress:
		return "progress"
	}
	return "unknown"
}

// Severity of a diagnostic message.
type Severity uint8

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInfo
	SeverityHint
)

// Diagnostic is an error or warning produced alongside query responses. The collector
// never consumes it.
type Diagnostic struct {
	Span     Span
	Severity Severity
	Message  string
}

// Message is one item delivered by the upstream channel. Exactly one of Response,
// Diagnostic or Progress is set, matching Kind.
type Message struct {
	Kind       MessageKind
	Response   *Response
	Diagnostic *Diagnostic
	Progress   string
}

// ResponseMessage wraps r for delivery.
func ResponseMessage(r *Response) *Message {
	return &Message{Kind: MessageQueryResponse, Response: r}
}

// DiagnosticMessage wraps d for delivery.
func DiagnosticMessage(d *Diagnostic) *Message {
	return &Message{Kind: MessageDiagnostic, Diagnostic: d}
}

// ProgressMessage wraps a progress note for delivery.
func ProgressMessage(text string) *Message {
	return &Message{Kind: MessageProgress, Progress: text}
}

// TakeResponse moves the response out of m, leaving m empty. It returns nil when m is nil,
// not a query response, or already taken.
func (m *Message) TakeResponse() *Response {
	if m == nil || m.Kind != MessageQueryResponse {
		return nil
	}
	r := m.Response
	m.Response = nil
	return r
}
