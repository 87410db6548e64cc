package fixture

import (
	"github.com/teranos/qresp/errors"
	"github.com/teranos/qresp/query"
)

func (m Message) toMessage() (*query.Message, error) {
	switch normalize(m.Kind) {
	case "absent":
		return nil, nil
	case "response", "":
		r, err := m.toResponse()
		if err != nil {
			return nil, err
		}
		return query.ResponseMessage(r), nil
	case "diagnostic":
		sev, err := parseSeverity(m.Severity)
		if err != nil {
			return nil, err
		}
		return query.DiagnosticMessage(&query.Diagnostic{
			Span:     query.Span{Begin: m.Begin, End: m.End},
			Severity: sev,
			Message:  m.Message,
		}), nil
	case "progress":
		return query.ProgressMessage(m.Message), nil
	}
	return nil, errors.WithHint(
		errors.NewInvalidRequestError("unknown message kind %q", m.Kind),
		"message kinds are: response, diagnostic, progress, absent",
	)
}

func (m Message) toResponse() (*query.Response, error) {
	kind, ok := query.ParseKind(normalize(m.Variant))
	if !ok {
		return nil, errors.WithHint(
			errors.NewInvalidRequestError("unknown response variant %q", m.Variant),
			"variants are: edit, method_def, send, field, ident, constant, literal, other",
		)
	}

	var p query.Payload
	switch kind {
	case query.KindEdit:
		p = &query.Edit{Prefix: m.Prefix, Items: m.Items}
	case query.KindMethodDef:
		p = &query.MethodDef{Symbol: m.Symbol, Signature: m.Signature}
	case query.KindSend:
		p = &query.Send{Receiver: m.Receiver, Method: m.Name, ResultType: m.Type, Definitions: locations(m.Defs)}
	case query.KindField:
		p = &query.Field{Name: m.Name, Type: m.Type, Definitions: locations(m.Defs)}
	case query.KindIdent:
		p = &query.Ident{Name: m.Name, Type: m.Type, Definitions: locations(m.Defs)}
	case query.KindConstant:
		p = &query.Constant{Symbol: m.Symbol, Definitions: locations(m.Defs)}
	case query.KindLiteral:
		p = &query.Literal{Type: m.Type}
	case query.KindOther:
		p = &query.Other{Description: m.Message}
	}
	return &query.Response{Span: query.Span{Begin: m.Begin, End: m.End}, Payload: p}, nil
}

func locations(defs []Location) []query.Location {
	if len(defs) == 0 {
		return nil
	}
	out := make([]query.Location, len(defs))
	for i, d := range defs {
		out[i] = query.Location{File: query.FileRef(d.File), Span: query.Span{Begin: d.Begin, End: d.End}}
	}
	return out
}

func parseSeverity(s string) (query.Severity, error) {
	switch normalize(s) {
	case "error", "":
		return query.SeverityError, nil
	case "warning":
		return query.SeverityWarning, nil
	case "info":
		return query.SeverityInfo, nil
	case "hint":
		return query.SeverityHint, nil
	}
	return 0, errors.NewInvalidRequestError("unknown diagnostic severity %q", s)
}
