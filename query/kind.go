package query

import (
	"fmt"

	"github.com/teranos/qresp/errors"
)

// Kind discriminates the variants of a query response.
type Kind uint8

const (
	KindOther Kind = iota
	KindLiteral
	KindConstant
	KindIdent
	KindField
	KindSend
	KindMethodDef
	KindEdit
)

var kindNames = [...]string{
	KindOther:     "other",
	KindLiteral:   "literal",
	KindConstant:  "constant",
	KindIdent:     "ident",
	KindField:     "field",
	KindSend:      "send",
	KindMethodDef: "method_def",
	KindEdit:      "edit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindOther, false
}

// MarshalText encodes a kind by name, so JSON, TOML and YAML never carry the enum value.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, errors.Newf("unknown response kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return errors.Newf("unknown response kind %q", text)
	}
	*k = parsed
	return nil
}

// Rank returns the specificity of a response kind. Higher is more specific.
// Rank only breaks ties between responses covering an identical span.
func Rank(k Kind) int {
	switch k {
	case KindEdit:
		// Only produced when the query asked for completions.
		return 8
	case KindMethodDef:
		return 7
	case KindSend:
		return 6
	case KindField:
		return 5
	case KindIdent:
		return 4
	case KindConstant:
		return 3
	case KindLiteral:
		return 2
	case KindOther:
		return 1
	}
	// Out-of-range kinds rank with the residual variant.
	return 1
}
