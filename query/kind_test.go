package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	want := map[Kind]int{
		KindEdit:      8,
		KindMethodDef: 7,
		KindSend:      6,
		KindField:     5,
		KindIdent:     4,
		KindConstant:  3,
		KindLiteral:   2,
		KindOther:     1,
	}
	for k, rank := range want {
		assert.Equal(t, rank, Rank(k), k.String())
	}
	assert.Equal(t, 1, Rank(Kind(200)))
}

func TestPayloadKinds(t *testing.T) {
	tests := []struct {
		payload Payload
		want    Kind
	}{
		{&Edit{}, KindEdit},
		{&MethodDef{}, KindMethodDef},
		{&Send{}, KindSend},
		{&Field{}, KindField},
		{&Ident{}, KindIdent},
		{&Constant{}, KindConstant},
		{&Literal{}, KindLiteral},
		{&Other{}, KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			r := &Response{Payload: tt.payload}
			assert.Equal(t, tt.want, r.Kind())
		})
	}

	var nilResp *Response
	assert.Equal(t, KindOther, nilResp.Kind())
	assert.Equal(t, KindOther, (&Response{}).Kind())
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("method_def")
	assert.True(t, ok)
	assert.Equal(t, KindMethodDef, k)

	_, ok = ParseKind("lambda")
	assert.False(t, ok)
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestKindJSONUsesNames(t *testing.T) {
	data, err := json.Marshal(struct {
		Kind Kind `json:"kind"`
		Rank int  `json:"rank"`
	}{KindMethodDef, Rank(KindMethodDef)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"method_def","rank":7}`, string(data))

	var decoded struct {
		Kinds []Kind `json:"kinds"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kinds":["edit","other"]}`), &decoded))
	assert.Equal(t, []Kind{KindEdit, KindOther}, decoded.Kinds)

	assert.Error(t, json.Unmarshal([]byte(`{"kinds":["lambda"]}`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`{"kinds":[6]}`), &decoded))

	_, err = json.Marshal(Kind(42))
	assert.Error(t, err)
}

func TestSpan(t *testing.T) {
	s := Span{Begin: 5, End: 10}
	assert.Equal(t, uint32(5), s.Len())
	assert.True(t, s.Valid())
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(10))
	assert.Equal(t, "[5,10)", s.String())

	empty := Span{Begin: 3, End: 3}
	assert.True(t, empty.Contains(3))

	bad := Span{Begin: 9, End: 2}
	assert.False(t, bad.Valid())
	assert.Equal(t, uint32(0), bad.Len())
}

func TestResponseDefinitions(t *testing.T) {
	def := Location{File: "b.rb", Span: Span{Begin: 1, End: 9}}

	md := &Response{Span: Span{Begin: 2, End: 4}, Payload: &MethodDef{Symbol: "A#b"}}
	assert.Equal(t, []Location{{File: "a.rb", Span: Span{Begin: 2, End: 4}}}, md.Definitions("a.rb"))

	send := &Response{Payload: &Send{Definitions: []Location{def}}}
	assert.Equal(t, []Location{def}, send.Definitions("a.rb"))

	assert.Nil(t, (&Response{Payload: &Literal{}}).Definitions("a.rb"))
}
