package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("unknown variant"), "use one of: edit, send")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "use one of: edit, send", hints[0])
}

func TestSentinels(t *testing.T) {
	nf := NewNotFoundError("session %s", "abc")
	assert.True(t, IsNotFoundError(nf))
	assert.False(t, IsInvalidRequestError(nf))
	assert.Contains(t, nf.Error(), "session abc")

	ir := NewInvalidRequestError("reply kind %q", "rename")
	assert.True(t, IsInvalidRequestError(Wrap(ir, "build reply")))
	assert.False(t, IsNotFoundError(nil))
}

func TestAssertionFailure(t *testing.T) {
	err := AssertionFailedf("span %d > %d", 9, 3)
	assert.True(t, HasAssertionFailure(err))
	assert.False(t, HasAssertionFailure(New("plain")))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
}

func ExampleWrap() {
	baseErr := New("no such table: sessions")
	err := Wrap(baseErr, "failed to list sessions")
	fmt.Println(err)
	// Output: failed to list sessions: no such table: sessions
}
