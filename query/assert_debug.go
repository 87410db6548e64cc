//go:build qresp_debug

package query

import "github.com/teranos/qresp/errors"

const debugAssertions = true

func assertSpan(r *Response) {
	if !r.Span.Valid() {
		panic(errors.AssertionFailedf("query response %s has malformed span %s", r.Kind(), r.Span))
	}
}
