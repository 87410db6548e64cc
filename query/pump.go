package query

import "context"

// Pump ingests batches from ch into sink one at a time until ch is closed or ctx is done.
// It is the single writer for sink, so producers may send on ch from many goroutines.
// Pump returns the number of batches ingested and ctx.Err() if it stopped early.
func Pump(ctx context.Context, ch <-chan []*Message, sink Ingester) (int, error) {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case batch, ok := <-ch:
			if !ok {
				return n, nil
			}
			sink.Ingest(batch)
			n++
		}
	}
}
