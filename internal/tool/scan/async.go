package scan

import (
	"context"
	"time"
)

// ScanAsync runs Scan on a background goroutine. The result is delivered to
// done, when not nil, and on the returned channel, which is closed afterwards.
func (s *Scanner) ScanAsync(ctx context.Context, root string, done func(Result)) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		defer close(out)

		start := time.Now()
		files, err := s.Scan(ctx, root)
		res := Result{Root: root, Files: files, Err: err, Duration: time.Since(start)}

		if done != nil {
			done(res)
		}
		out <- res
	}()

	return out
}
