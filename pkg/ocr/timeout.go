package ocr

import (
	"context"
	"fmt"
	"time"
)

type timeoutEngine struct {
	Engine
	timeout time.Duration
}

// WithTimeout bounds every Recognize call on engine by d. The engine runs
// on its own goroutine so a call that ignores its context still returns to
// the caller at the deadline. All errors are wrapped in ErrExtraction.
func WithTimeout(engine Engine, d time.Duration) Engine {
	return &timeoutEngine{Engine: engine, timeout: d}
}

func (e *timeoutEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}

	done := make(chan result, 1)
	go func() {
		text, err := e.Engine.Recognize(ctx, image)
		done <- result{text, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", wrap(r.err)
		}
		return r.text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %s: %w", ErrExtraction, e.Name(), ctx.Err())
	}
}
