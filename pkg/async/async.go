package async

import (
	"context"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the computation to complete and returns its result.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext is Await that returns ctx.Err() once ctx ends first.
// The computation keeps running.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done is closed when the computation completes.
func (f *Future[U]) Done() <-chan struct{} { return f.done }

// IsComplete reports whether the computation has completed without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn on a new goroutine and returns its Future.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// WaitAll waits for every future and returns their results in order along
// with the first error encountered.
func WaitAll[U any](ctx context.Context, futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var first error

	for i, f := range futures {
		if f == nil {
			if first == nil {
				first = ErrNilFuture
			}
			continue
		}
		res, err := f.AwaitContext(ctx)
		if err != nil && ctx.Err() != nil {
			return results, ctx.Err()
		}
		results[i] = res
		if err != nil && first == nil {
			first = err
		}
	}

	return results, first
}

// Pending is a set of in-flight futures that may grow while it is waited
// on. Completed futures are released as soon as the set is touched; the
// first error among them is kept until Wait reports it. The zero value is
// ready to use.
type Pending[U any] struct {
	mu      sync.Mutex
	futures []*Future[U]
	err     error
}

// Add registers f.
func (p *Pending[U]) Add(f *Future[U]) {
	if f == nil {
		return
	}
	p.mu.Lock()
	p.prune()
	p.futures = append(p.futures, f)
	p.mu.Unlock()
}

// Len returns the number of futures still running.
func (p *Pending[U]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prune()
	return len(p.futures)
}

// prune drops completed futures, keeping the first unreported error.
// p.mu must be held.
func (p *Pending[U]) prune() {
	kept := p.futures[:0]
	for _, f := range p.futures {
		if !f.IsComplete() {
			kept = append(kept, f)
			continue
		}
		if _, err := f.Await(); err != nil && p.err == nil {
			p.err = err
		}
	}
	clear(p.futures[len(kept):])
	p.futures = kept
}

// Wait blocks until every registered future, including those added while
// waiting, has completed. It returns the first error not reported by an
// earlier Wait.
func (p *Pending[U]) Wait(ctx context.Context) error {
	for {
		p.mu.Lock()
		batch := p.futures
		p.futures = nil
		if len(batch) == 0 {
			err := p.err
			p.err = nil
			p.mu.Unlock()
			return err
		}
		p.mu.Unlock()

		if _, err := WaitAll(ctx, batch...); err != nil {
			if ctx.Err() != nil {
				p.requeue(batch)
				return ctx.Err()
			}
			p.mu.Lock()
			if p.err == nil {
				p.err = err
			}
			p.mu.Unlock()
		}
	}
}

func (p *Pending[U]) requeue(batch []*Future[U]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.futures = append(p.futures, batch...)
	p.prune()
}
