// Package async runs computations on their own goroutines and waits for
// their completion.
//
// Async starts a function and returns a *Future immediately. Await blocks
// until the result is available, AwaitContext additionally gives up when
// its context ends, and IsComplete polls without blocking.
//
// Pending tracks a changing set of futures. Background validations in
// pkg/formstate register their futures there so callers can wait for the
// store to settle:
//
//	var p async.Pending[formstate.Verdict]
//	p.Add(async.Async(ctx, key, run))
//	if err := p.Wait(ctx); err != nil {
//		// first error of the settled futures, or ctx.Err()
//	}
//
// A context that is already cancelled when Async is called completes the
// future with the context error without invoking the function.
package async
