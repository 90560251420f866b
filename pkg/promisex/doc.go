// Package promisex provides a settle-once promise primitive and a small set
// of asynchronous-collection combinators built on top of it: an ordered
// join, a keyed join, map and filter over collections of values and
// promises, and a debug escape hatch for rejection reasons.
//
// # Promises
//
// A [Promise] is a single-assignment cell that settles exactly once, to
// either a value or a rejection reason, and is terminal thereafter. Create
// one with [New] (executor style, handing out resolve/reject), [Run]
// (goroutine convenience), or the pre-settled [Resolved] and
// [RejectedWith].
//
//	p := promisex.New(func(resolve func(int), reject func(error)) {
//	    go func() {
//	        n, err := slowCount(ctx)
//	        if err != nil {
//	            reject(err)
//	            return
//	        }
//	        resolve(n)
//	    }()
//	})
//
// Waiting is expressed either by blocking with [Promise.Await] or by
// attaching continuations with [Promise.Subscribe]. Continuations attached
// to the same promise run in attachment order; attaching to an
// already-settled promise invokes the callback immediately.
//
// [Then] and [Catch] derive new promises from existing ones. A panic with
// an error value inside a handler is recovered into the derived promise's
// rejection, which is what makes [Rethrow] composable.
//
// # Operands
//
// Combinators accept collections of [Operand] entries, each either an
// immediate plain value ([Value]) or a promise ([Pending]). [Values] wraps
// a whole slice of plain values at once. Immediate operands are recorded
// without any scheduling.
//
// # Joins
//
// [All] turns an ordered sequence of operands into one promise that
// fulfills with the resolved values in input order, or rejects with the
// reason of the first operand to fail: first-failure-wins, the reason
// passed through unchanged, never wrapped or aggregated.
//
// [Hash] is the keyed counterpart: it joins a map of operands and fulfills
// with a map holding the same keys and the resolved values. Keys may settle
// in any order; only presence and association are guaranteed.
//
//	user := promisex.Hash(map[string]promisex.Operand[string]{
//	    "name":  promisex.Pending(fetchName(id)),
//	    "plan":  promisex.Value("free"),
//	})
//
// # Map and Filter
//
// [Map] joins a sequence and applies a synchronous transform to every
// settled value in index order.
//
//	doubled := promisex.Map(promisex.Values(1, 2, 3), func(n int) (int, error) {
//	    return n * 2, nil
//	})
//
// [Filter] selects settled values with a predicate that returns a
// [Verdict]: [Keep] decides immediately, [Deferred] hands the decision to a
// promise of its own. Deferred verdicts are driven to resolution in
// additional passes before the result is produced; the predicate runs
// exactly once per item regardless of how many passes that takes, and the
// relative order of kept items is preserved.
//
//	admins := promisex.Filter(users, func(u User) promisex.Verdict {
//	    return promisex.Deferred(isAdmin(u))
//	})
//
// # Rethrow
//
// [Rethrow] escapes a rejection reason out of the failure channel: it
// schedules the reason onto a process-wide unhandled-rejection reporter
// (logx by default) and panics with the same reason so a surrounding
// [Catch] re-delivers it in-band. The scheduler and the reporter are both
// injectable via [SetScheduler] and [SetUnhandled], so the behaviour is
// testable without a real ambient reporter.
//
// # Labels
//
// Every combinator takes an optional trailing label, a diagnostic tag with
// no behavioral effect. When debug logging is enabled the label is emitted
// on join trace entries together with a per-invocation operation id, so
// concurrent joins can be told apart in logs.
//
// # Errors
//
// Passing a nil transform or predicate is a programmer error and panics
// synchronously with an errx validation error before any asynchronous work
// begins. Everything else travels through the rejection channel. There is
// no cancellation and no retry at this layer: once a combinator is invoked
// its constituent work runs to completion or failure.
package promisex
