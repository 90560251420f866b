package promisex

import (
	"sync"
)

// ─── Promise ─────────────────────────────────────────────────────────────────

// State is a snapshot of a promise's lifecycle position.
type State uint8

const (
	// StatePending means the promise has not settled yet.
	StatePending State = iota
	// StateFulfilled means the promise settled with a value.
	StateFulfilled
	// StateRejected means the promise settled with a reason.
	StateRejected
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFulfilled:
		return "fulfilled"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// continuation pairs the two callbacks attached by a single Subscribe call.
type continuation[T any] struct {
	onFulfilled func(T)
	onRejected  func(error)
}

// Promise represents a value that will be available asynchronously.
// It settles exactly once, to either a value or a rejection reason;
// every later settle attempt is a no-op. Create one with New, Run,
// Resolved or RejectedWith.
type Promise[T any] struct {
	mu     sync.Mutex
	state  State
	value  T
	reason error
	done   chan struct{}
	subs   []continuation[T]
}

func newPromise[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// New creates a promise and invokes executor synchronously in the calling
// goroutine, handing it the resolve and reject functions. The executor may
// pass them to any goroutine; the first one called wins.
func New[T any](executor func(resolve func(T), reject func(error))) *Promise[T] {
	p := newPromise[T]()
	executor(p.fulfill, p.reject)
	return p
}

// Run executes fn in a goroutine and returns a promise for its result.
// The goroutine starts immediately. An error from fn becomes the
// rejection reason.
func Run[T any](fn func() (T, error)) *Promise[T] {
	p := newPromise[T]()
	go func() {
		v, err := fn()
		if err != nil {
			p.reject(err)
			return
		}
		p.fulfill(v)
	}()
	return p
}

// Resolved returns a promise already fulfilled with v.
func Resolved[T any](v T) *Promise[T] {
	p := newPromise[T]()
	p.fulfill(v)
	return p
}

// RejectedWith returns a promise already rejected with reason.
func RejectedWith[T any](reason error) *Promise[T] {
	p := newPromise[T]()
	p.reject(reason)
	return p
}

func (p *Promise[T]) fulfill(v T) {
	p.mu.Lock()
	if p.state != StatePending {
		p.mu.Unlock()
		return
	}
	p.state = StateFulfilled
	p.value = v
	subs := p.subs
	p.subs = nil
	close(p.done)
	p.mu.Unlock()

	// Continuations run outside the lock, in attachment order.
	for _, c := range subs {
		if c.onFulfilled != nil {
			c.onFulfilled(v)
		}
	}
}

func (p *Promise[T]) reject(reason error) {
	p.mu.Lock()
	if p.state != StatePending {
		p.mu.Unlock()
		return
	}
	p.state = StateRejected
	p.reason = reason
	subs := p.subs
	p.subs = nil
	close(p.done)
	p.mu.Unlock()

	for _, c := range subs {
		if c.onRejected != nil {
			c.onRejected(reason)
		}
	}
}

// State returns the promise's current state. The answer may be stale by the
// time the caller acts on it unless the promise is known to have settled.
func (p *Promise[T]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe attaches a continuation. Continuations attached to the same
// promise run in attachment order once it settles; attaching to an
// already-settled promise invokes the matching callback immediately in the
// calling goroutine. Either callback may be nil.
func (p *Promise[T]) Subscribe(onFulfilled func(T), onRejected func(error)) {
	p.mu.Lock()
	switch p.state {
	case StatePending:
		p.subs = append(p.subs, continuation[T]{onFulfilled, onRejected})
		p.mu.Unlock()
	case StateFulfilled:
		v := p.value
		p.mu.Unlock()
		if onFulfilled != nil {
			onFulfilled(v)
		}
	case StateRejected:
		reason := p.reason
		p.mu.Unlock()
		if onRejected != nil {
			onRejected(reason)
		}
	}
}

// Await blocks until the promise settles and returns its value and error.
// Safe to call from multiple goroutines; subsequent calls return the
// settled result.
func (p *Promise[T]) Await() (T, error) {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateRejected {
		var zero T
		return zero, p.reason
	}
	return p.value, nil
}

// ─── Chaining ─────────────────────────────────────────────────────────────────

// settleFrom settles out with fn's result. A panic with an error value is
// recovered and becomes the rejection reason; any other panic propagates.
func settleFrom[U any](out *Promise[U], fn func() (U, error)) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				out.reject(err)
				return
			}
			panic(r)
		}
	}()
	u, err := fn()
	if err != nil {
		out.reject(err)
		return
	}
	out.fulfill(u)
}

// Then derives a new promise by applying fn to p's fulfillment value.
// A rejection of p bypasses fn and rejects the derived promise with the
// same reason. An error returned by fn, or a panic with an error value
// inside fn, becomes the derived promise's rejection reason.
func Then[T, U any](p *Promise[T], fn func(T) (U, error)) *Promise[U] {
	out := newPromise[U]()
	p.Subscribe(
		func(v T) { settleFrom(out, func() (U, error) { return fn(v) }) },
		out.reject,
	)
	return out
}

// Catch derives a new promise that handles p's rejection. A fulfillment of
// p passes through untouched. On rejection fn may recover with a fallback
// value or produce a new reason; a panic with an error value inside fn
// (such as Rethrow) becomes the derived promise's rejection reason.
func Catch[T any](p *Promise[T], fn func(error) (T, error)) *Promise[T] {
	out := newPromise[T]()
	p.Subscribe(
		out.fulfill,
		func(reason error) { settleFrom(out, func() (T, error) { return fn(reason) }) },
	)
	return out
}
