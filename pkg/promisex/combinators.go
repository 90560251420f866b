package promisex

import (
	"sync"

	"github.com/Abraxas-365/promisex/pkg/errx"
)

// ─── Operands ─────────────────────────────────────────────────────────────────

// Operand is a single collection entry handed to a combinator: either an
// immediate plain value or a promise of one. It is the explicit form of the
// "value or future" union the combinators accept.
type Operand[T any] struct {
	promise *Promise[T]
	value   T
}

// Value wraps an immediate plain value as an operand.
func Value[T any](v T) Operand[T] {
	return Operand[T]{value: v}
}

// Pending wraps a promise as an operand.
func Pending[T any](p *Promise[T]) Operand[T] {
	return Operand[T]{promise: p}
}

// Immediate reports whether the operand carries a plain value rather than
// a promise.
func (o Operand[T]) Immediate() bool {
	return o.promise == nil
}

// Values wraps a slice of plain values as operands, in order.
func Values[T any](vs ...T) []Operand[T] {
	items := make([]Operand[T], len(vs))
	for i, v := range vs {
		items[i] = Value(v)
	}
	return items
}

// ─── All ─────────────────────────────────────────────────────────────────────

// All joins an ordered sequence of operands into one promise. It fulfills
// with the resolved values in input index order once every operand has
// settled successfully, and rejects with the reason of the first operand to
// reject, passed through unchanged. Settlements arriving after the first
// rejection are observed but have no effect. An empty input fulfills
// immediately. The optional label is a diagnostic tag with no behavioral
// effect.
func All[T any](items []Operand[T], label ...string) *Promise[[]T] {
	out := newPromise[[]T]()
	values := make([]T, len(items))

	op := newTrace("all", label)
	op.begin(len(items))

	var (
		mu        sync.Mutex
		remaining = len(items)
	)
	if remaining == 0 {
		op.settled()
		out.fulfill(values)
		return out
	}

	record := func(i int, v T) {
		mu.Lock()
		values[i] = v
		remaining--
		last := remaining == 0
		mu.Unlock()
		if last {
			out.fulfill(values)
			if out.State() == StateFulfilled {
				op.settled()
			}
		}
	}

	for i, item := range items {
		if item.Immediate() {
			record(i, item.value)
			continue
		}
		i := i
		item.promise.Subscribe(
			func(v T) { record(i, v) },
			func(reason error) {
				op.rejected(reason)
				out.reject(reason)
			},
		)
	}
	return out
}

// ─── Map ─────────────────────────────────────────────────────────────────────

// Map joins an ordered sequence of operands and applies fn to each settled
// value in index order, fulfilling with the transformed slice. The transform
// is synchronous; an error it returns becomes the returned promise's
// rejection reason, as does the reason of the first failing operand.
// Panics with an errx validation error if fn is nil.
func Map[T, R any](items []Operand[T], fn func(T) (R, error), label ...string) *Promise[[]R] {
	if fn == nil {
		panic(errx.Validation("promisex: Map requires a non-nil transform"))
	}
	out := newPromise[[]R]()
	All(items, label...).Subscribe(
		func(values []T) {
			settleFrom(out, func() ([]R, error) {
				results := make([]R, len(values))
				for i, v := range values {
					r, err := fn(v)
					if err != nil {
						return nil, err
					}
					results[i] = r
				}
				return results, nil
			})
		},
		out.reject,
	)
	return out
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// Verdict is a filter predicate's outcome: an immediate keep/drop decision
// or a deferred one carried by a promise.
type Verdict struct {
	keep     bool
	deferred *Promise[bool]
}

// Keep returns an immediate verdict.
func Keep(keep bool) Verdict {
	return Verdict{keep: keep}
}

// Deferred returns a verdict that will be decided by p. The item is kept
// if p fulfills truthily and dropped if it fulfills falsily; a rejection
// of p rejects the whole filter.
func Deferred(p *Promise[bool]) Verdict {
	return Verdict{deferred: p}
}

// filterEntry tracks one input item across filter passes. An entry whose
// verdict came back deferred stays undecided until a later pass records the
// settled flag; the predicate is never re-invoked for it.
type filterEntry[T any] struct {
	item     T
	decided  bool
	keep     bool
	deferred *Promise[bool]
}

// Filter joins an ordered sequence of operands and selects the settled
// values for which pred holds, preserving input order. The predicate runs
// exactly once per item and may defer its decision to a promise; deferred
// decisions are driven to resolution in additional passes before the result
// is produced. Rejection of any operand or of any deferred verdict rejects
// the returned promise with that reason, first-failure-wins.
// Panics with an errx validation error if pred is nil.
func Filter[T any](items []Operand[T], pred func(T) Verdict, label ...string) *Promise[[]T] {
	if pred == nil {
		panic(errx.Validation("promisex: Filter requires a non-nil predicate"))
	}
	out := newPromise[[]T]()
	All(items, label...).Subscribe(
		func(values []T) {
			// The pass loop blocks on deferred verdicts, so it gets its
			// own goroutine instead of running on whichever goroutine
			// settled the join.
			go settleFrom(out, func() ([]T, error) {
				return runFilter(values, pred, label)
			})
		},
		out.reject,
	)
	return out
}

// runFilter is the pass loop behind Filter. The first pass invokes the
// predicate once per item; every later pass re-scans the whole entry list,
// resolving parked entries from their recorded flags (an O(1) check) and
// waiting on whichever verdicts are still pending. The loop terminates
// because a pass never creates new deferred verdicts: once every entry is
// decided the kept items are emitted in input order.
func runFilter[T any](values []T, pred func(T) Verdict, label []string) ([]T, error) {
	entries := make([]filterEntry[T], len(values))
	for i, v := range values {
		e := filterEntry[T]{item: v}
		verdict := pred(v)
		if verdict.deferred != nil {
			e.deferred = verdict.deferred
		} else {
			e.decided = true
			e.keep = verdict.keep
		}
		entries[i] = e
	}

	for {
		var (
			idx      []int
			verdicts []Operand[bool]
		)
		for i := range entries {
			if !entries[i].decided {
				idx = append(idx, i)
				verdicts = append(verdicts, Pending(entries[i].deferred))
			}
		}
		if len(idx) == 0 {
			break
		}

		// Join the pending verdicts so the first rejection in settlement
		// order wins, exactly as it does for the operands themselves.
		flags, err := All(verdicts, label...).Await()
		if err != nil {
			return nil, err
		}
		for k, i := range idx {
			entries[i].decided = true
			entries[i].keep = flags[k]
			entries[i].deferred = nil
		}
	}

	kept := make([]T, 0, len(entries))
	for _, e := range entries {
		if e.keep {
			kept = append(kept, e.item)
		}
	}
	return kept, nil
}

// ─── Hash ────────────────────────────────────────────────────────────────────

// Hash joins a keyed mapping of operands into one promise. It fulfills with
// a map whose key set equals the input's and whose values are the resolved
// results; key order is insignificant, only presence and association are
// contractual. Immediate operands are recorded without scheduling. The
// first rejection among the entries rejects the returned promise with that
// reason, unchanged; later settlements are no-ops. A nil or empty mapping
// fulfills immediately with an empty map.
func Hash[T any](entries map[string]Operand[T], label ...string) *Promise[map[string]T] {
	out := newPromise[map[string]T]()
	results := make(map[string]T, len(entries))

	op := newTrace("hash", label)
	op.begin(len(entries))

	remaining := len(entries)
	if remaining == 0 {
		op.settled()
		out.fulfill(results)
		return out
	}

	var mu sync.Mutex
	record := func(key string, v T) {
		mu.Lock()
		results[key] = v
		remaining--
		last := remaining == 0
		mu.Unlock()
		if last {
			out.fulfill(results)
			if out.State() == StateFulfilled {
				op.settled()
			}
		}
	}

	for key, entry := range entries {
		if entry.Immediate() {
			record(key, entry.value)
			continue
		}
		key := key
		entry.promise.Subscribe(
			func(v T) { record(key, v) },
			func(reason error) {
				op.rejected(reason)
				out.reject(reason)
			},
		)
	}
	return out
}
