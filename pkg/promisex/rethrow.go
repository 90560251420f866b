package promisex

import (
	"sync"

	"github.com/Abraxas-365/promisex/pkg/logx"
)

// ─── Rethrow ─────────────────────────────────────────────────────────────────

var (
	rethrowMu sync.RWMutex

	// scheduler moves the out-of-band report off the current goroutine,
	// the same way the rejection would otherwise be deferred to the next
	// tick of an event loop.
	scheduler = func(fn func()) { go fn() }

	// unhandled receives reasons escaped via Rethrow.
	unhandled = func(reason error) {
		logx.WithError(reason).Error("unhandled rejection")
	}
)

// SetScheduler replaces the hook Rethrow uses to move its report off the
// current goroutine. Passing nil restores the default (a fresh goroutine).
// Intended for tests.
func SetScheduler(fn func(func())) {
	rethrowMu.Lock()
	defer rethrowMu.Unlock()
	if fn == nil {
		fn = func(f func()) { go f() }
	}
	scheduler = fn
}

// SetUnhandled replaces the out-of-band reporter Rethrow delivers reasons
// to. Passing nil restores the default, which logs at error level.
func SetUnhandled(fn func(error)) {
	rethrowMu.Lock()
	defer rethrowMu.Unlock()
	if fn == nil {
		fn = func(reason error) {
			logx.WithError(reason).Error("unhandled rejection")
		}
	}
	unhandled = fn
}

// Rethrow escapes a rejection reason out of the promise failure channel.
// It schedules the reason onto the unhandled reporter so it surfaces for
// out-of-band debugging, then panics with the same reason. Used inside a
// Catch handler the panic is recovered and becomes the derived promise's
// rejection reason, so the reason is never lost: it is both reported and
// re-delivered to the next failure handler in the chain.
//
//	p := promisex.Catch(work, func(err error) (int, error) {
//	    promisex.Rethrow(err)
//	    return 0, nil // unreachable
//	})
func Rethrow(reason error) {
	rethrowMu.RLock()
	schedule, report := scheduler, unhandled
	rethrowMu.RUnlock()

	schedule(func() { report(reason) })
	panic(reason)
}
