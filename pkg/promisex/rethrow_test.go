package promisex_test

import (
	"errors"
	"testing"

	"github.com/Abraxas-365/promisex/pkg/promisex"
)

// --- Rethrow tests ---

// captureRethrow installs a synchronous scheduler and a capturing reporter,
// returning the captured reasons and a restore function.
func captureRethrow() (*[]error, func()) {
	var captured []error
	promisex.SetScheduler(func(fn func()) { fn() })
	promisex.SetUnhandled(func(reason error) { captured = append(captured, reason) })
	restore := func() {
		promisex.SetScheduler(nil)
		promisex.SetUnhandled(nil)
	}
	return &captured, restore
}

func TestRethrow_PanicsWithReasonAndReportsOutOfBand(t *testing.T) {
	captured, restore := captureRethrow()
	defer restore()

	boom := errors.New("boom")
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Rethrow to panic")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, boom) {
			t.Fatalf("expected panic with original reason, got %v", r)
		}
		if len(*captured) != 1 || !errors.Is((*captured)[0], boom) {
			t.Fatalf("expected reason reported out of band, got %v", *captured)
		}
	}()
	promisex.Rethrow(boom)
}

func TestRethrow_InsideCatchRedeliversInBand(t *testing.T) {
	captured, restore := captureRethrow()
	defer restore()

	boom := errors.New("boom")
	p := promisex.Catch(promisex.RejectedWith[int](boom), func(err error) (int, error) {
		promisex.Rethrow(err)
		return 0, nil // unreachable
	})

	if _, err := p.Await(); !errors.Is(err, boom) {
		t.Fatalf("expected original reason in band, got %v", err)
	}
	if len(*captured) != 1 || !errors.Is((*captured)[0], boom) {
		t.Fatalf("expected original reason out of band, got %v", *captured)
	}
}

func TestRethrow_ReasonSurvivesFurtherHandling(t *testing.T) {
	_, restore := captureRethrow()
	defer restore()

	boom := errors.New("boom")
	rethrown := promisex.Catch(promisex.RejectedWith[int](boom), func(err error) (int, error) {
		promisex.Rethrow(err)
		return 0, nil // unreachable
	})
	recovered := promisex.Catch(rethrown, func(err error) (int, error) {
		if !errors.Is(err, boom) {
			return 0, err
		}
		return -1, nil
	})

	v, err := recovered.Await()
	if err != nil || v != -1 {
		t.Fatalf("expected downstream handler to see original reason, got %d err=%v", v, err)
	}
}
