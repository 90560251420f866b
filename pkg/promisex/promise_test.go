package promisex_test

import (
	"errors"
	"testing"

	"github.com/Abraxas-365/promisex/pkg/promisex"
)

// --- Promise primitive tests ---

func TestNew_ResolveSettlesOnce(t *testing.T) {
	var resolve func(int)
	var reject func(error)
	p := promisex.New(func(res func(int), rej func(error)) {
		resolve, reject = res, rej
	})

	if p.State() != promisex.StatePending {
		t.Fatalf("expected pending, got %v", p.State())
	}

	resolve(42)
	reject(errors.New("too late"))
	resolve(99)

	v, err := p.Await()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("expected first resolution to win, got %d", v)
	}
	if p.State() != promisex.StateFulfilled {
		t.Fatalf("expected fulfilled, got %v", p.State())
	}
}

func TestNew_RejectSettlesOnce(t *testing.T) {
	boom := errors.New("boom")
	var resolve func(int)
	var reject func(error)
	p := promisex.New(func(res func(int), rej func(error)) {
		resolve, reject = res, rej
	})

	reject(boom)
	resolve(1)

	_, err := p.Await()
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if p.State() != promisex.StateRejected {
		t.Fatalf("expected rejected, got %v", p.State())
	}
}

func TestRun_Success(t *testing.T) {
	p := promisex.Run(func() (string, error) {
		return "done", nil
	})
	v, err := p.Await()
	if err != nil || v != "done" {
		t.Fatalf("expected done, got %q err=%v", v, err)
	}
}

func TestRun_Error(t *testing.T) {
	boom := errors.New("boom")
	p := promisex.Run(func() (string, error) {
		return "", boom
	})
	if _, err := p.Await(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestAwait_RepeatCallsReturnCachedResult(t *testing.T) {
	p := promisex.Resolved(7)
	for i := 0; i < 3; i++ {
		v, err := p.Await()
		if err != nil || v != 7 {
			t.Fatalf("call %d: expected 7, got %d err=%v", i, v, err)
		}
	}
}

func TestSubscribe_AttachmentOrder(t *testing.T) {
	var resolve func(int)
	p := promisex.New(func(res func(int), _ func(error)) {
		resolve = res
	})

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		p.Subscribe(func(int) { order = append(order, i) }, nil)
	}
	resolve(0)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("continuations ran out of attachment order: %v", order)
	}
}

func TestSubscribe_AfterSettledInvokesImmediately(t *testing.T) {
	called := false
	promisex.Resolved("x").Subscribe(func(string) { called = true }, nil)
	if !called {
		t.Fatal("expected immediate invocation on settled promise")
	}

	boom := errors.New("boom")
	var got error
	promisex.RejectedWith[string](boom).Subscribe(nil, func(err error) { got = err })
	if !errors.Is(got, boom) {
		t.Fatalf("expected boom, got %v", got)
	}
}

// --- Then / Catch tests ---

func TestThen_TransformsValue(t *testing.T) {
	p := promisex.Then(promisex.Resolved(21), func(n int) (int, error) {
		return n * 2, nil
	})
	v, err := p.Await()
	if err != nil || v != 42 {
		t.Fatalf("expected 42, got %d err=%v", v, err)
	}
}

func TestThen_BypassesOnRejection(t *testing.T) {
	boom := errors.New("boom")
	called := false
	p := promisex.Then(promisex.RejectedWith[int](boom), func(n int) (int, error) {
		called = true
		return n, nil
	})
	if _, err := p.Await(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if called {
		t.Fatal("transform must not run on rejection")
	}
}

func TestThen_ErrorPanicBecomesRejection(t *testing.T) {
	boom := errors.New("boom")
	p := promisex.Then(promisex.Resolved(1), func(int) (int, error) {
		panic(boom)
	})
	if _, err := p.Await(); !errors.Is(err, boom) {
		t.Fatalf("expected panic reason as rejection, got %v", err)
	}
}

func TestCatch_RecoversWithFallback(t *testing.T) {
	p := promisex.Catch(promisex.RejectedWith[int](errors.New("boom")), func(error) (int, error) {
		return -1, nil
	})
	v, err := p.Await()
	if err != nil || v != -1 {
		t.Fatalf("expected fallback -1, got %d err=%v", v, err)
	}
}

func TestCatch_PassesFulfillmentThrough(t *testing.T) {
	called := false
	p := promisex.Catch(promisex.Resolved(5), func(error) (int, error) {
		called = true
		return 0, nil
	})
	v, err := p.Await()
	if err != nil || v != 5 {
		t.Fatalf("expected 5, got %d err=%v", v, err)
	}
	if called {
		t.Fatal("handler must not run on fulfillment")
	}
}
