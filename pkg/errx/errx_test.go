package errx_test

import (
	"errors"
	"testing"

	"github.com/Abraxas-365/promisex/pkg/errx"
)

func TestError_MessageIncludesCodeAndCause(t *testing.T) {
	cause := errors.New("root cause")
	err := errx.Wrap(cause, "join failed", errx.TypeRejected)

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error must match its cause")
	}
	msg := err.Error()
	if msg != "[REJECTED] join failed: root cause" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	if err := errx.Wrap(nil, "ignored", errx.TypeInternal); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWrap_PreservesExistingCode(t *testing.T) {
	inner := errx.Validation("bad argument")
	outer := errx.Wrap(inner, "combinator call", errx.TypeInternal)

	if outer.Code != string(errx.TypeValidation) {
		t.Fatalf("expected inner code preserved, got %q", outer.Code)
	}
}

func TestIsType(t *testing.T) {
	err := errx.Validation("bad argument").WithDetail("arg", "fn")

	if !errx.IsType(err, errx.TypeValidation) {
		t.Fatal("expected validation type match")
	}
	if errx.IsType(err, errx.TypeRejected) {
		t.Fatal("unexpected rejected type match")
	}
	if errx.IsType(errors.New("plain"), errx.TypeValidation) {
		t.Fatal("plain errors carry no type")
	}
	if err.Details["arg"] != "fn" {
		t.Fatalf("expected detail preserved, got %v", err.Details)
	}
}
