package apperr

import (
	"errors"
	"fmt"
	"testing"
)

var errSentinel = NotFound("THING_NOT_FOUND", "Thing not found")

func TestKindOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("load thing: %w", errSentinel)
	if got := KindOf(err); got != KindNotFound {
		t.Fatalf("expected not_found, got %s", got)
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatal("expected unknown for unclassified error")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	cause := errors.New("permission denied")
	sentinel := New(KindStorage, "WRITE_FAILED", "write failed")
	err := Wrap(cause, KindStorage, "WRITE_FAILED", "could not persist document")

	if !errors.Is(err, sentinel) {
		t.Error("expected code match to satisfy errors.Is")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to stay reachable")
	}
	if errors.Is(err, errSentinel) {
		t.Error("different codes must not match")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, KindStorage, "X", "x") != nil {
		t.Fatal("wrapping nil must return nil")
	}
}
