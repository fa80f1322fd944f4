package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(NotFound("x")) != KindNotFound {
		t.Error("expected KindNotFound")
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("plain errors must map to KindUnknown")
	}
	// Kind survives wrapping.
	wrapped := fmt.Errorf("handler: %w", Conflict("busy"))
	if KindOf(wrapped) != KindConflict {
		t.Error("kind lost through error wrapping")
	}
}

func TestMessageHidesInternals(t *testing.T) {
	if got := Message(Validation("quiz_id is required")); got != "quiz_id is required" {
		t.Errorf("client-safe message replaced: %q", got)
	}
	if got := Message(Unavailable("store down", errors.New("dial tcp: refused"))); got != "internal server error" {
		t.Errorf("infrastructure detail leaked: %q", got)
	}
	if got := Message(errors.New("pq: syntax error")); got != "internal server error" {
		t.Errorf("unknown error detail leaked: %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Unavailable("store down", cause)
	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}
