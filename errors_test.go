package sl

import (
	"errors"
	"testing"
)

func TestErrorMessageWithoutReason(t *testing.T) {
	if got, want := ErrBadArg.Error(), "sl: BadArg"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorMessageWithReason(t *testing.T) {
	err := ErrBadArg.withReason("buffer data is empty")
	if got, want := err.Error(), "sl: BadArg: buffer data is empty"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestWithReasonLeavesSentinelUntouched(t *testing.T) {
	_ = ErrBadArg.withReason("some reason")
	if ErrBadArg.Reason != "" {
		t.Fatalf("withReason mutated the shared sentinel: Reason = %q", ErrBadArg.Reason)
	}
}

func TestErrorsIsMatchesByStatusAndKindIgnoringReason(t *testing.T) {
	err := ErrBadArg.withReason("anything")
	if !errors.Is(err, ErrBadArg) {
		t.Fatal("errors.Is should match a reasoned error against its sentinel")
	}
	if errors.Is(err, ErrBadID) {
		t.Fatal("errors.Is should not match a different sentinel")
	}
}

func TestStatusCodesAreDistinct(t *testing.T) {
	codes := map[Status]bool{
		StatusOK: true, StatusBadArg: true, StatusBadID: true,
		StatusAllocFail: true, StatusFboIncomplete: true, StatusUnsupported: true,
	}
	if len(codes) != 6 {
		t.Fatalf("expected 6 distinct status codes, got %d", len(codes))
	}
	if StatusOK != 0 {
		t.Fatalf("StatusOK = %v, want 0", StatusOK)
	}
}
