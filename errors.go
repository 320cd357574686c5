package sl

import "fmt"

// Status is the small signed result code returned by resource operations,
// per the error-code contract: 0 is success, -1..-5 map to the named
// sentinel errors below.
type Status int

// Resource-operation status codes.
const (
	StatusOK            Status = 0
	StatusBadArg        Status = -1
	StatusBadID         Status = -2
	StatusAllocFail     Status = -3
	StatusFboIncomplete Status = -4
	StatusUnsupported   Status = -5
)

// Error kinds surfaced by context-level resource operations. Hot-path code
// (vertex/fragment stages, the clipper, the rasterizer) never returns these:
// invariants there are established by the context before dispatch and a
// violation is a programming bug, reported via gfx.DebugAssert instead.
var (
	ErrBadArg        = &Error{Status: StatusBadArg, Kind: "BadArg"}
	ErrBadID         = &Error{Status: StatusBadID, Kind: "BadId"}
	ErrAllocFail     = &Error{Status: StatusAllocFail, Kind: "AllocFail"}
	ErrFboIncomplete = &Error{Status: StatusFboIncomplete, Kind: "FboIncomplete"}
	ErrUnsupported   = &Error{Status: StatusUnsupported, Kind: "Unsupported"}
)

// Error is a resource-operation failure. It carries the small status code
// the ABI exposes plus a human-readable reason for logging/debugging.
type Error struct {
	Status Status
	Kind   string
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("sl: %s", e.Kind)
	}
	return fmt.Sprintf("sl: %s: %s", e.Kind, e.Reason)
}

// withReason returns a copy of a sentinel error annotated with a reason,
// leaving the shared sentinel untouched so callers may still use errors.Is.
func (e *Error) withReason(reason string) *Error {
	return &Error{Status: e.Status, Kind: e.Kind, Reason: reason}
}

// Is allows errors.Is(err, ErrBadArg) etc. to match by status+kind,
// regardless of the attached reason string.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == other.Status && e.Kind == other.Kind
}
