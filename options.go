package sl

import "log/slog"

// Option configures a [Context] at construction, following the
// functional-options idiom: each Option mutates the Context under
// construction rather than a public field, so new knobs can be added
// without breaking callers.
type Option func(*Context)

// WithThreads sets the worker pool size. n <= 0 selects GOMAXPROCS.
// Equivalent to calling [Context.SetThreads] immediately after
// construction; provided as an option for convenience at call sites that
// build a Context in one expression.
func WithThreads(n int) Option {
	return func(c *Context) { c.pool.SetN(n) }
}

// WithReversedZ selects the reversed-Z depth convention (near = 1,
// far = 0) instead of the default normal convention (near = 0, far = 1).
// This is a construction-time choice; switching it with a bound
// framebuffer mid-draw is undefined.
func WithReversedZ(enabled bool) Option {
	return func(c *Context) { c.reversedZ = enabled }
}

// WithZClipEnabled toggles the clipper's far/near Z planes. Disabled,
// the clipper reduces from six frustum planes to four (±x, ±y only);
// this mirrors the source's compile-time switch as a construction-time
// one instead, since nothing here requires it to be a build tag.
func WithZClipEnabled(enabled bool) Option {
	return func(c *Context) { c.zClipEnabled = enabled }
}

// WithLogger installs l as the package-wide logger (see [SetLogger]).
// Logging is process-global, not per-Context, but exposing it as an
// Option lets construction sites configure everything about a Context in
// one call.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { SetLogger(l) }
}
