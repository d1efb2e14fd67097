package ruleset

import "log/slog"

// Option configures a Ruleset at construction time.
type Option func(*Ruleset)

// WithLogger attaches logger to the Ruleset, enabling the DUMP_* flags'
// diagnostic output during CreateDFA.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ruleset) { r.logger = logger }
}

// SetLogger attaches logger to an existing Ruleset, mirroring
// sandbox.ProfileLoader.SetLogger's mutator style for callers that
// don't construct via New's functional options.
func (r *Ruleset) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

// log is a no-op when no logger is attached, so diagnostic call sites
// never need a nil check of their own.
func (r *Ruleset) log(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
