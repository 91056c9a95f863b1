package logger

import "go.uber.org/zap"

// Audit records the outcome of every handler and middleware decision
// as a structured entry tagged with the feature it belongs to. It is
// injected into each component rather than imported as a global.
type Audit struct {
	log *zap.Logger
}

// NewAudit wraps a zap logger as an Audit sink
func NewAudit(log *zap.Logger) *Audit {
	return &Audit{log: log}
}

// Success records a successful operation
func (a *Audit) Success(feature, detail string) {
	a.log.Info("audit",
		zap.String("feature", feature),
		zap.String("outcome", "success"),
		zap.String("detail", detail),
	)
}

// Failure records a rejected request (validation, auth, not-found).
// These are expected outcomes, logged at info level.
func (a *Audit) Failure(feature, detail string) {
	a.log.Info("audit",
		zap.String("feature", feature),
		zap.String("outcome", "failure"),
		zap.String("detail", detail),
	)
}

// Error records an infrastructure failure. The underlying error stays
// in the log sink and is never echoed to the client.
func (a *Audit) Error(feature string, err error) {
	a.log.Error("audit",
		zap.String("feature", feature),
		zap.String("outcome", "error"),
		zap.Error(err),
	)
}
